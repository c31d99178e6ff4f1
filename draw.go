package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/firstperson/ecs/render"
	"golang.org/x/image/colornames"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

func drawScene(screen *ebiten.Image, dl render.DrawList) {
	for _, f := range dl.Floor {
		fillFace(screen, f)
	}
	for _, l := range dl.Grid {
		vector.StrokeLine(screen, l.A.X(), l.A.Y(), l.B.X(), l.B.Y(), 1, l.Color, true)
	}
	for _, f := range dl.Faces {
		fillFace(screen, f)
		outlineFace(screen, f)
	}
}

func fillFace(screen *ebiten.Image, f render.Face) {
	if len(f.Points) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(f.Points[0].X(), f.Points[0].Y())
	for _, p := range f.Points[1:] {
		path.LineTo(p.X(), p.Y())
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := float32(f.Color.R)/0xff, float32(f.Color.G)/0xff, float32(f.Color.B)/0xff, float32(f.Color.A)/0xff
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	screen.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{})
}

func outlineFace(screen *ebiten.Image, f render.Face) {
	edge := color.RGBA{R: f.Color.R / 2, G: f.Color.G / 2, B: f.Color.B / 2, A: f.Color.A}
	for i, p := range f.Points {
		q := f.Points[(i+1)%len(f.Points)]
		vector.StrokeLine(screen, p.X(), p.Y(), q.X(), q.Y(), 1, edge, true)
	}
}

func drawCrosshair(screen *ebiten.Image) {
	b := screen.Bounds()
	cx, cy := float32(b.Dx())/2, float32(b.Dy())/2
	vector.StrokeLine(screen, cx-6, cy, cx+6, cy, 1.5, colornames.White, true)
	vector.StrokeLine(screen, cx, cy-6, cx, cy+6, 1.5, colornames.White, true)
}
