package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/physics"
)

const gridSpacing = 5.0

// Face is a filled screen-space polygon.
type Face struct {
	Points []mgl32.Vec2
	Color  color.RGBA
	Depth  float32
}

type Line struct {
	Segment
	Color color.RGBA
}

// DrawList is one frame's geometry in paint order: floor, grid, then solid
// faces from farthest to nearest.
type DrawList struct {
	Floor []Face
	Grid  []Line
	Faces []Face
}

type quad struct {
	corners [4]mgl64.Vec3
	normal  mgl64.Vec3
}

var defaultLight = component.Light{Ambient: 0.5, Intensity: 1, Position: mgl64.Vec3{10, 10, 10}}

// Collect builds the draw list for every ground and static box in w.
func Collect(w *ecs.World, v *View) DrawList {
	var dl DrawList
	if w == nil || v == nil {
		return dl
	}

	light := defaultLight
	if e, ok := w.First(component.LightComponent.Kind()); ok {
		if l, ok := ecs.Get(w, e, component.LightComponent.Kind()); ok {
			light = *l
		}
	}

	ecs.ForEach(w, component.GroundComponent.Kind(), func(_ ecs.Entity, g *component.Ground) {
		h := g.Size / 2
		q := quad{
			corners: [4]mgl64.Vec3{{-h, 0, -h}, {h, 0, -h}, {h, 0, h}, {-h, 0, h}},
			normal:  mgl64.Vec3{0, 1, 0},
		}
		if f, ok := v.face(q, g.Color, light); ok {
			dl.Floor = append(dl.Floor, f)
		}
		gridColor := shade(g.Color, 0.8)
		for x := -h; x <= h+1e-9; x += gridSpacing {
			dl.addLine(v, mgl64.Vec3{x, 0, -h}, mgl64.Vec3{x, 0, h}, gridColor)
			dl.addLine(v, mgl64.Vec3{-h, 0, x}, mgl64.Vec3{h, 0, x}, gridColor)
		}
	})

	ecs.ForEach(w, component.StaticBoxComponent.Kind(), func(_ ecs.Entity, sb *component.StaticBox) {
		for _, q := range boxQuads(sb.Box) {
			if f, ok := v.face(q, sb.Color, light); ok {
				dl.Faces = append(dl.Faces, f)
			}
		}
	})
	sort.SliceStable(dl.Faces, func(i, j int) bool {
		return dl.Faces[i].Depth > dl.Faces[j].Depth
	})

	return dl
}

func (dl *DrawList) addLine(v *View, a, b mgl64.Vec3, c color.RGBA) {
	if seg, ok := v.ProjectSegment(a, b); ok {
		dl.Grid = append(dl.Grid, Line{Segment: seg, Color: c})
	}
}

// face projects a quad facing the eye. Back faces and quads entirely behind
// the near plane are dropped.
func (v *View) face(q quad, base color.RGBA, light component.Light) (Face, bool) {
	center := q.corners[0].Add(q.corners[1]).Add(q.corners[2]).Add(q.corners[3]).Mul(0.25)
	if q.normal.Dot(v.Eye.Sub(center)) <= 0 {
		return Face{}, false
	}

	pts := make([]mgl32.Vec3, 0, 4)
	for _, c := range q.corners {
		pts = append(pts, v.toView(c))
	}
	pts = v.clipPolygon(pts)
	if len(pts) < 3 {
		return Face{}, false
	}

	f := Face{
		Points: make([]mgl32.Vec2, 0, len(pts)),
		Color:  shade(base, Brightness(q.normal, center, light)),
		Depth:  float32(v.Eye.Sub(center).Len()),
	}
	for _, p := range pts {
		f.Points = append(f.Points, v.toScreen(p))
	}
	return f, true
}

// Brightness is the Lambert factor for a surface at p with normal n, lifted by
// the ambient term and capped at 1.
func Brightness(n, p mgl64.Vec3, light component.Light) float32 {
	toLight := light.Position.Sub(p)
	lambert := 0.0
	if toLight.Len() > 0 {
		lambert = math.Max(0, n.Dot(toLight.Normalize()))
	}
	b := light.Ambient + (1-light.Ambient)*light.Intensity*lambert
	return common.Clamp(float32(b), 0, 1)
}

func shade(c color.RGBA, f float32) color.RGBA {
	return color.RGBA{
		R: common.Shade(c.R, f),
		G: common.Shade(c.G, f),
		B: common.Shade(c.B, f),
		A: c.A,
	}
}

func boxQuads(b physics.Box) [6]quad {
	c := b.Corners()
	return [6]quad{
		{[4]mgl64.Vec3{c[0], c[1], c[2], c[3]}, mgl64.Vec3{0, -1, 0}},
		{[4]mgl64.Vec3{c[4], c[5], c[6], c[7]}, mgl64.Vec3{0, 1, 0}},
		{[4]mgl64.Vec3{c[0], c[1], c[5], c[4]}, mgl64.Vec3{0, 0, -1}},
		{[4]mgl64.Vec3{c[3], c[2], c[6], c[7]}, mgl64.Vec3{0, 0, 1}},
		{[4]mgl64.Vec3{c[0], c[3], c[7], c[4]}, mgl64.Vec3{-1, 0, 0}},
		{[4]mgl64.Vec3{c[1], c[2], c[6], c[5]}, mgl64.Vec3{1, 0, 0}},
	}
}
