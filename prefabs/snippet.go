package prefabs

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// SpawnSnippet renders pos as a `spawn:` block ready to paste into player.yaml.
func SpawnSnippet(pos mgl64.Vec3) (string, error) {
	round := func(v float64) float64 { return math.Round(v*100) / 100 }
	out, err := yaml.Marshal(struct {
		Spawn Vec3Spec `yaml:"spawn"`
	}{Spawn: Vec3Spec{X: round(pos.X()), Y: round(pos.Y()), Z: round(pos.Z())}})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
