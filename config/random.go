package config

import (
	"math"
	"math/rand"

	"github.com/Pallinder/go-randomdata"
)

// RandomSatellites adds generated bodies orbiting Parent (the first body if empty).
// The same seed always gives the same bodies.
type RandomSatellites struct {
	Count  int    `yaml:"count" json:"count"`
	Seed   int64  `yaml:"seed" json:"seed"`
	Parent string `yaml:"parent,omitempty" json:"parent,omitempty"`
}

type nameGenerator map[string]struct{}

func (ng nameGenerator) name() string {
	for {
		name := randomdata.SillyName()
		if _, exists := ng[name]; !exists {
			ng[name] = struct{}{}
			return name
		}
	}
}

// AllBodies returns the declared bodies followed by the generated satellites.
func (s *Scene) AllBodies() []Body {
	if s.Satellites.Count <= 0 || len(s.Bodies) == 0 {
		return s.Bodies
	}

	parent := s.Satellites.Parent
	if parent == "" {
		parent = s.Bodies[0].Name
	}

	r := rand.New(rand.NewSource(s.Satellites.Seed))
	randomdata.CustomRand(r)

	names := make(nameGenerator, len(s.Bodies)+s.Satellites.Count)
	for _, b := range s.Bodies {
		names[b.Name] = struct{}{}
	}

	bodies := make([]Body, len(s.Bodies), len(s.Bodies)+s.Satellites.Count)
	copy(bodies, s.Bodies)
	for i := 0; i < s.Satellites.Count; i++ {
		bodies = append(bodies, Body{
			Name:         names.name(),
			Parent:       parent,
			Scale:        0.1 + 0.2*r.Float32(),
			OrbitRadius:  4 + 6*r.Float32(),
			RotationRate: 4 * r.Float32(),
			OrbitRate:    0.2 + 1.5*r.Float32(),
			OrbitAngle:   2 * math.Pi * r.Float32(),
		})
	}
	return bodies
}
