package config

import (
	"io/ioutil"
	"math"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/scene_demo/input"
)

type Window struct {
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	Title  string `yaml:"title" json:"title"`
}

type Camera struct {
	Fov         float32    `yaml:"fov" json:"fov"` // vertical, degrees
	Near        float32    `yaml:"near" json:"near"`
	Far         float32    `yaml:"far" json:"far"`
	Position    [3]float32 `yaml:"position" json:"position"`
	Sensitivity float32    `yaml:"sensitivity" json:"sensitivity"`
	Velocity    float32    `yaml:"velocity" json:"velocity"`
}

// Body is an animated cube. A body with a parent orbits the parent's world transform.
type Body struct {
	Name          string  `yaml:"name" json:"name"`
	Parent        string  `yaml:"parent,omitempty" json:"parent,omitempty"`
	Scale         float32 `yaml:"scale" json:"scale"`
	OrbitRadius   float32 `yaml:"orbit_radius" json:"orbit_radius"`
	RotationRate  float32 `yaml:"rotation_rate" json:"rotation_rate"`
	OrbitRate     float32 `yaml:"orbit_rate" json:"orbit_rate"`
	RotationAngle float32 `yaml:"rotation_angle" json:"rotation_angle"`
	OrbitAngle    float32 `yaml:"orbit_angle" json:"orbit_angle"`
}

type Quad struct {
	Hidden          bool    `yaml:"hidden" json:"hidden"`
	Scale           float32 `yaml:"scale" json:"scale"`
	AngularVelocity float32 `yaml:"angular_velocity" json:"angular_velocity"`
}

type Environment struct {
	Path        string     `yaml:"path" json:"path"`
	Translation [3]float32 `yaml:"translation" json:"translation"`
	RotationY   float32    `yaml:"rotation_y" json:"rotation_y"`
	Scale       float32    `yaml:"scale" json:"scale"`
}

type Scene struct {
	Window         Window           `yaml:"window" json:"window"`
	Camera         Camera           `yaml:"camera" json:"camera"`
	Bodies         []Body           `yaml:"bodies" json:"bodies"`
	Quad           Quad             `yaml:"quad" json:"quad"`
	Environment    Environment      `yaml:"environment" json:"environment"`
	Satellites     RandomSatellites `yaml:"random_satellites" json:"random_satellites"`
	FpsLogInterval float32          `yaml:"fps_log_interval" json:"fps_log_interval"`
	Autopilot      []input.Frame    `yaml:"autopilot,omitempty" json:"autopilot,omitempty"`
}

// Default is the sun, earth and moon setup with a spinning quad and the sponza hall.
func Default() *Scene {
	return &Scene{
		Window: Window{Width: 1024, Height: 576, Title: "scene demo"},
		Camera: Camera{
			Fov:         45,
			Near:        1,
			Far:         500,
			Position:    [3]float32{0, 0, 5},
			Sensitivity: 0.005,
			Velocity:    5,
		},
		Bodies: []Body{
			{Name: "sun", Scale: 1.5, RotationRate: 0.5},
			{Name: "earth", Parent: "sun", Scale: 0.7, OrbitRadius: 3, RotationRate: 3, OrbitRate: 1},
			{Name: "moon", Parent: "earth", Scale: 0.4, OrbitRadius: 2, RotationRate: 0.5, OrbitRate: 5},
		},
		Quad: Quad{Scale: 1.5, AngularVelocity: math.Pi / 4},
		Environment: Environment{
			Path:        "assets/sponza/sponza.gltf",
			Translation: [3]float32{0, -5, 0},
			RotationY:   math.Pi / 2,
			Scale:       0.05,
		},
		FpsLogInterval: 2,
	}
}

// Load reads a yaml scene file over the defaults.
func Load(path string) (*Scene, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Cannot read scene config %q", path)
	}
	return Parse(data)
}

func Parse(data []byte) (*Scene, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "Unmarshaling error")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) Validate() error {
	if s.Camera.Near <= 0 {
		return errors.Errorf("Camera near plane must be positive, got %v", s.Camera.Near)
	}
	if s.Camera.Far <= s.Camera.Near {
		return errors.Errorf("Camera far plane %v must be beyond near plane %v", s.Camera.Far, s.Camera.Near)
	}
	if s.Camera.Fov <= 0 || s.Camera.Fov >= 180 {
		return errors.Errorf("Camera fov %v out of range (0, 180)", s.Camera.Fov)
	}

	// parents must be declared before children, which also rules out cycles
	bodies := s.AllBodies()
	seen := make(map[string]bool, len(bodies))
	for i, b := range bodies {
		if b.Name == "" {
			return errors.Errorf("Body %d has no name", i)
		}
		if seen[b.Name] {
			return errors.Errorf("Duplicate body %q", b.Name)
		}
		if b.Parent != "" && !seen[b.Parent] {
			return errors.Errorf("Body %q references parent %q that is not declared before it", b.Name, b.Parent)
		}
		if b.Scale == 0 {
			return errors.Errorf("Body %q has zero scale", b.Name)
		}
		seen[b.Name] = true
	}

	if !s.Quad.Hidden && s.Quad.Scale == 0 {
		return errors.Errorf("Quad has zero scale")
	}
	if s.Environment.Path != "" && s.Environment.Scale == 0 {
		return errors.Errorf("Environment %q has zero scale", s.Environment.Path)
	}

	if s.Satellites.Count > 0 && len(s.Bodies) == 0 {
		return errors.Errorf("Random satellites need at least one body to orbit")
	}
	if sat := s.Satellites; sat.Count > 0 && sat.Parent != "" && !seen[sat.Parent] {
		return errors.Errorf("Random satellites reference unknown parent %q", sat.Parent)
	}

	for i, f := range s.Autopilot {
		for _, k := range f.Keys {
			if _, ok := input.KeyByName(k); !ok {
				return errors.Errorf("Unknown key %q in autopilot frame %d", k, i)
			}
		}
	}
	return nil
}

func (s *Scene) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
