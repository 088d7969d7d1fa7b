package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

type CameraState struct {
	Position mgl32.Vec3 `json:"position"`
	Yaw      float32    `json:"yaw"`
	Pitch    float32    `json:"pitch"`
	Aspect   float32    `json:"aspect"`
	Overview bool       `json:"overview"`
}

type ObjectState struct {
	Name   string     `json:"name"`
	Parent string     `json:"parent,omitempty"`
	Local  mgl32.Mat4 `json:"local"`
	World  mgl32.Mat4 `json:"world"`
}

// Position is the object's origin in world space.
func (o ObjectState) Position() mgl32.Vec3 {
	return o.World.Col(3).Vec3()
}

// Snapshot is a copy of one updated frame, safe to hand to other goroutines.
type Snapshot struct {
	Frame      uint64        `json:"frame"`
	Time       float64       `json:"time"`
	Camera     CameraState   `json:"camera"`
	View       mgl32.Mat4    `json:"view"`
	Projection mgl32.Mat4    `json:"projection"`
	Objects    []ObjectState `json:"objects"`
}

func (s *Snapshot) Object(name string) (ObjectState, bool) {
	for _, o := range s.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return ObjectState{}, false
}
