package math

// Transform places a mesh: a room-local position and a yaw in degrees about Z.
type Transform struct {
	Position Vec3
	Yaw      float32
}

// Rotation returns the yaw as a quaternion.
func (t Transform) Rotation() Quat {
	return QuatFromYaw(t.Yaw)
}

type transformYAML struct {
	Position Vec3    `yaml:"position"`
	Yaw      float32 `yaml:"yaw"`
	Rotation Quat    `yaml:"rotation"`
}

// MarshalYAML writes the yaw alongside its quaternion, which engines consume directly.
func (t Transform) MarshalYAML() (interface{}, error) {
	return transformYAML{Position: t.Position, Yaw: t.Yaw, Rotation: t.Rotation()}, nil
}

// NormalizeYaw wraps degrees into [0, 360).
func NormalizeYaw(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}
