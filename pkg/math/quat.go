package math

import "math"

// Quat is a rotation quaternion. W is the scalar part.
type Quat struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
	W float32 `yaml:"w"`
}

// QuatFromYaw returns the rotation of yawDegrees about the up (Z) axis.
func QuatFromYaw(yawDegrees float32) Quat {
	half := float64(yawDegrees) * math.Pi / 360
	return Quat{Z: float32(math.Sin(half)), W: float32(math.Cos(half))}
}
