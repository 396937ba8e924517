// Package camera provides the framing camera of the viewer.
package camera

import (
	gomath "math"

	"github.com/Faultbox/procscape/internal/engine/mesh"
	"github.com/Faultbox/procscape/pkg/math"
)

// OrbitCamera circles a center point in the renderer's Y-up space.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // distance from center
	Pitch    float32 // elevation angle above the horizon, radians
	Yaw      float32 // heading around the vertical axis, radians

	FOV  float32 // vertical field of view, radians
	Near float32
	Far  float32
}

// NewOrbitCamera creates an orbit camera with the given vertical field of view in degrees.
func NewOrbitCamera(fovDegrees float32) *OrbitCamera {
	return &OrbitCamera{
		Distance: 200,
		Pitch:    0.6,
		FOV:      fovDegrees * gomath.Pi / 180,
		Near:     1,
		Far:      10000,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	pitch, yaw := float64(c.Pitch), float64(c.Yaw)
	offset := math.Vec3{
		X: float32(gomath.Cos(pitch) * gomath.Sin(yaw)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Cos(pitch) * gomath.Cos(yaw)),
	}
	return c.Center.Add(offset.Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// ViewProj returns projection * view.
func (c *OrbitCamera) ViewProj(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// Spin advances the yaw by speed radians per second over dt seconds.
func (c *OrbitCamera) Spin(dt, speed float32) {
	c.Yaw = float32(gomath.Mod(float64(c.Yaw+dt*speed), 2*gomath.Pi))
}

// FitToBounds centers the camera on a Z-up bounding box and backs off until the box's
// bounding sphere fills the vertical field of view.
func (c *OrbitCamera) FitToBounds(b mesh.Bounds) {
	toView := math.ZUpToYUp()
	lo, hi := toView.TransformPoint(b.Min), toView.TransformPoint(b.Max)
	for i := range lo {
		if lo[i] > hi[i] {
			lo[i], hi[i] = hi[i], lo[i]
		}
	}
	lower := math.Vec3{X: lo[0], Y: lo[1], Z: lo[2]}
	upper := math.Vec3{X: hi[0], Y: hi[1], Z: hi[2]}

	c.Center = math.Lerp(lower, upper, 0.5)
	radius := upper.Distance(lower) / 2
	if radius < 1 {
		radius = 1
	}

	c.Distance = radius / float32(gomath.Sin(float64(c.FOV)/2))
	c.Near = c.Distance / 1000
	c.Far = c.Distance + 2*radius
}
