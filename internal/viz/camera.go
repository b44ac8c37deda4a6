package viz

import (
	"math"

	"github.com/san-kum/nbodysim/internal/nbody"
)

// Camera projects heliocentric coordinates onto the canvas. Tilt rotates
// about the x axis (0 looks straight down on the x-y plane, pi/2 is edge-on
// with +z up), Yaw about z.
// Extent is the distance, in AU, from the centre to the nearest canvas edge
// at zoom 1.
type Camera struct {
	Tilt, Yaw float64
	Zoom      float64
	Extent    float64
}

func NewCamera(extent float64) *Camera {
	return &Camera{Zoom: 1, Extent: extent}
}

func (c *Camera) ZoomIn()             { c.Zoom = math.Min(50, c.Zoom*1.25) }
func (c *Camera) ZoomOut()            { c.Zoom = math.Max(0.02, c.Zoom/1.25) }
func (c *Camera) Rotate(dYaw float64) { c.Yaw += dYaw }

// TiltBy changes the tilt, clamped to [-pi/2, pi/2].
func (c *Camera) TiltBy(d float64) {
	c.Tilt = math.Max(-math.Pi/2, math.Min(math.Pi/2, c.Tilt+d))
}

func (c *Camera) Reset() {
	c.Tilt, c.Yaw, c.Zoom = 0, 0, 1
}

// rotate applies yaw then tilt.
func (c *Camera) rotate(p nbody.Vec3) nbody.Vec3 {
	cy, sy := math.Cos(c.Yaw), math.Sin(c.Yaw)
	x, y, z := p[0]*cy-p[1]*sy, p[0]*sy+p[1]*cy, p[2]
	ct, st := math.Cos(c.Tilt), math.Sin(c.Tilt)
	return nbody.Vec3{x, y*ct + z*st, z*ct - y*st}
}

// Project maps p to dot coordinates on a w x h dot canvas. Dot aspect is
// roughly 1:1 for braille cells in a typical terminal font. The boolean is
// false when the point falls outside the canvas.
func (c *Camera) Project(p nbody.Vec3, w, h int) (int, int, bool) {
	r := c.rotate(p)
	half := float64(min(w, h)) / 2
	scale := half / c.Extent * c.Zoom
	x := int(math.Round(float64(w)/2 + r[0]*scale))
	y := int(math.Round(float64(h)/2 - r[1]*scale))
	return x, y, x >= 0 && x < w && y >= 0 && y < h
}
