package viz

import (
	"testing"

	"github.com/san-kum/nbodysim/internal/nbody"
)

func TestCameraProject(t *testing.T) {
	cam := NewCamera(32)

	tests := []struct {
		name   string
		p      nbody.Vec3
		x, y   int
		inside bool
	}{
		{"origin", nbody.Vec3{0, 0, 0}, 50, 50, true},
		{"half extent x", nbody.Vec3{16, 0, 0}, 75, 50, true},
		{"half extent y", nbody.Vec3{0, 16, 0}, 50, 25, true},
		{"z ignored from above", nbody.Vec3{0, 0, 16}, 50, 50, true},
		{"outside", nbody.Vec3{40, 0, 0}, 113, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := cam.Project(tt.p, 100, 100)
			if x != tt.x || y != tt.y || ok != tt.inside {
				t.Errorf("got (%d, %d, %v), want (%d, %d, %v)", x, y, ok, tt.x, tt.y, tt.inside)
			}
		})
	}
}

func TestCameraTiltAndZoom(t *testing.T) {
	cam := NewCamera(32)
	cam.TiltBy(10)
	if cam.Tilt > 1.5708 {
		t.Errorf("tilt not clamped: %v", cam.Tilt)
	}

	// edge-on: z is now vertical
	_, y, _ := cam.Project(nbody.Vec3{0, 0, 16}, 100, 100)
	if y != 25 {
		t.Errorf("expected y 25 edge-on, got %d", y)
	}

	cam.Reset()
	cam.ZoomIn()
	x, _, _ := cam.Project(nbody.Vec3{16, 0, 0}, 100, 100)
	if x <= 75 {
		t.Errorf("zoom in should move points outward, got x=%d", x)
	}
}
