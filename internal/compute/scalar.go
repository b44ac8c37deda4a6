package compute

import "github.com/san-kum/nbodysim/internal/nbody"

type ScalarBackend struct{}

func NewScalarBackend() *ScalarBackend {
	return &ScalarBackend{}
}

func (b *ScalarBackend) Name() string            { return "scalar" }
func (b *ScalarBackend) Advance(s *nbody.System) { nbody.Advance(s) }
func (b *ScalarBackend) Close()                  {}
