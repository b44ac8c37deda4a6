package compute

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/nbodysim/internal/nbody"
)

// ErrUnknownBackend is returned by Get for names not in the registry.
var ErrUnknownBackend = errors.New("compute: unknown backend")

type Backend interface {
	Name() string
	Advance(s *nbody.System)
	Close()
}

const DefaultBackend = "scalar"

var registry = map[string]func() Backend{
	"scalar":   func() Backend { return NewScalarBackend() },
	"parallel": func() Backend { return NewParallelBackend(0) },
}

// Get returns a fresh backend by name.
func Get(name string) (Backend, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Names())
	}
	return fn(), nil
}

// Names lists the registered backends in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
