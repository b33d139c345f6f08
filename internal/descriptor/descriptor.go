// Package descriptor holds the static registry of publishable packages.
// The registry is built once from configuration and never mutated afterwards;
// its order defines both activation evaluation order and publish order.
package descriptor

import (
	"git.home.luguber.info/inful/pkgship/internal/config"
)

// Descriptor describes one publishable package.
type Descriptor struct {
	Name        string
	Manifest    string // path to the package's build manifest
	DocOverride string // optional replacement for the top-level doc file
	// ActivationPrefix gates publishing: empty means always publish, otherwise
	// the package is published only when some changed path starts with it.
	ActivationPrefix string
}

// Conditional reports whether this package is gated on changed paths.
func (d Descriptor) Conditional() bool { return d.ActivationPrefix != "" }

// Registry is a fixed ordered sequence of descriptors.
type Registry struct {
	descriptors []Descriptor
}

// FromConfig builds a registry from validated configuration, preserving order.
func FromConfig(cfg *config.Config) *Registry {
	ds := make([]Descriptor, 0, len(cfg.Packages))
	for _, p := range cfg.Packages {
		ds = append(ds, Descriptor{
			Name:             p.Name,
			Manifest:         p.Manifest,
			DocOverride:      p.DocOverride,
			ActivationPrefix: p.ActivationPrefix,
		})
	}
	return &Registry{descriptors: ds}
}

// List returns the descriptors in registry order. The returned slice is a
// copy; callers cannot mutate the registry through it.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Len returns the number of registered packages.
func (r *Registry) Len() int { return len(r.descriptors) }
