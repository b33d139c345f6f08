// Package plan derives the ordered publish plan for one revision.
package plan

import (
	"strings"

	"git.home.luguber.info/inful/pkgship/internal/descriptor"
	"git.home.luguber.info/inful/pkgship/internal/util/sets"
)

// Plan is the ordered sequence of packages to publish for one revision.
// It is a derived, transient view; build a fresh one per run.
type Plan struct {
	Packages []descriptor.Descriptor
}

// Build evaluates each registry entry against the changed-path set.
// A package with no activation prefix is always included; one with a prefix
// is included iff some changed path starts with it. Registry order is
// preserved exactly. Pure function: no side effects, total over its inputs.
func Build(reg *descriptor.Registry, changed sets.Set[string]) Plan {
	var p Plan
	for _, d := range reg.List() {
		if !d.Conditional() || anyWithPrefix(changed, d.ActivationPrefix) {
			p.Packages = append(p.Packages, d)
		}
	}
	return p
}

func anyWithPrefix(paths sets.Set[string], prefix string) bool {
	for path := range paths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Names returns the planned package names in publish order.
func (p Plan) Names() []string {
	names := make([]string, 0, len(p.Packages))
	for _, d := range p.Packages {
		names = append(names, d.Name)
	}
	return names
}

// Len returns the number of planned packages.
func (p Plan) Len() int { return len(p.Packages) }
