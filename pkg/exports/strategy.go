package exports

import (
	"errors"
	"fmt"

	"github.com/fulmenhq/exportsync/pkg/vfs"
)

// ErrNoEntries is returned by Synthesize when no entry could be discovered.
var ErrNoEntries = errors.New("no entry points found")

// Strategy selects the synthesis variant.
type Strategy int

const (
	StrategyFlat Strategy = iota
	StrategyComponent
)

func (s Strategy) String() string {
	if s == StrategyComponent {
		return "component"
	}
	return "flat"
}

// Plan is the per-run choice of strategy together with its inputs. Exactly
// one of Entries (flat) or Components (component) is populated.
type Plan struct {
	Strategy   Strategy
	Entries    []string
	Components []NamedEntry
}

// NewPlan picks the strategy once. A named mapping always selects component
// mode, even when dist/ also contains loose files; anything else is flat and
// falls back to scanning dist/.
func NewPlan(fsys vfs.FS, decl Declaration, opts Options) Plan {
	if decl.Kind == DeclNamed && len(decl.Named) > 0 {
		return Plan{Strategy: StrategyComponent, Components: uniqueNamed(decl.Named)}
	}
	return Plan{
		Strategy: StrategyFlat,
		Entries:  DiscoverEntries(fsys, decl, opts.distDir(), opts.EntryExtensions),
	}
}

// Names returns the entry names covered by the plan.
func (p Plan) Names() []string {
	if p.Strategy == StrategyComponent {
		names := make([]string, 0, len(p.Components))
		for _, c := range p.Components {
			names = append(names, c.Name)
		}
		return names
	}
	return append([]string(nil), p.Entries...)
}

// Empty reports whether there is nothing to synthesize.
func (p Plan) Empty() bool {
	return len(p.Entries) == 0 && len(p.Components) == 0
}

// Synthesize runs the plan's strategy.
func (p Plan) Synthesize(fsys vfs.FS, root string, opts Options) (*Map, error) {
	if p.Empty() {
		return nil, ErrNoEntries
	}
	switch p.Strategy {
	case StrategyComponent:
		return SynthesizeComponents(fsys, root, p.Components, opts)
	case StrategyFlat:
		return SynthesizeFlat(fsys, p.Entries, opts)
	default:
		return nil, fmt.Errorf("unknown strategy %d", p.Strategy)
	}
}

func uniqueNamed(in []NamedEntry) []NamedEntry {
	seen := make(map[string]bool, len(in))
	out := make([]NamedEntry, 0, len(in))
	for _, e := range in {
		if e.Name == "" || seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		out = append(out, e)
	}
	return out
}
