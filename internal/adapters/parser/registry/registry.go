package registry

import (
	"sort"

	"locsmith/internal/ports"
)

type Registry struct {
	byFormat map[string]ports.TableParser
}

func New() *Registry { return &Registry{byFormat: map[string]ports.TableParser{}} }

func (r *Registry) Register(p ports.TableParser) { r.byFormat[p.Format()] = p }

func (r *Registry) Get(format string) (ports.TableParser, bool) {
	p, ok := r.byFormat[format]
	return p, ok
}

func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.byFormat))
	for f := range r.byFormat {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
