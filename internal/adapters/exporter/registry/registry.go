package registry

import (
	"sort"

	"locsmith/internal/ports"
)

type Registry struct {
	byFormat map[string]ports.TableExporter
}

func New() *Registry { return &Registry{byFormat: map[string]ports.TableExporter{}} }

func (r *Registry) Register(e ports.TableExporter) { r.byFormat[e.Format()] = e }

func (r *Registry) Get(format string) (ports.TableExporter, bool) {
	e, ok := r.byFormat[format]
	return e, ok
}

func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.byFormat))
	for f := range r.byFormat {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
