package commands

type Registry struct {
	defs []Definition
}

func NewRegistry(defs []Definition) *Registry {
	return &Registry{defs: defs}
}

// Definitions returns the registered definitions in registration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Lookup finds a definition by name or alias.
func (r *Registry) Lookup(name string) (Definition, bool) {
	for _, def := range r.defs {
		if def.Name == name || contains(def.Aliases, name) {
			return def, true
		}
	}
	return Definition{}, false
}
