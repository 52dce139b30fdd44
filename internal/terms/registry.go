package terms

import (
	"fmt"

	"github.com/vvka-141/pbcore/internal/config"
)

// Registry holds every schema built from one configuration.
type Registry struct {
	schemas map[Name]*Schema
}

// NewRegistry builds all schemas from cfg.
func NewRegistry(cfg config.Config) (*Registry, error) {
	builders := []func(config.Config) (*Schema, error){
		Document, Instantiation, LegacyDocument, LegacyDigitalDocument, LegacyInstantiation,
	}
	r := &Registry{schemas: make(map[Name]*Schema, len(builders))}
	for _, build := range builders {
		s, err := build(cfg)
		if err != nil {
			return nil, err
		}
		r.schemas[s.Name()] = s
	}
	return r, nil
}

// Schema returns the schema called name.
func (r *Registry) Schema(name Name) (*Schema, error) {
	s, ok := r.schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return s, nil
}

// MustSchema is like Schema but panics for unknown names.
func (r *Registry) MustSchema(name Name) *Schema {
	s, err := r.Schema(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Names lists the registered schemas in a stable order.
func (r *Registry) Names() []Name {
	return []Name{
		DocumentSchema, InstantiationSchema,
		LegacyDocumentSchema, LegacyDigitalDocumentSchema, LegacyInstantiationSchema,
	}
}
