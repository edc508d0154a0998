package referenceframe

import (
	"go.uber.org/multierr"
)

// Model is a named serial chain of revolute joints described by DH parameters. A Model never changes after
// construction; it is safe to share between goroutines.
type Model struct {
	name  string
	links []DHParamConfig
}

// NewModel constructs a model from an ordered base-to-end-effector list of links. The links are copied.
func NewModel(name string, links []DHParamConfig) *Model {
	owned := make([]DHParamConfig, len(links))
	copy(owned, links)
	return &Model{name: name, links: owned}
}

// Name returns the name of this model.
func (m *Model) Name() string {
	return m.name
}

// DoF returns the number of joints in the chain.
func (m *Model) DoF() int {
	return len(m.links)
}

// Links returns a copy of the ordered link parameters.
func (m *Model) Links() []DHParamConfig {
	links := make([]DHParamConfig, len(m.links))
	copy(links, m.links)
	return links
}

// LinkNames returns the id of each link. Unnamed links yield an empty string.
func (m *Model) LinkNames() []string {
	names := make([]string, len(m.links))
	for i, l := range m.links {
		names[i] = l.ID
	}
	return names
}

// CheckFinite reports every link with non-finite parameters.
func (m *Model) CheckFinite() error {
	var errAll error
	for _, l := range m.links {
		multierr.AppendInto(&errAll, l.CheckFinite())
	}
	return errAll
}
