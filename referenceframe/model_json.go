package referenceframe

import (
	"encoding/json"
	"fmt"

	"github.com/a8m/envsubst"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// DHParamType is the only kinematic_param_type a model file may declare.
const DHParamType = "DH"

// ModelConfigJSON represents all supported fields in a kinematics JSON file.
type ModelConfigJSON struct {
	Name         string          `json:"name"`
	KinParamType string          `json:"kinematic_param_type,omitempty" jsonschema:"enum=DH"`
	DHParams     []DHParamConfig `json:"dhParams"`
	OriginalFile *ModelFile      `json:"-"`
}

// ModelFile is a struct that stores the raw bytes of the file used to create the model as well as its extension,
// which is useful for knowing how to unmarhsal it.
type ModelFile struct {
	Bytes     []byte
	Extension string
}

// UnmarshalModelJSON will parse the given JSON data into a kinematics model. modelName sets the name of the model,
// will use the name from the JSON if string is empty.
func UnmarshalModelJSON(jsonData []byte, modelName string) (*Model, error) {
	m := &ModelConfigJSON{OriginalFile: &ModelFile{Bytes: jsonData, Extension: "json"}}

	// empty data probably means that the robot component has no model information
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}

	if err := json.Unmarshal(jsonData, m); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}

	return m.ParseConfig(modelName)
}

// ParseModelJSONFile will read a given file and then parse the contained JSON data. References to environment
// variables such as ${ARM_SHOULDER_OFFSET} are substituted before parsing.
func ParseModelJSONFile(filename, modelName string) (*Model, error) {
	jsonData, err := envsubst.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json file")
	}
	return UnmarshalModelJSON(jsonData, modelName)
}

// ParseConfig converts the ModelConfigJSON struct into a Model with the name modelName.
func (cfg *ModelConfigJSON) ParseConfig(modelName string) (*Model, error) {
	if modelName == "" {
		modelName = cfg.Name
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	links := cfg.DHParams
	if len(links) > 0 && links[0].Parent != "" {
		var err error
		if links, err = sortLinks(cfg.DHParams); err != nil {
			return nil, err
		}
	}
	return NewModel(modelName, links), nil
}

// Validate reports every structural problem with the config at once.
func (cfg *ModelConfigJSON) Validate() error {
	var errAll error
	if cfg.KinParamType != "" && cfg.KinParamType != DHParamType {
		multierr.AppendInto(&errAll, NewUnsupportedParamTypeError(cfg.KinParamType))
	}

	seen := map[string]bool{}
	parented := lo.CountBy(cfg.DHParams, func(dh DHParamConfig) bool { return dh.Parent != "" })
	if parented != 0 && parented != len(cfg.DHParams) {
		multierr.AppendInto(&errAll, errors.New("either every dhParams entry or none must name a parent"))
	}
	for _, dh := range cfg.DHParams {
		if dh.ID == World {
			multierr.AppendInto(&errAll, NewReservedWordError("link", World))
		}
		if dh.ID == "" {
			if parented != 0 {
				multierr.AppendInto(&errAll, errors.New("dhParams entries with a parent need an id"))
			}
			continue
		}
		if seen[dh.ID] {
			multierr.AppendInto(&errAll, NewDuplicateFrameError(dh.ID))
		}
		seen[dh.ID] = true
	}
	return errAll
}

// MarshalJSON serializes the model back into the kinematics file format, links in chain order.
func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(ModelConfigJSON{
		Name:         m.name,
		KinParamType: DHParamType,
		DHParams:     m.Links(),
	})
}

// ModelJSONSchema returns the JSON schema of the kinematics file format.
func ModelJSONSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&ModelConfigJSON{})
}

// sortLinks orders parented links from the base to the single end effector.
func sortLinks(links []DHParamConfig) ([]DHParamConfig, error) {
	byID := lo.KeyBy(links, func(dh DHParamConfig) string { return dh.ID })
	parents := lo.SliceToMap(links, func(dh DHParamConfig) (string, string) { return dh.ID, dh.Parent })

	// find the end effector first - determine which links have no children
	ees := map[string]string{}
	for child, parent := range parents {
		ees[child] = parent
	}
	for _, parent := range parents {
		delete(ees, parent)
	}
	if len(ees) != 1 {
		return nil, fmt.Errorf("%w, have %v", ErrNeedOneEndEffector, lo.Keys(ees))
	}

	// start the search from the end effector
	curr := lo.Keys(ees)[0]
	seen := map[string]bool{curr: true}
	ordered := make([]DHParamConfig, 0, len(links))
	for i := 0; i < len(parents); i++ {
		link, ok := byID[curr]
		if !ok {
			return nil, NewFrameNotInListOfTransformsError(curr)
		}
		ordered = append(ordered, link)

		parent, ok := parents[curr]
		if !ok {
			return nil, NewParentFrameNotInMapOfParentsError(curr)
		}
		if seen[parent] {
			return nil, ErrCircularReference
		}
		seen[parent] = true
		curr = parent
	}
	if curr != World {
		return nil, NewFrameNotInListOfTransformsError(curr)
	}

	// After the above loop, the links are in reverse order, so we reverse the list.
	return lo.Reverse(ordered), nil
}
