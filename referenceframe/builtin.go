package referenceframe

import (
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

//go:embed models/*.json
var builtinModels embed.FS

// BuiltinModelNames returns the sorted names of the models bundled with this package.
func BuiltinModelNames() []string {
	entries, err := builtinModels.ReadDir("models")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// BuiltinModel parses one of the bundled kinematics files by name, e.g. "ur5".
func BuiltinModel(name string) (*Model, error) {
	data, err := builtinModels.ReadFile(path.Join("models", name+".json"))
	if err != nil {
		return nil, errors.Errorf("no builtin model named %q, have %v", name, BuiltinModelNames())
	}
	return UnmarshalModelJSON(data, "")
}
