package referenceframe

import (
	"math"

	"github.com/pkg/errors"
)

// World is the reserved name of the base frame every chain is rooted in.
const World = "world"

// DHParamConfig is the fixed Denavit-Hartenberg geometry of one revolute joint: the transform from the
// previous link frame to this one, excluding the joint variable theta.
//
// A and D are lengths in whatever unit the caller uses consistently (the bundled models use meters).
// Alpha is in radians. ID and Parent are only used to name and order links read from model files.
type DHParamConfig struct {
	ID     string  `json:"id,omitempty" jsonschema:"description=unique link name"`
	Parent string  `json:"parent,omitempty" jsonschema:"description=id of the previous link or world"`
	A      float64 `json:"a" jsonschema:"description=length along the previous x axis"`
	D      float64 `json:"d" jsonschema:"description=offset along the previous z axis"`
	Alpha  float64 `json:"alpha" jsonschema:"description=twist about the previous x axis in radians"`
}

// CheckFinite returns an error naming the first non-finite parameter. The kinematics themselves accept
// non-finite values and propagate them; this is for callers that want strict validation.
func (cfg DHParamConfig) CheckFinite() error {
	for _, p := range []struct {
		name string
		v    float64
	}{{"a", cfg.A}, {"d", cfg.D}, {"alpha", cfg.Alpha}} {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return errors.Errorf("link %q has non-finite %s: %v", cfg.ID, p.name, p.v)
		}
	}
	return nil
}
