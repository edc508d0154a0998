package referenceframe

import "github.com/pkg/errors"

// ErrDimensionMismatch is returned when the number of joint inputs does not equal the number of links in a chain,
// or when two joint configurations of different lengths are combined.
var ErrDimensionMismatch = errors.New("input dimension mismatch")

// ErrNoModelInformation is used when there is no model information.
var ErrNoModelInformation = errors.New("no model information")

// ErrCircularReference is returned when a parent chain loops back on itself.
var ErrCircularReference = errors.New("infinite loop finding path from end effector to world")

// ErrNeedOneEndEffector is returned when a parented model does not have exactly one leaf link.
var ErrNeedOneEndEffector = errors.New("need exactly one end effector")

// NewDimensionMismatchError returns an error wrapping ErrDimensionMismatch that names both counts.
func NewDimensionMismatchError(inputs, links int) error {
	return errors.Wrapf(ErrDimensionMismatch, "got %d inputs for %d links", inputs, links)
}

// NewFrameNotInListOfTransformsError returns an error indicating that a frame of
// the given name is missing from the provided list of transforms.
func NewFrameNotInListOfTransformsError(frameName string) error {
	return errors.Errorf("frame named '%s' not in the list of transforms", frameName)
}

// NewParentFrameNotInMapOfParentsError returns an error indicating that a parent of
// the given frame is missing from the map of parents.
func NewParentFrameNotInMapOfParentsError(frameName string) error {
	return errors.Errorf("parent of frame '%s' not in the map of parents", frameName)
}

// NewReservedWordError returns an error indicating that a model used a name reserved for the world frame.
func NewReservedWordError(configType, reservedWord string) error {
	return errors.Errorf("reserved word: cannot name a %s '%s'", configType, reservedWord)
}

// NewDuplicateFrameError returns an error indicating two links share an id.
func NewDuplicateFrameError(frameName string) error {
	return errors.Errorf("duplicate link id '%s'", frameName)
}

// NewUnsupportedParamTypeError returns an error for a kinematic_param_type other than DH.
func NewUnsupportedParamTypeError(paramType string) error {
	return errors.Errorf("unsupported param type: %s, supported params are DH", paramType)
}
