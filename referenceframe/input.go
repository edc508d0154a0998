package referenceframe

import (
	"math"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/dhfk/utils"
)

// Input wraps the input to a mutable frame. For the revolute joints of a DH chain this is a joint angle in radians.
type Input struct {
	Value float64
}

// FloatsToInputs wraps a slice of floats in Inputs.
func FloatsToInputs(floats []float64) []Input {
	return lo.Map(floats, func(f float64, _ int) Input { return Input{f} })
}

// InputsToFloats unwraps Inputs to raw floats.
func InputsToFloats(inputs []Input) []float64 {
	return lo.Map(inputs, func(in Input, _ int) float64 { return in.Value })
}

// InputsFromDegrees converts joint angles given in degrees to radian Inputs.
func InputsFromDegrees(degrees []float64) []Input {
	return lo.Map(degrees, func(d float64, _ int) Input { return Input{utils.DegToRad(d)} })
}

// InputsToDegrees unwraps radian Inputs into degrees.
func InputsToDegrees(inputs []Input) []float64 {
	return lo.Map(inputs, func(in Input, _ int) float64 { return utils.RadToDeg(in.Value) })
}

// InterpolateInputs will return a set of inputs that are the specified percent between the two given sets of
// inputs. For example, setting by to 0.5 will return the inputs halfway between the from/to values, and 0.25 would
// return one quarter of the way from "from" to "to".
func InterpolateInputs(from, to []Input, by float64) ([]Input, error) {
	if len(from) != len(to) {
		return nil, errors.Wrapf(ErrDimensionMismatch, "cannot interpolate from %d inputs to %d inputs", len(from), len(to))
	}
	newVals := make([]Input, 0, len(from))
	for i, j1 := range from {
		newVals = append(newVals, Input{j1.Value + ((to[i].Value - j1.Value) * by)})
	}
	return newVals, nil
}

// InputsL2Distance returns the two-norm (the sqrt of the sum of the squares) between two Input sets.
func InputsL2Distance(from, to []Input) float64 {
	if len(from) != len(to) {
		return math.Inf(1)
	}
	diff := make([]float64, 0, len(from))
	for i, f := range from {
		diff = append(diff, f.Value-to[i].Value)
	}
	// 2 is the L value returning a standard L2 Normalization
	return floats.Norm(diff, 2)
}
