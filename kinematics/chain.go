package kinematics

import (
	"github.com/golang/geo/r3"

	"go.viam.com/dhfk/referenceframe"
	"go.viam.com/dhfk/spatialmath"
)

// ForwardKinematics composes the DH transforms of links, each rotated by its joint input, from the base to the
// end effector. The result holds the base origin followed by the origin of every link frame.
//
// inputs must have exactly one entry per link; otherwise an error wrapping referenceframe.ErrDimensionMismatch
// is returned and nothing is computed.
func ForwardKinematics(inputs []referenceframe.Input, links []referenceframe.DHParamConfig) (*FKResult, error) {
	if len(inputs) != len(links) {
		return nil, referenceframe.NewDimensionMismatchError(len(inputs), len(links))
	}

	res := &FKResult{
		Positions: make([]r3.Vector, 0, len(links)+1),
		Frames:    make([]spatialmath.Transform, 0, len(links)+1),
	}
	tf := spatialmath.NewZeroTransform()
	res.append(tf)
	// Order matters: link i's frame is expressed in the frame produced by every joint before it.
	for i, link := range links {
		tf = tf.Compose(DHTransform(inputs[i].Value, link))
		res.append(tf)
	}
	res.EndEffector = tf
	return res, nil
}

// ForwardKinematicsFloats is ForwardKinematics for raw joint angles in radians.
func ForwardKinematicsFloats(angles []float64, links []referenceframe.DHParamConfig) (*FKResult, error) {
	return ForwardKinematics(referenceframe.FloatsToInputs(angles), links)
}

// ComputeModel evaluates the forward kinematics of a model and labels the resulting frames with its link ids.
func ComputeModel(m *referenceframe.Model, inputs []referenceframe.Input) (*FKResult, error) {
	res, err := ForwardKinematics(inputs, m.Links())
	if err != nil {
		return nil, err
	}
	res.Names = m.LinkNames()
	return res, nil
}
