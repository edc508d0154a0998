// Package kinematics computes forward kinematics for serial revolute manipulators described by
// Denavit-Hartenberg parameters.
//
// Everything in this package is a pure function of its arguments: there is no package state, nothing
// blocks, and results are freshly allocated, so any function may be called from many goroutines at once.
package kinematics

import (
	"math"

	"go.viam.com/dhfk/referenceframe"
	"go.viam.com/dhfk/spatialmath"
)

// DHTransform returns the homogeneous transform from the previous link frame to the frame of link, with the
// joint rotated by theta radians, using the standard DH convention:
//
//	Rz(theta) · Tz(d) · Tx(a) · Rx(alpha)
//
// Every finite input is accepted and yields a rigid transform. NaN or infinite inputs are not trapped; they
// propagate into the result.
func DHTransform(theta float64, link referenceframe.DHParamConfig) spatialmath.Transform {
	st, ct := math.Sin(theta), math.Cos(theta)
	sa, ca := math.Sin(link.Alpha), math.Cos(link.Alpha)
	return spatialmath.NewTransformFromRows([3][4]float64{
		{ct, -st * ca, st * sa, link.A * ct},
		{st, ct * ca, -ct * sa, link.A * st},
		{0, sa, ca, link.D},
	})
}
