package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/dhfk/utils"
)

// If 1-|sin(pitch)| is below this value the decomposition treats the rotation as gimbal locked.
const gimbalLockEpsilon = 1e-9

// Degree values smaller than this are noise from the decomposition.
const displayEpsilon = 1e-9

// EulerAngles are three angles (in radians) used to represent the rotation of an object in 3D Euclidean space.
// They are intrinsic XYZ angles: the frame is rotated about x by Roll, then about the new y by Pitch, then
// about the new z by Yaw, so R = Rx(Roll)·Ry(Pitch)·Rz(Yaw).
// Euler angles are terrible for anything but display. Near Pitch = ±90° Roll and Yaw are not unique.
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// NewEulerAngles creates an empty EulerAngles struct.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{Roll: 0, Pitch: 0, Yaw: 0}
}

// Degrees returns roll, pitch and yaw converted to degrees. Angles within floating point noise of zero are
// returned as exactly +0 so that they do not print as -0.00.
func (ea *EulerAngles) Degrees() (roll, pitch, yaw float64) {
	return utils.SnapZero(utils.RadToDeg(ea.Roll), displayEpsilon),
		utils.SnapZero(utils.RadToDeg(ea.Pitch), displayEpsilon),
		utils.SnapZero(utils.RadToDeg(ea.Yaw), displayEpsilon)
}

// NearGimbalLock reports whether Pitch is within tol radians of ±90°, where Roll and Yaw are ill-defined.
func (ea *EulerAngles) NearGimbalLock(tol float64) bool {
	return utils.Float64AlmostEqual(math.Abs(ea.Pitch), math.Pi/2, tol)
}

// AxisAngles returns the orientation in axis angle representation.
func (ea *EulerAngles) AxisAngles() *R4AA {
	return QuatToR4AA(ea.Quaternion())
}

// Quaternion returns orientation in quaternion representation.
func (ea *EulerAngles) Quaternion() quat.Number {
	return ea.RotationMatrix().Quaternion()
}

// EulerAngles returns orientation in Euler angle representation.
func (ea *EulerAngles) EulerAngles() *EulerAngles {
	return ea
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (ea *EulerAngles) RotationMatrix() *RotationMatrix {
	sr, cr := math.Sincos(ea.Roll)
	sp, cp := math.Sincos(ea.Pitch)
	sy, cy := math.Sincos(ea.Yaw)
	return &RotationMatrix{mat: [9]float64{
		cp * cy, -cp * sy, sp,
		cr*sy + sr*sp*cy, cr*cy - sr*sp*sy, -sr * cp,
		sr*sy - cr*sp*cy, sr*cy + cr*sp*sy, cr * cp,
	}}
}
