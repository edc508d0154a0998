package spatialmath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/dhfk/utils"
)

// RotationMatrix is a 3x3 matrix in row major order.
// m[3*r + c] is the element in the r'th row and c'th column.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates the rotation matrix from a slice of 9 row major values.
func NewRotationMatrix(m []float64) (*RotationMatrix, error) {
	if len(m) != 9 {
		return nil, fmt.Errorf("input slice has %d elements, need exactly 9", len(m))
	}
	rm := &RotationMatrix{}
	copy(rm.mat[:], m)
	return rm, nil
}

// NewIdentityRotationMatrix returns the rotation matrix of no rotation.
func NewIdentityRotationMatrix() *RotationMatrix {
	return &RotationMatrix{mat: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

func newRotationMatrixFromMat3(m mgl64.Mat3) *RotationMatrix {
	rm := &RotationMatrix{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			rm.mat[3*r+c] = m.At(r, c)
		}
	}
	return rm
}

// At returns the float corresponding to the element at the specified location.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[3*row+col]
}

// Row returns the a 3 element vector corresponding to the specified row.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[3*row], Y: rm.mat[3*row+1], Z: rm.mat[3*row+2]}
}

// Col returns the a 3 element vector corresponding to the specified col.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.At(0, col), Y: rm.At(1, col), Z: rm.At(2, col)}
}

// Mul rotates the given vector.
func (rm *RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{X: rm.Row(0).Dot(v), Y: rm.Row(1).Dot(v), Z: rm.Row(2).Dot(v)}
}

// Dense returns a copy of the matrix as a gonum dense matrix.
func (rm *RotationMatrix) Dense() *mat.Dense {
	data := make([]float64, 9)
	copy(data, rm.mat[:])
	return mat.NewDense(3, 3, data)
}

// IsOrthonormal reports whether RᵗR is within tol of the identity and det(R) is within tol of +1.
func (rm *RotationMatrix) IsOrthonormal(tol float64) bool {
	r := rm.Dense()
	var rtr mat.Dense
	rtr.Mul(r.T(), r)
	if !mat.EqualApprox(&rtr, mat.NewDiagDense(3, []float64{1, 1, 1}), tol) {
		return false
	}
	return math.Abs(mat.Det(r)-1) < tol
}

// AxisAngles returns the orientation in axis angle representation.
func (rm *RotationMatrix) AxisAngles() *R4AA {
	return QuatToR4AA(rm.Quaternion())
}

// Quaternion returns orientation in quaternion representation.
func (rm *RotationMatrix) Quaternion() quat.Number {
	return mat3ToQuat(rm.mat3())
}

// EulerAngles returns the intrinsic XYZ decomposition of the rotation, R = Rx(roll)·Ry(pitch)·Rz(yaw).
//
// When |pitch| is at 90 degrees roll and yaw rotate about the same axis and only their
// sum (or difference) is defined. In that case yaw is reported as zero and roll carries the
// whole remaining rotation. Near that orientation roll and yaw are numerically ill-conditioned.
func (rm *RotationMatrix) EulerAngles() *EulerAngles {
	sinPitch := utils.Clamp(rm.At(0, 2), -1, 1)
	ea := &EulerAngles{Pitch: math.Asin(sinPitch)}
	if 1-math.Abs(sinPitch) < gimbalLockEpsilon {
		ea.Roll = math.Atan2(rm.At(2, 1), rm.At(1, 1))
		return ea
	}
	ea.Roll = math.Atan2(-rm.At(1, 2), rm.At(2, 2))
	ea.Yaw = math.Atan2(-rm.At(0, 1), rm.At(0, 0))
	return ea
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (rm *RotationMatrix) RotationMatrix() *RotationMatrix {
	return rm
}

func (rm *RotationMatrix) mat3() mgl64.Mat3 {
	var m mgl64.Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m.Set(r, c, rm.At(r, c))
		}
	}
	return m
}

func (rm *RotationMatrix) String() string {
	return fmt.Sprintf("[%v\n %v\n %v]", rm.mat[0:3], rm.mat[3:6], rm.mat[6:9])
}
