package spatialmath

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Pose represents a 6dof pose, position and orientation, with respect to some parent frame.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

// Transform is a 4x4 homogeneous transform: a 3x3 rotation block, a 3x1 translation block and the
// fixed bottom row [0 0 0 1]. It is a value type; copies never share storage.
type Transform struct {
	m mgl64.Mat4
}

// NewZeroTransform returns the identity transform.
func NewZeroTransform() Transform {
	return Transform{m: mgl64.Ident4()}
}

// NewTransform builds a transform from a rotation and a translation.
func NewTransform(rot *RotationMatrix, pt r3.Vector) Transform {
	t := NewZeroTransform()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			t.m.Set(r, c, rot.At(r, c))
		}
	}
	t.m.Set(0, 3, pt.X)
	t.m.Set(1, 3, pt.Y)
	t.m.Set(2, 3, pt.Z)
	return t
}

// NewTransformFromPose builds the transform equivalent of a pose.
func NewTransformFromPose(p Pose) Transform {
	return NewTransform(p.Orientation().RotationMatrix(), p.Point())
}

// NewTransformFromRows builds a transform from the top three rows of a homogeneous matrix.
// The bottom row is always [0 0 0 1].
func NewTransformFromRows(rows [3][4]float64) Transform {
	t := NewZeroTransform()
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			t.m.Set(r, c, rows[r][c])
		}
	}
	return t
}

// At returns the element at the given row and column.
func (t Transform) At(row, col int) float64 {
	return t.m.At(row, col)
}

// Compose returns t·next, the transform of next's frame expressed in t's parent frame.
func (t Transform) Compose(next Transform) Transform {
	return Transform{m: t.m.Mul4(next.m)}
}

// Point returns the translation block.
func (t Transform) Point() r3.Vector {
	return r3.Vector{X: t.m.At(0, 3), Y: t.m.At(1, 3), Z: t.m.At(2, 3)}
}

// Orientation returns the rotation block as an Orientation.
func (t Transform) Orientation() Orientation {
	return t.RotationMatrix()
}

// RotationMatrix returns a copy of the rotation block.
func (t Transform) RotationMatrix() *RotationMatrix {
	return newRotationMatrixFromMat3(t.m.Mat3())
}

// Mat4 returns the underlying column major matrix.
func (t Transform) Mat4() mgl64.Mat4 {
	return t.m
}

// Dense returns a copy of the transform as a 4x4 gonum dense matrix.
func (t Transform) Dense() *mat.Dense {
	d := mat.NewDense(4, 4, nil)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			d.Set(r, c, t.m.At(r, c))
		}
	}
	return d
}

// IsRigid reports whether the rotation block is orthonormal with determinant +1 within tol.
func (t Transform) IsRigid(tol float64) bool {
	return t.RotationMatrix().IsOrthonormal(tol)
}

// AlmostEqual compares every element of the two transforms.
func (t Transform) AlmostEqual(other Transform, tol float64) bool {
	for i := range t.m {
		if math.Abs(t.m[i]-other.m[i]) > tol {
			return false
		}
	}
	return true
}

// String prints the matrix one row per line.
func (t Transform) String() string {
	var b strings.Builder
	for r := 0; r < 4; r++ {
		fmt.Fprintf(&b, "%v\n", []float64{t.At(r, 0), t.At(r, 1), t.At(r, 2), t.At(r, 3)})
	}
	return b.String()
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	return a.Point().Sub(b.Point()).Norm() < tol && OrientationAlmostEqual(a.Orientation(), b.Orientation())
}
