package kinematics

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"

	"go.viam.com/dhfk/referenceframe"
	"go.viam.com/dhfk/spatialmath"
)

// FKResult is the output of one forward kinematics evaluation. It is owned by the caller.
type FKResult struct {
	// Positions[0] is the base origin; Positions[i] is the origin of link i-1's frame. len == links+1.
	Positions []r3.Vector
	// Frames[i] is the base-to-frame transform whose translation is Positions[i]. Frames[0] is identity.
	Frames []spatialmath.Transform
	// EndEffector is the final accumulated transform, equal to the last entry of Frames.
	EndEffector spatialmath.Transform
	// Names optionally labels Frames[1:].
	Names []string
}

func (res *FKResult) append(tf spatialmath.Transform) {
	res.Positions = append(res.Positions, tf.Point())
	res.Frames = append(res.Frames, tf)
}

// EndEffectorPose returns the pose of the end effector relative to the base.
func (res *FKResult) EndEffectorPose() spatialmath.Pose {
	return res.EndEffector
}

// EulerDegrees decomposes the end effector rotation into intrinsic XYZ roll, pitch and yaw, in degrees, for
// display. Near pitch = ±90° roll and yaw are not unique; see spatialmath.RotationMatrix.EulerAngles.
func (res *FKResult) EulerDegrees() (roll, pitch, yaw float64) {
	return res.EndEffector.RotationMatrix().EulerAngles().Degrees()
}

// String prints out a table of each frame, with columns of name, position and orientation in degrees.
func (res *FKResult) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Position", "Orientation"})
	for i, tf := range res.Frames {
		name := referenceframe.World
		if i > 0 {
			name = fmt.Sprintf("joint %d", i)
			if i-1 < len(res.Names) && res.Names[i-1] != "" {
				name = res.Names[i-1]
			}
		}
		pt := tf.Point()
		roll, pitch, yaw := tf.RotationMatrix().EulerAngles().Degrees()
		t.AppendRow(table.Row{
			fmt.Sprintf("%d", i),
			name,
			fmt.Sprintf("X:%.4f, Y:%.4f, Z:%.4f", pt.X, pt.Y, pt.Z),
			fmt.Sprintf("Roll:%.2f, Pitch:%.2f, Yaw:%.2f", roll, pitch, yaw),
		})
	}
	return t.Render()
}
