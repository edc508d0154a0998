package kinematics

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/dhfk/referenceframe"
	"go.viam.com/dhfk/spatialmath"
)

var ur5Constants = []dhConstants{
	{0, 0.089, math.Pi / 2},
	{-0.425, 0, 0},
	{-0.392, 0, 0},
	{0, 0.109, math.Pi / 2},
	{0, 0.095, -math.Pi / 2},
	{0, 0.082, 0},
}

var ur5eConstants = []dhConstants{
	{0.0000, 0.1625, math.Pi / 2},
	{-0.4250, 0.0000, 0},
	{-0.3922, 0.0000, 0},
	{0.0000, 0.1333, math.Pi / 2},
	{0.0000, 0.0997, -1 * math.Pi / 2},
	{0.0000, 0.0996, 0},
}

func linksOf(constants []dhConstants) []referenceframe.DHParamConfig {
	links := make([]referenceframe.DHParamConfig, len(constants))
	for i, c := range constants {
		links[i] = c.link()
	}
	return links
}

// referencePosition composes the chain with gonum dense matrices.
func referencePosition(constants []dhConstants, jointRadians []float64) *mat.Dense {
	res := mat.NewDense(4, 4, nil)
	res.Copy(mat.NewDiagDense(4, []float64{1, 1, 1, 1}))
	for i, theta := range jointRadians {
		var temp mat.Dense
		temp.Mul(res, constants[i].matrix(theta))
		res = &temp
	}
	return res
}

func randomAngles(seed *rand.Rand, n int) []float64 {
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = (seed.Float64()*2 - 1) * 2 * math.Pi
	}
	return angles
}

func TestUR5Home(t *testing.T) {
	res, err := ForwardKinematicsFloats(make([]float64, 6), linksOf(ur5Constants))
	test.That(t, err, test.ShouldBeNil)

	ref := referencePosition(ur5Constants, make([]float64, 6))
	ee := res.EndEffector.Point()
	test.That(t, ee.X, test.ShouldAlmostEqual, ref.At(0, 3), 1e-9)
	test.That(t, ee.Y, test.ShouldAlmostEqual, ref.At(1, 3), 1e-9)
	test.That(t, ee.Z, test.ShouldAlmostEqual, ref.At(2, 3), 1e-9)
	test.That(t, mat.EqualApprox(res.EndEffector.Dense(), ref, 1e-9), test.ShouldBeTrue)

	expected := []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 0.089},
		{X: -0.425, Y: 0, Z: 0.089},
		{X: -0.817, Y: 0, Z: 0.089},
		{X: -0.817, Y: -0.109, Z: 0.089},
		{X: -0.817, Y: -0.109, Z: -0.006},
		{X: -0.817, Y: -0.191, Z: -0.006},
	}
	test.That(t, res.Positions, test.ShouldHaveLength, len(expected))
	for i, want := range expected {
		test.That(t, res.Positions[i].X, test.ShouldAlmostEqual, want.X, 1e-9)
		test.That(t, res.Positions[i].Y, test.ShouldAlmostEqual, want.Y, 1e-9)
		test.That(t, res.Positions[i].Z, test.ShouldAlmostEqual, want.Z, 1e-9)
	}

	// the end effector at home is the base frame rotated 90 degrees about x
	roll, pitch, yaw := res.EulerDegrees()
	test.That(t, roll, test.ShouldAlmostEqual, 90, 1e-9)
	test.That(t, pitch, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, yaw, test.ShouldAlmostEqual, 0, 1e-9)
}

func TestUR5HomeEulerHasNoSignedZeros(t *testing.T) {
	res, err := ForwardKinematicsFloats(make([]float64, 6), linksOf(ur5Constants))
	test.That(t, err, test.ShouldBeNil)

	roll, pitch, yaw := res.EulerDegrees()
	test.That(t, fmt.Sprintf("%.2f %.2f %.2f", roll, pitch, yaw), test.ShouldEqual, "90.00 0.00 0.00")
	test.That(t, math.Signbit(pitch), test.ShouldBeFalse)
	test.That(t, math.Signbit(yaw), test.ShouldBeFalse)
	test.That(t, res.String(), test.ShouldContainSubstring, "Roll:90.00, Pitch:0.00, Yaw:0.00")
}

func TestUR5eForwardKinematics(t *testing.T) {
	// data came from excel file found here, in millimeters
	// https://www.universal-robots.com/articles/ur/application-installation/dh-parameters-for-calculations-of-kinematics-and-dynamics/
	for _, tc := range []struct {
		joints  []float64
		x, y, z float64
	}{
		{[]float64{0, 0, 0, 0, 0, 0}, -817.2, -232.90, 62.80},
		{[]float64{math.Pi / 2, 0, 0, 0, 0, 0}, 232.90, -817.2, 62.80},
		{[]float64{0, math.Pi / -2, 0, 0, 0, 0}, -99.7, -232.90, 979.70},
		{[]float64{0, 0, 0, 0, math.Pi / 2, 0}, -916.80, -133.3, 62.8},
		{[]float64{math.Pi / 2, math.Pi / 2, math.Pi / 2, math.Pi / 2, math.Pi / 2, math.Pi / 2}, 133.3, 292.5, -162.9},
		{[]float64{math.Pi / 4, math.Pi / 2, 0, math.Pi / 4, math.Pi / 2, 0}, 193.91, 5.39, -654.63},
	} {
		res, err := ForwardKinematicsFloats(tc.joints, linksOf(ur5eConstants))
		test.That(t, err, test.ShouldBeNil)
		pt := res.EndEffector.Point().Mul(1000)
		test.That(t, pt.X, test.ShouldAlmostEqual, tc.x, .1)
		test.That(t, pt.Y, test.ShouldAlmostEqual, tc.y, .1)
		test.That(t, pt.Z, test.ShouldAlmostEqual, tc.z, .1)

		ref := referencePosition(ur5eConstants, tc.joints)
		test.That(t, mat.EqualApprox(res.EndEffector.Dense(), ref, 1e-9), test.ShouldBeTrue)
	}
}

func TestIdentityChain(t *testing.T) {
	for n := 0; n < 8; n++ {
		res, err := ForwardKinematics(make([]referenceframe.Input, n), make([]referenceframe.DHParamConfig, n))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, res.Positions, test.ShouldHaveLength, n+1)
		test.That(t, res.Frames, test.ShouldHaveLength, n+1)
		for _, p := range res.Positions {
			test.That(t, p, test.ShouldResemble, r3.Vector{})
		}
		test.That(t, res.EndEffector.AlmostEqual(spatialmath.NewZeroTransform(), 0), test.ShouldBeTrue)
	}
}

func TestZeroJointChain(t *testing.T) {
	res, err := ForwardKinematics(nil, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Positions, test.ShouldResemble, []r3.Vector{{}})
	test.That(t, res.EndEffector.AlmostEqual(spatialmath.NewZeroTransform(), 0), test.ShouldBeTrue)
	roll, pitch, yaw := res.EulerDegrees()
	test.That(t, roll, test.ShouldEqual, 0.0)
	test.That(t, pitch, test.ShouldEqual, 0.0)
	test.That(t, yaw, test.ShouldEqual, 0.0)
}

func TestDimensionMismatch(t *testing.T) {
	links := linksOf(ur5Constants)
	for _, n := range []int{0, 5, 7} {
		res, err := ForwardKinematicsFloats(make([]float64, n), links)
		test.That(t, res, test.ShouldBeNil)
		test.That(t, errors.Is(err, referenceframe.ErrDimensionMismatch), test.ShouldBeTrue)
	}
}

func TestLengthAndOrthonormality(t *testing.T) {
	seed := rand.New(rand.NewSource(23))
	links := linksOf(ur5eConstants)
	for i := 0; i < 1000; i++ {
		res, err := ForwardKinematicsFloats(randomAngles(seed, len(links)), links)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, res.Positions, test.ShouldHaveLength, len(links)+1)
		for j, tf := range res.Frames {
			test.That(t, tf.IsRigid(1e-9), test.ShouldBeTrue)
			test.That(t, tf.Point(), test.ShouldResemble, res.Positions[j])
		}
		test.That(t, res.EndEffector, test.ShouldResemble, res.Frames[len(links)])
	}
}

func TestDeterminism(t *testing.T) {
	seed := rand.New(rand.NewSource(7))
	links := linksOf(ur5Constants)
	angles := randomAngles(seed, len(links))

	first, err := ForwardKinematicsFloats(angles, links)
	test.That(t, err, test.ShouldBeNil)
	second, err := ForwardKinematicsFloats(angles, links)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, cmp.Diff(first.Positions, second.Positions), test.ShouldBeEmpty)
	test.That(t, first.EndEffector.AlmostEqual(second.EndEffector, 0), test.ShouldBeTrue)
}

func TestPrefixIndependence(t *testing.T) {
	seed := rand.New(rand.NewSource(11))
	links := linksOf(ur5eConstants)
	base := randomAngles(seed, len(links))
	baseRes, err := ForwardKinematicsFloats(base, links)
	test.That(t, err, test.ShouldBeNil)

	for k := range base {
		changed := append([]float64(nil), base...)
		changed[k] += 0.7
		res, err := ForwardKinematicsFloats(changed, links)
		test.That(t, err, test.ShouldBeNil)

		// positions[0..k] only depend on joints before k
		test.That(t, cmp.Diff(baseRes.Positions[:k+1], res.Positions[:k+1]), test.ShouldBeEmpty)
	}
}

func TestInputsNotMutated(t *testing.T) {
	links := linksOf(ur5Constants)
	linksCopy := append([]referenceframe.DHParamConfig(nil), links...)
	angles := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	inputs := referenceframe.FloatsToInputs(angles)

	_, err := ForwardKinematics(inputs, links)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, links, test.ShouldResemble, linksCopy)
	test.That(t, referenceframe.InputsToFloats(inputs), test.ShouldResemble, angles)
}

func TestNonFinitePropagates(t *testing.T) {
	links := linksOf(ur5Constants)
	angles := make([]float64, len(links))
	angles[2] = math.NaN()

	res, err := ForwardKinematicsFloats(angles, links)
	test.That(t, err, test.ShouldBeNil)
	for i := 0; i <= 2; i++ {
		test.That(t, math.IsNaN(res.Positions[i].X), test.ShouldBeFalse)
	}
	test.That(t, math.IsNaN(res.EndEffector.Point().X), test.ShouldBeTrue)
}

func TestConcurrentEvaluation(t *testing.T) {
	links := linksOf(ur5eConstants)
	seed := rand.New(rand.NewSource(3))
	jobs := make([][]float64, 64)
	want := make([]*FKResult, len(jobs))
	for i := range jobs {
		jobs[i] = randomAngles(seed, len(links))
		res, err := ForwardKinematicsFloats(jobs[i], links)
		test.That(t, err, test.ShouldBeNil)
		want[i] = res
	}

	got := make([]*FKResult, len(jobs))
	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = ForwardKinematicsFloats(jobs[i], links)
		}(i)
	}
	wg.Wait()

	for i := range jobs {
		test.That(t, cmp.Diff(want[i].Positions, got[i].Positions, cmpopts.EquateApprox(0, 1e-12)), test.ShouldBeEmpty)
	}
}

func TestComputeModel(t *testing.T) {
	m, err := referenceframe.BuiltinModel("ur5")
	test.That(t, err, test.ShouldBeNil)

	res, err := ComputeModel(m, make([]referenceframe.Input, m.DoF()))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Names, test.ShouldResemble, m.LinkNames())
	test.That(t, res.EndEffector.Point().X, test.ShouldAlmostEqual, -0.817, 1e-9)

	out := res.String()
	test.That(t, out, test.ShouldContainSubstring, "world")
	test.That(t, out, test.ShouldContainSubstring, "shoulder_pan")
	test.That(t, strings.Count(out, "\n"), test.ShouldBeGreaterThan, m.DoF())

	_, err = ComputeModel(m, make([]referenceframe.Input, 2))
	test.That(t, errors.Is(err, referenceframe.ErrDimensionMismatch), test.ShouldBeTrue)
}

func TestEndEffectorPose(t *testing.T) {
	res, err := ForwardKinematicsFloats([]float64{math.Pi / 2}, []referenceframe.DHParamConfig{{A: 2}})
	test.That(t, err, test.ShouldBeNil)
	pose := res.EndEffectorPose()
	test.That(t, pose.Point().X, test.ShouldAlmostEqual, 0)
	test.That(t, pose.Point().Y, test.ShouldAlmostEqual, 2)
	ea := pose.Orientation().EulerAngles()
	test.That(t, ea.Yaw, test.ShouldAlmostEqual, math.Pi/2)
}
