package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/dhfk/kinematics"
	"go.viam.com/dhfk/logging"
	"go.viam.com/dhfk/referenceframe"
	"go.viam.com/dhfk/utils"
)

// jsonFloat is a float64 that survives JSON encoding when it is not finite. NaN and ±Inf are written as the
// strings "NaN", "+Inf" and "-Inf", since a non-finite joint angle propagates through the chain.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return json.Marshal(v)
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid number %q", s)
		}
		*f = jsonFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

type pointOutput struct {
	X jsonFloat `json:"x"`
	Y jsonFloat `json:"y"`
	Z jsonFloat `json:"z"`
}

func newPointOutput(pt r3.Vector) pointOutput {
	return pointOutput{X: jsonFloat(pt.X), Y: jsonFloat(pt.Y), Z: jsonFloat(pt.Z)}
}

type eulerDegrees struct {
	Roll  jsonFloat `json:"roll"`
	Pitch jsonFloat `json:"pitch"`
	Yaw   jsonFloat `json:"yaw"`
}

type poseOutput struct {
	Point pointOutput  `json:"point"`
	Euler eulerDegrees `json:"euler_degrees"`
}

type fkOutput struct {
	Model       string        `json:"model"`
	Joints      []jsonFloat   `json:"joints_radians"`
	Positions   []pointOutput `json:"positions"`
	EndEffector poseOutput    `json:"end_effector"`
}

// loadModel resolves the model from either --model or --builtin.
func loadModel(c *cli.Context) (*referenceframe.Model, error) {
	file, builtin := c.Path(fkFlagModel), c.String(fkFlagBuiltin)
	switch {
	case file != "" && builtin != "", file == "" && builtin == "":
		return nil, errModelSource
	case file != "":
		logging.Global().Debugw("loading model file", "path", file)
		return referenceframe.ParseModelJSONFile(file, "")
	default:
		return referenceframe.BuiltinModel(builtin)
	}
}

// jointsFlag reads a joint angle flag in radians, converting from degrees if --degrees is set.
func jointsFlag(c *cli.Context, name string) []float64 {
	angles := c.Float64Slice(name)
	if c.Bool(fkFlagDegrees) {
		angles = lo.Map(angles, func(deg float64, _ int) float64 { return utils.DegToRad(deg) })
	}
	return angles
}

// FKAction is the corresponding action for 'fk'.
func FKAction(c *cli.Context) error {
	logger := logging.Global().Sublogger("fk")
	m, err := loadModel(c)
	if err != nil {
		return err
	}

	angles := jointsFlag(c, fkFlagJoints)
	logger.Debugw("computing forward kinematics", "model", m.Name(), "joints", angles)

	res, err := kinematics.ComputeModel(m, referenceframe.FloatsToInputs(angles))
	if err != nil {
		return errors.Wrapf(err, "model %q", m.Name())
	}
	roll, pitch, yaw := res.EulerDegrees()

	if c.Bool(fkFlagJSON) {
		out := fkOutput{
			Model:     m.Name(),
			Joints:    lo.Map(angles, func(a float64, _ int) jsonFloat { return jsonFloat(a) }),
			Positions: lo.Map(res.Positions, func(pt r3.Vector, _ int) pointOutput { return newPointOutput(pt) }),
			EndEffector: poseOutput{
				Point: newPointOutput(res.EndEffector.Point()),
				Euler: eulerDegrees{Roll: jsonFloat(roll), Pitch: jsonFloat(pitch), Yaw: jsonFloat(yaw)},
			},
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		printf(c.App.Writer, "%s", data)
	} else {
		printf(c.App.Writer, "%s (%d joints)", m.Name(), m.DoF())
		printf(c.App.Writer, "%s", res.String())
		pt := res.EndEffector.Point()
		printf(c.App.Writer, "end effector: X:%.4f, Y:%.4f, Z:%.4f  Roll:%.2f, Pitch:%.2f, Yaw:%.2f",
			pt.X, pt.Y, pt.Z, roll, pitch, yaw)
	}

	if nearGimbalLock(pitch) {
		warningf(c.App.ErrWriter, "end effector pitch is %.2f degrees, roll and yaw are not unique near gimbal lock", pitch)
	}
	return nil
}

// SweepAction is the corresponding action for 'sweep'.
func SweepAction(c *cli.Context) error {
	m, err := loadModel(c)
	if err != nil {
		return err
	}
	from, to := jointsFlag(c, sweepFlagFrom), jointsFlag(c, sweepFlagTo)
	logging.Global().Sublogger("sweep").Debugw("sweeping", "model", m.Name(), "from", from, "to", to)

	results, err := kinematics.Sweep(c.Context, referenceframe.FloatsToInputs(from), referenceframe.FloatsToInputs(to),
		c.Int(sweepFlagSteps), m.Links())
	if err != nil {
		return errors.Wrapf(err, "model %q", m.Name())
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Step", "End Effector", "Roll/Pitch/Yaw"})
	for i, res := range results {
		pt := res.EndEffector.Point()
		roll, pitch, yaw := res.EulerDegrees()
		t.AppendRow(table.Row{
			i,
			fmt.Sprintf("X:%.4f, Y:%.4f, Z:%.4f", pt.X, pt.Y, pt.Z),
			fmt.Sprintf("Roll:%.2f, Pitch:%.2f, Yaw:%.2f", roll, pitch, yaw),
		})
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

// ListModelsAction is the corresponding action for 'models'.
func ListModelsAction(c *cli.Context) error {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Name", "DoF", "Links"})
	for _, name := range referenceframe.BuiltinModelNames() {
		m, err := referenceframe.BuiltinModel(name)
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{name, m.DoF(), fmt.Sprint(m.LinkNames())})
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

// ValidateModelAction is the corresponding action for 'validate'.
func ValidateModelAction(c *cli.Context) error {
	m, err := loadModel(c)
	if err != nil {
		return err
	}
	if err := m.CheckFinite(); err != nil {
		return err
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "ID", "A", "D", "Alpha (deg)"})
	for i, link := range m.Links() {
		t.AppendRow(table.Row{i + 1, link.ID, link.A, link.D, fmt.Sprintf("%.2f", utils.RadToDeg(link.Alpha))})
	}
	printf(c.App.Writer, "%s", t.Render())
	infof(c.App.Writer, "model %q is valid", m.Name())
	return nil
}

// SchemaAction is the corresponding action for 'schema'.
func SchemaAction(c *cli.Context) error {
	data, err := json.MarshalIndent(referenceframe.ModelJSONSchema(), "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", data)
	return nil
}
