// Package cli contains the dhfk command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/dhfk/logging"
)

const (
	// Flags.
	generalFlagDebug    = "debug"
	generalFlagLogLevel = "log-level"

	fkFlagModel   = "model"
	fkFlagBuiltin = "builtin"
	fkFlagJoints  = "joints"
	fkFlagDegrees = "degrees"
	fkFlagJSON    = "json"

	sweepFlagFrom  = "from"
	sweepFlagTo    = "to"
	sweepFlagSteps = "steps"

	modelEnvVar = "DHFK_MODEL"
)

func modelSourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.PathFlag{
			Name:    fkFlagModel,
			Aliases: []string{"m"},
			EnvVars: []string{modelEnvVar},
			Usage:   "load the DH model from `FILE`",
		},
		&cli.StringFlag{
			Name:    fkFlagBuiltin,
			Aliases: []string{"b"},
			Usage:   "use a builtin model, see `dhfk models`",
		},
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "dhfk",
		Usage:           "forward kinematics for Denavit-Hartenberg arms",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  generalFlagLogLevel,
				Value: "info",
				Usage: "minimum `LEVEL` to log: debug, info, warn or error",
			},
		},
		Before: func(c *cli.Context) error {
			level, err := logging.LevelFromString(c.String(generalFlagLogLevel))
			if err != nil {
				return err
			}
			logger := logging.NewWriterLogger("dhfk", c.App.ErrWriter)
			logger.SetLevel(level)
			logging.SetDebug(c.Bool(generalFlagDebug))
			logging.ReplaceGlobal(logger)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "fk",
				Usage:     "compute the pose of every link frame for a set of joint angles",
				UsageText: "dhfk fk [--model FILE | --builtin NAME] --joints j1,j2,... [--degrees] [--json]",
				Flags: append(modelSourceFlags(),
					&cli.Float64SliceFlag{
						Name:    fkFlagJoints,
						Aliases: []string{"j"},
						Usage:   "comma separated joint angles, one per link, in radians unless --degrees is set",
					},
					&cli.BoolFlag{
						Name:  fkFlagDegrees,
						Usage: "interpret --joints as degrees",
					},
					&cli.BoolFlag{
						Name:  fkFlagJSON,
						Usage: "print the result as JSON instead of a table",
					},
				),
				Action: FKAction,
			},
			{
				Name:      "sweep",
				Usage:     "trace the end effector while joints move linearly between two configurations",
				UsageText: "dhfk sweep [--model FILE | --builtin NAME] --from j1,j2,... --to j1,j2,... [--steps N] [--degrees]",
				Flags: append(modelSourceFlags(),
					&cli.Float64SliceFlag{
						Name:     sweepFlagFrom,
						Required: true,
						Usage:    "starting joint angles",
					},
					&cli.Float64SliceFlag{
						Name:     sweepFlagTo,
						Required: true,
						Usage:    "final joint angles",
					},
					&cli.IntFlag{
						Name:  sweepFlagSteps,
						Value: 10,
						Usage: "number of interpolation steps",
					},
					&cli.BoolFlag{
						Name:  fkFlagDegrees,
						Usage: "interpret --from and --to as degrees",
					},
				),
				Action: SweepAction,
			},
			{
				Name:   "models",
				Usage:  "list the builtin models",
				Action: ListModelsAction,
			},
			{
				Name:   "validate",
				Usage:  "check a model file and print its links",
				Flags:  modelSourceFlags(),
				Action: ValidateModelAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of model files",
				Action: SchemaAction,
			},
		},
	}
}
