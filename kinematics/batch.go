package kinematics

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"go.viam.com/dhfk/referenceframe"
)

// ForwardKinematicsBatch evaluates every joint configuration in jointSets against the same links, using at most
// workers goroutines (no limit if workers <= 0). Results are returned in the order of jointSets. The first
// failing configuration, or cancellation of ctx, aborts the batch and no results are returned.
func ForwardKinematicsBatch(
	ctx context.Context,
	jointSets [][]referenceframe.Input,
	links []referenceframe.DHParamConfig,
	workers int,
) ([]*FKResult, error) {
	results := make([]*FKResult, len(jointSets))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, inputs := range jointSets {
		i, inputs := i, inputs // per-iteration copies; module targets go 1.21 (pre-1.22 loopvar semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := ForwardKinematics(inputs, links)
			if err != nil {
				return errors.Wrapf(err, "joint set %d", i)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Sweep linearly interpolates steps+1 configurations from one joint configuration to another, inclusive of both
// ends, and evaluates them concurrently.
func Sweep(ctx context.Context, from, to []referenceframe.Input, steps int, links []referenceframe.DHParamConfig) ([]*FKResult, error) {
	if steps < 1 {
		return nil, errors.Errorf("sweep needs at least 1 step, got %d", steps)
	}
	jointSets := make([][]referenceframe.Input, 0, steps+1)
	for i := 0; i <= steps; i++ {
		inputs, err := referenceframe.InterpolateInputs(from, to, float64(i)/float64(steps))
		if err != nil {
			return nil, err
		}
		jointSets = append(jointSets, inputs)
	}
	return ForwardKinematicsBatch(ctx, jointSets, links, 0)
}
