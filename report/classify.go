// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"math"
)

// DefaultThreshold is the probability above which a state counts as occupied.
const DefaultThreshold = 0.02

// Category is the role a state plays over a run.
type Category string

const (
	// Final states end the run occupied.
	Final Category = "final"
	// Initial states start occupied and end empty.
	Initial Category = "initial"
	// Intermediate states are neither.
	Intermediate Category = "intermediate"
)

// ClassifyTrajectory classifies one state's probability history.
func ClassifyTrajectory(traj []float64, threshold float64) (Category, error) {
	if len(traj) == 0 {
		return "", reportErrorf("ClassifyTrajectory", ErrEmptyTrajectory)
	}
	if err := checkThreshold(threshold); err != nil {
		return "", reportErrorf("ClassifyTrajectory", err)
	}

	switch {
	case traj[len(traj)-1] > threshold:
		return Final, nil
	case traj[0] > threshold:
		return Initial, nil
	default:
		return Intermediate, nil
	}
}

// Classify applies ClassifyTrajectory to every row of probs.
func Classify(probs [][]float64, threshold float64) ([]Category, error) {
	out := make([]Category, len(probs))
	for i, traj := range probs {
		c, err := ClassifyTrajectory(traj, threshold)
		if err != nil {
			return nil, reportErrorf("Classify", fmt.Errorf("state %d: %w", i, err))
		}
		out[i] = c
	}

	return out, nil
}

func checkThreshold(th float64) error {
	if math.IsNaN(th) || math.IsInf(th, 0) || th < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, th)
	}

	return nil
}
