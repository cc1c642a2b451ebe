package ig

import (
	"fmt"
	"math"
	"strings"

	da "github.com/lintang-b-s/frustration-ig/pkg/datastructure"
	"github.com/lintang-b-s/frustration-ig/pkg/util"
)

type Acceptance uint8

const (
	// ACCEPT_BETTER. keep the better of the pre-iteration and the post-iteration state.
	ACCEPT_BETTER Acceptance = iota
	/*
		ACCEPT_METROPOLIS. when the pre-iteration state was strictly better, revert to it if a uniform draw exceeds
		exp((previous - current) / T); otherwise keep the current, possibly worse, state. note the draw is compared
		with "greater than", so a worse state survives with probability exp((previous - current) / T).
	*/
	ACCEPT_METROPOLIS
)

func (a Acceptance) String() string {
	switch a {
	case ACCEPT_BETTER:
		return "better"
	case ACCEPT_METROPOLIS:
		return "metropolis"
	default:
		return fmt.Sprintf("Acceptance(%d)", a)
	}
}

func ParseAcceptance(s string) (Acceptance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "better":
		return ACCEPT_BETTER, nil
	case "metropolis":
		return ACCEPT_METROPOLIS, nil
	default:
		return 0, util.NewErrorf(util.ErrConfig, "unknown acceptance method %q", s)
	}
}

// RecordStatus. snapshot of the solution and value, for the acceptance criterion.
func (ig *IteratedGreedy) RecordStatus() da.Status {
	return ig.obj.State().Snapshot()
}

/*
AcceptanceCriterion. decide between the snapshot taken before the iteration and the current state, then cool the
temperature by alpha. returns true if the current state is kept.
*/
func (ig *IteratedGreedy) AcceptanceCriterion(status da.Status) bool {
	lastValue := status.GetValue()
	current := ig.obj.Value()

	revert := false
	switch ig.acceptance {
	case ACCEPT_BETTER:
		revert = lastValue < current
	case ACCEPT_METROPOLIS:
		revert = lastValue < current &&
			ig.rng.Float64() > math.Exp(float64(lastValue-current)/ig.temperature)
	}

	if revert {
		ig.obj.State().Restore(status)
	}
	ig.temperature *= ig.alpha
	return !revert
}
