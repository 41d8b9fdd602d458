package searcher

import "fmt"

// Strategy selects how a raw signed game result is turned into a bandit
// reward. Each strategy carries its transform and the transform's output
// range, which UCB1 uses to rescale average rewards to [0, 1].
type Strategy int

const (
	// StrategyIdentity uses the signed game-point result as-is.
	StrategyIdentity Strategy = iota
	// StrategyWin rewards any positive result.
	StrategyWin
	// StrategyAtLeast2 rewards winning 2 or more game points.
	StrategyAtLeast2
	// StrategyAtLeast3 rewards winning 3 game points.
	StrategyAtLeast3
	// StrategyDeny2 rewards keeping the opponent under 2 game points.
	StrategyDeny2
	// StrategyDeny3 rewards keeping the opponent under 3 game points.
	StrategyDeny3
)

// valuation is a reward transform together with its output range.
type valuation struct {
	transform func(float64) float64
	min, max  float64
}

func (s Strategy) valuation() valuation {
	switch s {
	case StrategyIdentity:
		return valuation{transform: func(x float64) float64 { return x }, min: -3, max: 3}
	case StrategyWin:
		return valuation{transform: indicator(func(x float64) bool { return x > 0 }), min: 0, max: 1}
	case StrategyAtLeast2:
		return valuation{transform: indicator(func(x float64) bool { return x >= 2 }), min: 0, max: 1}
	case StrategyAtLeast3:
		return valuation{transform: indicator(func(x float64) bool { return x >= 3 }), min: 0, max: 1}
	case StrategyDeny2:
		return valuation{transform: indicator(func(x float64) bool { return x > -2 }), min: 0, max: 1}
	case StrategyDeny3:
		return valuation{transform: indicator(func(x float64) bool { return x > -3 }), min: 0, max: 1}
	default:
		panic(fmt.Sprintf("searcher: unknown strategy %d", s))
	}
}

func indicator(pred func(float64) bool) func(float64) float64 {
	return func(x float64) float64 {
		if pred(x) {
			return 1
		}
		return 0
	}
}

func (s Strategy) String() string {
	switch s {
	case StrategyIdentity:
		return "id"
	case StrategyWin:
		return "win"
	case StrategyAtLeast2:
		return "at-least-2"
	case StrategyAtLeast3:
		return "at-least-3"
	case StrategyDeny2:
		return "deny-2"
	case StrategyDeny3:
		return "deny-3"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a strategy name as accepted on the command line.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range []Strategy{
		StrategyIdentity, StrategyWin,
		StrategyAtLeast2, StrategyAtLeast3,
		StrategyDeny2, StrategyDeny3,
	} {
		if s.String() == name {
			return s, nil
		}
	}
	return StrategyIdentity, fmt.Errorf("unknown strategy %q", name)
}
