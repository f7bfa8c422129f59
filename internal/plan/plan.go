// Package plan maps subscription tiers to pipeline capabilities and usage
// limits. Billing, payment, and webhook plumbing live elsewhere; this is the
// policy layer the request handler consults before invoking the pipeline.
package plan

import (
	"fmt"

	"github.com/snapreads/studypack/internal/pack"
)

// Tier is a subscription plan tier.
type Tier string

const (
	Free      Tier = "free"
	Starter   Tier = "starter"
	Unlimited Tier = "unlimited"
)

// Parse validates a tier string. Empty defaults to free.
func Parse(s string) (Tier, error) {
	switch Tier(s) {
	case "":
		return Free, nil
	case Free, Starter, Unlimited:
		return Tier(s), nil
	default:
		return "", fmt.Errorf("unknown plan tier: %q", s)
	}
}

// Capabilities returns the assembler/condenser flags for the tier. Free
// packs carry no key points or quiz and condense extractively.
func (t Tier) Capabilities() pack.Capabilities {
	switch t {
	case Starter, Unlimited:
		return pack.Capabilities{
			AllowKeyPoints:   true,
			AllowQuiz:        true,
			AllowLLMCondense: true,
		}
	default:
		return pack.Capabilities{}
	}
}

// MonthlyLimit returns how many documents the tier may process per calendar
// month; -1 means unlimited.
func (t Tier) MonthlyLimit() int {
	switch t {
	case Starter:
		return 15
	case Unlimited:
		return -1
	default:
		return 3
	}
}

// HistoryLimit returns how many history entries the tier may list.
func (t Tier) HistoryLimit() int {
	if t == Free {
		return 3
	}
	return 50
}

// TimeLimits is the enumerated set of reading budgets in minutes. Sixty
// minutes enables deep mode (less aggressive condensation).
var TimeLimits = map[int]bool{10: true, 20: true, 30: true, 60: true}

// DeepModeMinutes is the budget at which deep mode activates.
const DeepModeMinutes = 60
