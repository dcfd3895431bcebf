// Package ledger tracks subscription tier and analysis credits.
package ledger

// Tier represents a subscription tier.
type Tier string

// Supported subscription tiers.
const (
	TierFree Tier = "FREE"
	TierPro  Tier = "PRO"
)

// DefaultFreeCredits is the number of analyses granted to a new free-tier ledger.
const DefaultFreeCredits = 10

// Subscription is the per-identity record of tier, remaining free-tier
// credits, and lifetime analysis count.
type Subscription struct {
	Tier             Tier `json:"tier"`
	CreditsRemaining int  `json:"credits_remaining"`
	TotalAnalyses    int  `json:"total_analyses"`
}

// NewSubscription returns the default ledger for a first-run identity.
func NewSubscription() Subscription {
	return Subscription{
		Tier:             TierFree,
		CreditsRemaining: DefaultFreeCredits,
		TotalAnalyses:    0,
	}
}

// CanAnalyze reports whether the ledger permits starting another analysis.
func CanAnalyze(sub Subscription) bool {
	return sub.Tier == TierPro || sub.CreditsRemaining > 0
}

// ConsumeCredit records one completed analysis. PRO ledgers keep their credit
// balance untouched; FREE ledgers lose one credit, clamped at zero.
// TotalAnalyses increments regardless of tier. The input is not mutated.
func ConsumeCredit(sub Subscription) Subscription {
	next := sub
	next.TotalAnalyses++
	if next.Tier != TierPro && next.CreditsRemaining > 0 {
		next.CreditsRemaining--
	}
	return next
}

// Upgrade moves the ledger to the PRO tier. Credits are kept as-is; they
// become meaningful again only if the subscription ever downgrades.
func Upgrade(sub Subscription) Subscription {
	next := sub
	next.Tier = TierPro
	return next
}
