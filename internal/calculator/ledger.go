// Package calculator implements the settlement engine: it allocates activity
// costs among participants, folds the allocations into net balances per
// member and plans the transfers that settle a group.
//
// Everything here is a pure function over value snapshots. Nothing is
// cached or mutated, so the functions may be called concurrently.
package calculator

import (
	"fmt"
	"slices"
)

// Member is a person taking part in a group.
type Member struct {
	ID   string
	Name string
}

// Group is a snapshot of a group and its members in membership order.
type Group struct {
	ID      string
	Name    string
	Members []Member
}

// Policy selects how an activity's amount is split among its participants.
type Policy string

const (
	// PolicyEqual splits evenly; leftover minor units go to the lowest ids.
	PolicyEqual Policy = "equal"
	// PolicyShares splits proportionally to Activity.Shares weights.
	PolicyShares Policy = "shares"
	// PolicyExact charges each participant Activity.Exact[id].
	PolicyExact Policy = "exact"
)

// Activity is a shared cost within a group.
type Activity struct {
	ID      string
	GroupID string
	Amount  Amount

	// Participants are the member ids sharing the cost.
	Participants []string

	// PayerID is the member who paid. When empty, the activity only debits
	// its participants and the group total drifts by -Amount.
	PayerID string

	// Policy defaults to PolicyEqual when empty.
	Policy Policy

	// Shares holds per-participant weights for PolicyShares.
	Shares map[string]int64

	// Exact holds per-participant amounts for PolicyExact.
	Exact map[string]Amount
}

// Payment records money already handed from one member to another to pay
// back a debt.
type Payment struct {
	ID     string
	FromID string
	ToID   string
	Amount Amount
}

// Snapshot is an internally consistent view of a group's ledger.
type Snapshot struct {
	Group      Group
	Activities []Activity
	Payments   []Payment
}

// HasMember reports whether id belongs to the group.
func (g Group) HasMember(id string) bool {
	return slices.ContainsFunc(g.Members, func(m Member) bool { return m.ID == id })
}

// Validate checks that member ids are non-empty and unique.
func (g Group) Validate() error {
	seen := make(map[string]bool, len(g.Members))
	for _, m := range g.Members {
		if m.ID == "" {
			return fmt.Errorf("%w: group %q has a member without id", ErrInvalidGroup, g.ID)
		}
		if seen[m.ID] {
			return fmt.Errorf("%w: group %q lists member %q twice", ErrInvalidGroup, g.ID, m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}

func (a Activity) policy() Policy {
	if a.Policy == "" {
		return PolicyEqual
	}
	return a.Policy
}

// validate runs once at the engine boundary, before any arithmetic.
func (a Activity) validate(g Group) error {
	if a.Amount < 0 {
		return invalidActivity(a.ID, "amount must not be negative, got %s", a.Amount)
	}
	if a.Amount > MaxAmount {
		return invalidActivity(a.ID, "amount %s exceeds the maximum of %s", a.Amount, MaxAmount)
	}
	if len(a.Participants) == 0 {
		return invalidActivity(a.ID, "at least one participant is required")
	}
	seen := make(map[string]bool, len(a.Participants))
	for _, p := range a.Participants {
		if seen[p] {
			return invalidActivity(a.ID, "participant %q listed twice", p)
		}
		seen[p] = true
		if !g.HasMember(p) {
			return invalidActivity(a.ID, "participant %q is not a member of group %q", p, g.ID)
		}
	}
	if a.PayerID != "" && !g.HasMember(a.PayerID) {
		return invalidActivity(a.ID, "payer %q is not a member of group %q", a.PayerID, g.ID)
	}

	switch a.policy() {
	case PolicyEqual:
	case PolicyShares:
		if len(a.Shares) != len(a.Participants) {
			return invalidActivity(a.ID, "shares must be given for every participant and nobody else")
		}
		for _, p := range a.Participants {
			w, ok := a.Shares[p]
			if !ok {
				return invalidActivity(a.ID, "missing share for participant %q", p)
			}
			if w <= 0 {
				return invalidActivity(a.ID, "share for participant %q must be positive", p)
			}
		}
	case PolicyExact:
		if len(a.Exact) != len(a.Participants) {
			return invalidActivity(a.ID, "exact amounts must be given for every participant and nobody else")
		}
		var sum Amount
		for _, p := range a.Participants {
			v, ok := a.Exact[p]
			if !ok {
				return invalidActivity(a.ID, "missing exact amount for participant %q", p)
			}
			if v < 0 {
				return invalidActivity(a.ID, "exact amount for participant %q must not be negative", p)
			}
			// Checked before adding, so the running sum never exceeds Amount.
			if v > a.Amount-sum {
				return invalidActivity(a.ID, "exact amounts exceed the activity amount %s", a.Amount)
			}
			sum += v
		}
		if sum != a.Amount {
			return invalidActivity(a.ID, "exact amounts sum to %s, expected %s", sum, a.Amount)
		}
	default:
		return invalidActivity(a.ID, "unknown allocation policy %q", a.Policy)
	}
	return nil
}

// Validate checks the payment against the group it is recorded in.
func (p Payment) Validate(g Group) error {
	switch {
	case p.Amount <= 0:
		return fmt.Errorf("%w %q: amount must be positive, got %s", ErrInvalidPayment, p.ID, p.Amount)
	case p.Amount > MaxAmount:
		return fmt.Errorf("%w %q: amount %s exceeds the maximum of %s", ErrInvalidPayment, p.ID, p.Amount, MaxAmount)
	case p.FromID == p.ToID:
		return fmt.Errorf("%w %q: sender and receiver are both %q", ErrInvalidPayment, p.ID, p.FromID)
	case !g.HasMember(p.FromID):
		return fmt.Errorf("%w %q: sender %q is not a member of group %q", ErrInvalidPayment, p.ID, p.FromID, g.ID)
	case !g.HasMember(p.ToID):
		return fmt.Errorf("%w %q: receiver %q is not a member of group %q", ErrInvalidPayment, p.ID, p.ToID, g.ID)
	}
	return nil
}
