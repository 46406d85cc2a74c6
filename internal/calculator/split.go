package calculator

import (
	"cmp"
	"math"
	"math/bits"
	"slices"
)

// Allocation maps member id to the signed change an activity makes to that
// member's balance.
type Allocation map[string]Amount

// Total sums every delta in the allocation.
func (a Allocation) Total() (Amount, error) {
	total, ok := checkedSum(a)
	if !ok {
		return 0, &UnbalancedLedgerError{Overflow: true}
	}
	return total, nil
}

// Allocate splits an activity's amount among its participants.
//
// Each participant is debited their share. When the activity has a payer,
// the payer is credited the full amount first, so the deltas sum to zero;
// otherwise they sum to -Amount. The group is only used to check
// membership.
func Allocate(g Group, a Activity) (Allocation, error) {
	owed, err := shares(g, a)
	if err != nil {
		return nil, err
	}

	alloc := make(Allocation, len(owed)+1)
	if a.PayerID != "" {
		alloc[a.PayerID] += a.Amount
	}
	var charged Amount
	overflow := false
	for id, share := range owed {
		alloc[id] -= share
		var ok bool
		if charged, ok = add(charged, share); !ok {
			overflow = true
		}
	}

	// Shares must cover the amount exactly; anything else is a bug here.
	if overflow || charged != a.Amount {
		return nil, &UnbalancedLedgerError{
			GroupID:    g.ID,
			ActivityID: a.ID,
			Expected:   a.Amount,
			Actual:     charged,
			Overflow:   overflow,
		}
	}
	return alloc, nil
}

// shares returns what each participant owes for the activity, as
// non-negative amounts summing to a.Amount.
func shares(g Group, a Activity) (map[string]Amount, error) {
	if err := a.validate(g); err != nil {
		return nil, err
	}
	switch a.policy() {
	case PolicyShares:
		return weightedShares(a)
	case PolicyExact:
		owed := make(map[string]Amount, len(a.Exact))
		for id, v := range a.Exact {
			owed[id] = v
		}
		return owed, nil
	default:
		return equalShares(a), nil
	}
}

// equalShares gives everyone amount/k and hands the amount%k leftover minor
// units, one each, to the participants with the lowest ids.
func equalShares(a Activity) map[string]Amount {
	ordered := slices.Sorted(slices.Values(a.Participants))
	k := Amount(len(ordered))
	base, remainder := a.Amount/k, a.Amount%k

	owed := make(map[string]Amount, len(ordered))
	for i, id := range ordered {
		owed[id] = base
		if Amount(i) < remainder {
			owed[id]++
		}
	}
	return owed
}

// weightedShares splits proportionally to the weights using the largest
// remainder method: everyone gets the floor of their exact share, then the
// leftover units go to the largest fractional parts, ties by ascending id.
func weightedShares(a Activity) (map[string]Amount, error) {
	var total int64
	for _, p := range a.Participants {
		w := a.Shares[p]
		if total > math.MaxInt64-w {
			return nil, invalidActivity(a.ID, "share weights overflow")
		}
		total += w
	}

	type part struct {
		id  string
		rem uint64
	}
	parts := make([]part, 0, len(a.Participants))
	owed := make(map[string]Amount, len(a.Participants))
	var assigned Amount
	for _, p := range a.Participants {
		// amount*w/total never exceeds amount, so the 128-bit quotient fits.
		hi, lo := bits.Mul64(uint64(a.Amount), uint64(a.Shares[p]))
		quo, rem := bits.Div64(hi, lo, uint64(total))
		owed[p] = Amount(quo)
		assigned += Amount(quo)
		parts = append(parts, part{id: p, rem: rem})
	}

	slices.SortFunc(parts, func(x, y part) int {
		if c := cmp.Compare(y.rem, x.rem); c != 0 {
			return c
		}
		return cmp.Compare(x.id, y.id)
	})
	for i := Amount(0); i < a.Amount-assigned; i++ {
		owed[parts[i].id]++
	}
	return owed, nil
}
