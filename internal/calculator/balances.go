package calculator

// Balances maps member id to net balance.
// Positive = owed money, negative = owes money.
type Balances map[string]Amount

// Total sums every balance. It is zero for a conserved ledger.
func (b Balances) Total() (Amount, error) {
	total, ok := checkedSum(b)
	if !ok {
		return 0, &UnbalancedLedgerError{Overflow: true}
	}
	return total, nil
}

// MemberBalance is one member's position within a group.
type MemberBalance struct {
	MemberID   string
	MemberName string
	NetBalance Amount // TotalPaid - TotalOwed
	TotalPaid  Amount // Activities paid plus payments sent
	TotalOwed  Amount // Activity shares plus payments received
}

// Aggregate folds all activities and recorded payments of a group into one
// net balance per member. Every member is present, with zero if untouched.
//
// The result is checked against the expected total: zero, minus the amount
// of every activity that has no payer. All sums are overflow checked; a
// ledger whose totals leave the int64 range fails with ErrAmountOverflow.
func Aggregate(g Group, activities []Activity, payments []Payment) (Balances, error) {
	summaries, err := Summarize(g, activities, payments)
	if err != nil {
		return nil, err
	}
	balances := make(Balances, len(summaries))
	for _, s := range summaries {
		balances[s.MemberID] = s.NetBalance
	}
	return balances, nil
}

// Summarize is Aggregate with paid/owed totals kept apart, returned in
// group membership order.
func Summarize(g Group, activities []Activity, payments []Payment) ([]MemberBalance, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	summaries := make([]MemberBalance, len(g.Members))
	index := make(map[string]int, len(g.Members))
	for i, m := range g.Members {
		summaries[i] = MemberBalance{MemberID: m.ID, MemberName: m.Name}
		index[m.ID] = i
	}

	var expected Amount
	overflow := false
	// addTo accumulates into dst; a single overflow fails the whole fold.
	addTo := func(dst *Amount, v Amount) {
		var ok bool
		if *dst, ok = add(*dst, v); !ok {
			overflow = true
		}
	}

	for _, a := range activities {
		alloc, err := Allocate(g, a)
		if err != nil {
			return nil, err
		}
		if a.PayerID == "" {
			addTo(&expected, -a.Amount)
		} else {
			addTo(&summaries[index[a.PayerID]].TotalPaid, a.Amount)
		}
		for id, delta := range alloc {
			s := &summaries[index[id]]
			addTo(&s.NetBalance, delta)
			if id == a.PayerID {
				// The payer's delta already nets their own share.
				addTo(&s.TotalOwed, a.Amount-delta)
			} else {
				addTo(&s.TotalOwed, -delta)
			}
		}
	}

	for _, p := range payments {
		if err := p.Validate(g); err != nil {
			return nil, err
		}
		from, to := &summaries[index[p.FromID]], &summaries[index[p.ToID]]
		addTo(&from.TotalPaid, p.Amount)
		addTo(&from.NetBalance, p.Amount)
		addTo(&to.TotalOwed, p.Amount)
		addTo(&to.NetBalance, -p.Amount)
	}

	var actual Amount
	for _, s := range summaries {
		addTo(&actual, s.NetBalance)
	}
	if overflow {
		return nil, &UnbalancedLedgerError{GroupID: g.ID, Expected: expected, Overflow: true}
	}
	if actual != expected {
		return nil, &UnbalancedLedgerError{GroupID: g.ID, Expected: expected, Actual: actual}
	}
	return summaries, nil
}
