package calculator

import (
	"cmp"
	"errors"
)

// Transfer is a suggested payment that moves Amount from one member to
// another.
type Transfer struct {
	From   string // Member who owes
	To     string // Member who is owed
	Amount Amount
}

// Result is the full settlement picture of a group.
type Result struct {
	Balances  Balances
	Members   []MemberBalance
	Transfers []Transfer
}

// Settle runs the whole pipeline over a snapshot: allocate every activity,
// aggregate balances and plan the transfers that clear them.
func Settle(s Snapshot) (Result, error) {
	members, err := Summarize(s.Group, s.Activities, s.Payments)
	if err != nil {
		return Result{}, err
	}
	balances := make(Balances, len(members))
	for _, m := range members {
		balances[m.MemberID] = m.NetBalance
	}
	transfers, err := Plan(balances)
	if err != nil {
		var unbalanced *UnbalancedLedgerError
		if errors.As(err, &unbalanced) {
			unbalanced.GroupID = s.Group.ID
		}
		return Result{}, err
	}
	return Result{Balances: balances, Members: members, Transfers: transfers}, nil
}

// Plan turns net balances into transfers that bring every balance to zero.
//
// Greedy: the largest debtor pays the largest creditor min(debt, credit),
// repeated until nothing is outstanding. Ties go to the lower member id.
// Every step clears at least one member, so there are never more than
// len(balances)-1 transfers.
//
// Balances that do not sum to zero are rejected with an
// *UnbalancedLedgerError; they are never rounded away.
func Plan(balances Balances) ([]Transfer, error) {
	total, err := balances.Total()
	if err != nil {
		return nil, err
	}
	if total != 0 {
		return nil, &UnbalancedLedgerError{Expected: 0, Actual: total}
	}

	type entry struct {
		id  string
		amt Amount // magnitude still outstanding
	}
	var debtors, creditors []*entry
	for id, v := range balances {
		switch {
		case v > 0:
			creditors = append(creditors, &entry{id: id, amt: v})
		case v < 0:
			debtors = append(debtors, &entry{id: id, amt: -v})
		}
	}

	// largest picks the biggest outstanding entry, lowest id on ties.
	largest := func(entries []*entry) *entry {
		var best *entry
		for _, e := range entries {
			if e.amt == 0 {
				continue
			}
			if best == nil || e.amt > best.amt || (e.amt == best.amt && cmp.Less(e.id, best.id)) {
				best = e
			}
		}
		return best
	}

	var transfers []Transfer
	for {
		debtor, creditor := largest(debtors), largest(creditors)
		if debtor == nil || creditor == nil {
			break
		}
		amt := min(debtor.amt, creditor.amt)
		transfers = append(transfers, Transfer{From: debtor.id, To: creditor.id, Amount: amt})
		debtor.amt -= amt
		creditor.amt -= amt
	}

	// Sum was zero, so both sides drain together.
	for _, e := range append(debtors, creditors...) {
		if e.amt != 0 {
			return nil, &UnbalancedLedgerError{Expected: 0, Actual: e.amt}
		}
	}
	return transfers, nil
}
