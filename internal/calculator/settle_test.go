package calculator

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apply replays transfers over a copy of the balances.
func apply(balances Balances, transfers []Transfer) Balances {
	out := make(Balances, len(balances))
	for id, v := range balances {
		out[id] = v
	}
	for _, tr := range transfers {
		out[tr.From] += tr.Amount
		out[tr.To] -= tr.Amount
	}
	return out
}

func TestPlan_LargestDebtorFirst(t *testing.T) {
	transfers, err := Plan(Balances{"A": 100, "B": -60, "C": -40})

	require.NoError(t, err)
	assert.Equal(t, []Transfer{
		{From: "B", To: "A", Amount: 60},
		{From: "C", To: "A", Amount: 40},
	}, transfers)
}

func TestPlan_TiesBrokenByID(t *testing.T) {
	transfers, err := Plan(Balances{"D": 50, "B": 50, "C": -50, "A": -50})

	require.NoError(t, err)
	assert.Equal(t, []Transfer{
		{From: "A", To: "B", Amount: 50},
		{From: "C", To: "D", Amount: 50},
	}, transfers)
}

func TestPlan_AllSettled(t *testing.T) {
	transfers, err := Plan(Balances{"A": 0, "B": 0})

	require.NoError(t, err)
	assert.Empty(t, transfers)
}

func TestPlan_Unbalanced(t *testing.T) {
	transfers, err := Plan(Balances{"A": 100, "B": -99})

	assert.Nil(t, transfers)
	require.ErrorIs(t, err, ErrUnbalancedLedger)

	var unbalanced *UnbalancedLedgerError
	require.ErrorAs(t, err, &unbalanced)
	assert.Equal(t, Amount(0), unbalanced.Expected)
	assert.Equal(t, Amount(1), unbalanced.Actual)
}

func TestSettle_ThreeWayDinner(t *testing.T) {
	result, err := Settle(Snapshot{
		Group: testGroup("A", "B", "C"),
		Activities: []Activity{
			{ID: "dinner", Amount: 1000, Participants: []string{"A", "B", "C"}, PayerID: "A"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, Balances{"A": 666, "B": -333, "C": -333}, result.Balances)
	assert.Equal(t, []Transfer{
		{From: "B", To: "A", Amount: 333},
		{From: "C", To: "A", Amount: 333},
	}, result.Transfers)
	require.Len(t, result.Members, 3)
	assert.Equal(t, "A", result.Members[0].MemberID)
}

func TestSettle_PayerlessLedgerCannotBeSettled(t *testing.T) {
	_, err := Settle(Snapshot{
		Group: testGroup("A", "B"),
		Activities: []Activity{
			{ID: "a1", Amount: 100, Participants: []string{"A", "B"}},
		},
	})

	require.ErrorIs(t, err, ErrUnbalancedLedger)
	var unbalanced *UnbalancedLedgerError
	require.ErrorAs(t, err, &unbalanced)
	assert.Equal(t, "g1", unbalanced.GroupID)
	assert.Equal(t, Amount(-100), unbalanced.Actual)
}

func TestSettle_HugeActivitiesRejected(t *testing.T) {
	// Summed, these wrap around and would credit A with a negative balance.
	result, err := Settle(Snapshot{
		Group: testGroup("A", "B"),
		Activities: []Activity{
			{ID: "a1", Amount: math.MaxInt64 - 1, Participants: []string{"B"}, PayerID: "A"},
			{ID: "a2", Amount: math.MaxInt64 - 1, Participants: []string{"B"}, PayerID: "A"},
		},
	})

	require.ErrorIs(t, err, ErrInvalidActivity)
	assert.Empty(t, result.Transfers)
}

func TestPlan_WrappingBalancesRejected(t *testing.T) {
	// Sums to zero in wrapped int64 arithmetic.
	transfers, err := Plan(Balances{"A": math.MaxInt64, "B": math.MaxInt64, "C": 2})

	assert.Nil(t, transfers)
	require.ErrorIs(t, err, ErrAmountOverflow)
}

func TestSettle_RecordedPaymentsReduceTransfers(t *testing.T) {
	result, err := Settle(Snapshot{
		Group: testGroup("A", "B"),
		Activities: []Activity{
			{ID: "a1", Amount: 1000, Participants: []string{"A", "B"}, PayerID: "A"},
		},
		Payments: []Payment{{ID: "p1", FromID: "B", ToID: "A", Amount: 500}},
	})

	require.NoError(t, err)
	assert.Equal(t, Balances{"A": 0, "B": 0}, result.Balances)
	assert.Empty(t, result.Transfers)
}

func TestSettle_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 300; i++ {
		s := randomLedger(r, 1+r.IntN(12), r.IntN(25))

		result, err := Settle(s)
		require.NoError(t, err)

		// Transfers zero every balance exactly.
		for id, v := range apply(result.Balances, result.Transfers) {
			assert.Zero(t, v, "member %s", id)
		}
		// Never more than members-1 transfers.
		assert.LessOrEqual(t, len(result.Transfers), max(len(s.Group.Members)-1, 0))
		for _, tr := range result.Transfers {
			assert.Positive(t, int64(tr.Amount))
			assert.NotEqual(t, tr.From, tr.To)
		}

		// Same snapshot, same answer.
		again, err := Settle(s)
		require.NoError(t, err)
		assert.Equal(t, result, again)
	}
}
