package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGroup builds a group whose member names equal their ids.
func testGroup(ids ...string) Group {
	g := Group{ID: "g1", Name: "Outing"}
	for _, id := range ids {
		g.Members = append(g.Members, Member{ID: id, Name: id})
	}
	return g
}

func assertTotal(t *testing.T, want Amount, values interface{ Total() (Amount, error) }) {
	t.Helper()
	total, err := values.Total()
	require.NoError(t, err)
	assert.Equal(t, want, total)
}

func TestAllocate_EqualSplitRemainderGoesToLowestIDs(t *testing.T) {
	g := testGroup("C", "A", "B")

	alloc, err := Allocate(g, Activity{
		ID:           "dinner",
		Amount:       1000,
		Participants: []string{"C", "B", "A"},
	})

	require.NoError(t, err)
	assert.Equal(t, Allocation{"A": -334, "B": -333, "C": -333}, alloc)
	assertTotal(t, -1000, alloc)
}

func TestAllocate_PayerCredit(t *testing.T) {
	g := testGroup("A", "B", "C")

	alloc, err := Allocate(g, Activity{
		ID:           "dinner",
		Amount:       1000,
		Participants: []string{"A", "B", "C"},
		PayerID:      "A",
	})

	require.NoError(t, err)
	assert.Equal(t, Allocation{"A": 666, "B": -333, "C": -333}, alloc)
	assertTotal(t, 0, alloc)
}

func TestAllocate_PayerOutsideParticipants(t *testing.T) {
	g := testGroup("A", "B", "C")

	alloc, err := Allocate(g, Activity{
		ID:           "taxi",
		Amount:       900,
		Participants: []string{"B", "C"},
		PayerID:      "A",
	})

	require.NoError(t, err)
	assert.Equal(t, Allocation{"A": 900, "B": -450, "C": -450}, alloc)
}

func TestAllocate_EqualSplitConservesAmount(t *testing.T) {
	ids := []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7"}
	g := testGroup(ids...)

	for amount := Amount(0); amount <= 50; amount++ {
		for k := 1; k <= len(ids); k++ {
			alloc, err := Allocate(g, Activity{ID: "a", Amount: amount, Participants: ids[:k]})
			require.NoError(t, err)

			var magnitude Amount
			bumped := 0
			base := amount / Amount(k)
			for _, d := range alloc {
				magnitude += -d
				if -d == base+1 {
					bumped++
				} else {
					assert.Equal(t, base, -d)
				}
			}
			assert.Equal(t, amount, magnitude, "amount=%d k=%d", amount, k)
			assert.Equal(t, int(amount%Amount(k)), bumped, "amount=%d k=%d", amount, k)
		}
	}
}

func TestAllocate_Shares(t *testing.T) {
	g := testGroup("A", "B", "C")

	tests := []struct {
		name   string
		amount Amount
		shares map[string]int64
		want   Allocation
	}{
		{
			name:   "exact proportions",
			amount: 1200,
			shares: map[string]int64{"A": 1, "B": 2, "C": 3},
			want:   Allocation{"A": -200, "B": -400, "C": -600},
		},
		{
			name:   "leftover to largest fraction",
			amount: 100,
			shares: map[string]int64{"A": 1, "B": 1, "C": 1},
			want:   Allocation{"A": -34, "B": -33, "C": -33},
		},
		{
			// 1000*2/7 = 285.71, 1000*2/7 = 285.71, 1000*3/7 = 428.57
			name:   "largest remainders win",
			amount: 1000,
			shares: map[string]int64{"A": 2, "B": 2, "C": 3},
			want:   Allocation{"A": -286, "B": -286, "C": -428},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc, err := Allocate(g, Activity{
				ID:           "a",
				Amount:       tt.amount,
				Participants: []string{"A", "B", "C"},
				Policy:       PolicyShares,
				Shares:       tt.shares,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, alloc)
			assertTotal(t, -tt.amount, alloc)
		})
	}
}

func TestAllocate_Exact(t *testing.T) {
	g := testGroup("A", "B")

	alloc, err := Allocate(g, Activity{
		ID:           "tickets",
		Amount:       2500,
		Participants: []string{"A", "B"},
		PayerID:      "B",
		Policy:       PolicyExact,
		Exact:        map[string]Amount{"A": 1500, "B": 1000},
	})

	require.NoError(t, err)
	assert.Equal(t, Allocation{"A": -1500, "B": 1500}, alloc)
}

func TestAllocate_InvalidActivity(t *testing.T) {
	g := testGroup("A", "B", "C")

	tests := []struct {
		name     string
		activity Activity
	}{
		{"empty participants", Activity{ID: "x", Amount: 100}},
		{"negative amount", Activity{ID: "x", Amount: -1, Participants: []string{"A"}}},
		{"non-member participant", Activity{ID: "x", Amount: 100, Participants: []string{"A", "Z"}}},
		{"duplicate participant", Activity{ID: "x", Amount: 100, Participants: []string{"A", "A"}}},
		{"non-member payer", Activity{ID: "x", Amount: 100, Participants: []string{"A"}, PayerID: "Z"}},
		{"unknown policy", Activity{ID: "x", Amount: 100, Participants: []string{"A"}, Policy: "random"}},
		{"missing share", Activity{
			ID: "x", Amount: 100, Participants: []string{"A", "B"},
			Policy: PolicyShares, Shares: map[string]int64{"A": 1, "C": 1},
		}},
		{"zero share", Activity{
			ID: "x", Amount: 100, Participants: []string{"A"},
			Policy: PolicyShares, Shares: map[string]int64{"A": 0},
		}},
		{"exact amounts do not add up", Activity{
			ID: "x", Amount: 100, Participants: []string{"A", "B"},
			Policy: PolicyExact, Exact: map[string]Amount{"A": 50, "B": 40},
		}},
		{"negative exact amount", Activity{
			ID: "x", Amount: 100, Participants: []string{"A", "B"},
			Policy: PolicyExact, Exact: map[string]Amount{"A": 150, "B": -50},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Allocate(g, tt.activity)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidActivity)

			var invalid *InvalidActivityError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, "x", invalid.ActivityID)
			assert.NotEmpty(t, invalid.Reason)
		})
	}
}

func TestAllocate_DoesNotMutateInput(t *testing.T) {
	g := testGroup("A", "B", "C")
	participants := []string{"C", "A", "B"}

	_, err := Allocate(g, Activity{ID: "a", Amount: 10, Participants: participants})

	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, participants)
}

func TestAllocate_ZeroAmount(t *testing.T) {
	g := testGroup("A", "B")

	alloc, err := Allocate(g, Activity{ID: "free", Amount: 0, Participants: []string{"A", "B"}, PayerID: "A"})

	require.NoError(t, err)
	assert.Equal(t, Allocation{"A": 0, "B": 0}, alloc)
}

func TestAllocate_ExactAmountsMustNotWrap(t *testing.T) {
	g := testGroup("A", "B", "C")

	// Wrapped, these would sum to exactly 1.
	_, err := Allocate(g, Activity{
		ID:           "coffee",
		Amount:       1,
		Participants: []string{"A", "B", "C"},
		PayerID:      "C",
		Policy:       PolicyExact,
		Exact:        map[string]Amount{"A": math.MaxInt64, "B": math.MaxInt64, "C": 3},
	})

	require.ErrorIs(t, err, ErrInvalidActivity)
}

func TestAllocate_AmountLimit(t *testing.T) {
	g := testGroup("A", "B")

	alloc, err := Allocate(g, Activity{ID: "max", Amount: MaxAmount, Participants: []string{"B"}, PayerID: "A"})
	require.NoError(t, err)
	assert.Equal(t, Allocation{"A": MaxAmount, "B": -MaxAmount}, alloc)

	_, err = Allocate(g, Activity{ID: "over", Amount: MaxAmount + 1, Participants: []string{"B"}, PayerID: "A"})
	require.ErrorIs(t, err, ErrInvalidActivity)

	_, err = Allocate(g, Activity{ID: "huge", Amount: math.MaxInt64 - 1, Participants: []string{"B"}, PayerID: "A"})
	require.ErrorIs(t, err, ErrInvalidActivity)
}

func TestAllocationTotal_Overflow(t *testing.T) {
	_, err := Allocation{"A": math.MaxInt64, "B": 1}.Total()

	require.ErrorIs(t, err, ErrAmountOverflow)
	require.ErrorIs(t, err, ErrUnbalancedLedger)
}
