package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/outingsplit/internal/calculator"
	"github.com/mmynk/outingsplit/internal/models"
	"github.com/mmynk/outingsplit/internal/storage"
	"github.com/mmynk/outingsplit/pkg/api"
)

// toConnectError maps storage and engine errors to connect codes.
// Unbalanced ledgers are internal faults, not client mistakes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, calculator.ErrInvalidActivity),
		errors.Is(err, calculator.ErrInvalidPayment),
		errors.Is(err, calculator.ErrInvalidGroup):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

func toMoney(a calculator.Amount) *api.Money {
	return &api.Money{Minor: int64(a), Display: a.String()}
}

func toPBGroup(g *models.Group) *api.Group {
	members := make([]*api.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = &api.Member{Id: m.ID, Name: m.Name}
	}
	return &api.Group{
		Id:        g.ID,
		Name:      g.Name,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

func toPBActivity(a *models.Activity) *api.Activity {
	participants := make([]*api.Participant, len(a.Participants))
	for i, p := range a.Participants {
		participants[i] = &api.Participant{MemberId: p.MemberID}
		switch calculator.Policy(a.Policy) {
		case calculator.PolicyShares:
			participants[i].Weight = p.Weight
		case calculator.PolicyExact:
			participants[i].ExactAmount = calculator.Amount(p.ExactAmount).String()
		}
	}
	return &api.Activity{
		Id:           a.ID,
		GroupId:      a.GroupID,
		Title:        a.Title,
		Amount:       toMoney(calculator.Amount(a.Amount)),
		PayerId:      a.PayerID,
		Policy:       a.Policy,
		Participants: participants,
		CreatedAt:    a.CreatedAt,
	}
}

func toPBSettlement(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		Id:           s.ID,
		GroupId:      s.GroupID,
		FromMemberId: s.FromMemberID,
		ToMemberId:   s.ToMemberID,
		Amount:       toMoney(calculator.Amount(s.Amount)),
		Note:         s.Note,
		CreatedAt:    s.CreatedAt,
	}
}

// toPBShares lists an allocation in group membership order.
func toPBShares(g *models.Group, alloc calculator.Allocation) []*api.Share {
	shares := make([]*api.Share, 0, len(alloc))
	for _, m := range g.Members {
		delta, ok := alloc[m.ID]
		if !ok {
			continue
		}
		shares = append(shares, &api.Share{
			MemberId:   m.ID,
			MemberName: m.Name,
			Delta:      toMoney(delta),
		})
	}
	return shares
}

func toCalcGroup(g *models.Group) calculator.Group {
	members := make([]calculator.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = calculator.Member{ID: m.ID, Name: m.Name}
	}
	return calculator.Group{ID: g.ID, Name: g.Name, Members: members}
}

func toCalcActivity(a *models.Activity) calculator.Activity {
	ca := calculator.Activity{
		ID:           a.ID,
		GroupID:      a.GroupID,
		Amount:       calculator.Amount(a.Amount),
		Participants: a.ParticipantIDs(),
		PayerID:      a.PayerID,
		Policy:       calculator.Policy(a.Policy),
	}
	switch ca.Policy {
	case calculator.PolicyShares:
		ca.Shares = make(map[string]int64, len(a.Participants))
		for _, p := range a.Participants {
			ca.Shares[p.MemberID] = p.Weight
		}
	case calculator.PolicyExact:
		ca.Exact = make(map[string]calculator.Amount, len(a.Participants))
		for _, p := range a.Participants {
			ca.Exact[p.MemberID] = calculator.Amount(p.ExactAmount)
		}
	}
	return ca
}

func toCalcPayment(s *models.Settlement) calculator.Payment {
	return calculator.Payment{
		ID:     s.ID,
		FromID: s.FromMemberID,
		ToID:   s.ToMemberID,
		Amount: calculator.Amount(s.Amount),
	}
}

// toSnapshot converts a stored ledger into the engine's input.
func toSnapshot(l *storage.Ledger) calculator.Snapshot {
	s := calculator.Snapshot{Group: toCalcGroup(l.Group)}
	for _, a := range l.Activities {
		s.Activities = append(s.Activities, toCalcActivity(a))
	}
	for _, p := range l.Settlements {
		s.Payments = append(s.Payments, toCalcPayment(p))
	}
	return s
}

// activityFromInput parses request fields into a model; group membership
// and policy rules are left to the calculator.
func activityFromInput(in *api.ActivityInput) (*models.Activity, error) {
	if in == nil {
		return nil, invalidArgument("activity required")
	}
	if in.GroupId == "" {
		return nil, invalidArgument("group_id required")
	}
	if in.PayerId == "" {
		return nil, invalidArgument("payer_id required")
	}
	amount, err := calculator.ParseAmount(in.Amount)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	activity := &models.Activity{
		GroupID: in.GroupId,
		Title:   strings.TrimSpace(in.Title),
		Amount:  int64(amount),
		PayerID: in.PayerId,
		Policy:  in.Policy,
	}
	if activity.Policy == "" {
		activity.Policy = string(calculator.PolicyEqual)
	}
	for _, p := range in.Participants {
		if p == nil {
			return nil, invalidArgument("participant entry must not be empty")
		}
		part := models.Participant{MemberID: p.MemberId, Weight: p.Weight}
		if p.ExactAmount != "" {
			exact, err := calculator.ParseAmount(p.ExactAmount)
			if err != nil {
				return nil, connect.NewError(connect.CodeInvalidArgument, err)
			}
			part.ExactAmount = int64(exact)
		}
		activity.Participants = append(activity.Participants, part)
	}
	return activity, nil
}

// generateTitle creates an auto-generated title from participant names.
func generateTitle(g *models.Group, participantIDs []string) string {
	names := make(map[string]string, len(g.Members))
	for _, m := range g.Members {
		names[m.ID] = m.Name
	}
	var participants []string
	for _, id := range participantIDs {
		participants = append(participants, names[id])
	}

	if len(participants) == 0 {
		return fmt.Sprintf("Activity - %s", time.Now().Format("Jan 2, 2006"))
	}
	if len(participants) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(participants, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(participants[:2], ", "),
		len(participants)-2,
	)
}

// logEngineError reports engine failures; unbalanced ledgers are bugs and
// get logged at error level with the totals involved.
func logEngineError(msg string, err error, args ...any) {
	var unbalanced *calculator.UnbalancedLedgerError
	if errors.As(err, &unbalanced) {
		slog.Error(msg, append(args,
			"error", err,
			"expected", unbalanced.Expected.String(),
			"actual", unbalanced.Actual.String(),
		)...)
		return
	}
	slog.Warn(msg, append(args, "error", err)...)
}
