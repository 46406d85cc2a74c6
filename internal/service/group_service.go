package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/outingsplit/internal/calculator"
	"github.com/mmynk/outingsplit/internal/models"
	"github.com/mmynk/outingsplit/internal/storage"
	"github.com/mmynk/outingsplit/pkg/api"
	"github.com/mmynk/outingsplit/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// cleanNames trims names and rejects blank ones.
func cleanNames(names []string) ([]string, error) {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.TrimSpace(n)
		if out[i] == "" {
			return nil, invalidArgument("member names must not be empty")
		}
	}
	return out, nil
}

// CreateGroup creates a new group with its initial members.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name required")
	}
	names, err := cleanNames(req.Msg.Members)
	if err != nil {
		return nil, err
	}

	group := &models.Group{Name: name}
	for _, n := range names {
		group.Members = append(group.Members, models.Member{Name: n})
	}

	// Save to storage (generates IDs and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: toPBGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupId)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toPBGroup(group)}), nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	pbGroups := make([]*api.Group, len(groups))
	for i, group := range groups {
		pbGroups[i] = toPBGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: pbGroups}), nil
}

// AddMembers appends members to a group. Existing activities are unaffected.
func (s *GroupService) AddMembers(ctx context.Context, req *connect.Request[api.AddMembersRequest]) (*connect.Response[api.AddMembersResponse], error) {
	slog.Info("AddMembers request received",
		"group_id", req.Msg.GroupId,
		"members_count", len(req.Msg.Names),
	)

	if len(req.Msg.Names) == 0 {
		return nil, invalidArgument("names required")
	}
	names, err := cleanNames(req.Msg.Names)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.AddGroupMembers(ctx, req.Msg.GroupId, names); err != nil {
		slog.Error("AddMembers failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("Failed to fetch updated group", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Members added", "group_id", group.ID, "members_count", len(group.Members))

	return connect.NewResponse(&api.AddMembersResponse{Group: toPBGroup(group)}), nil
}

// DeleteGroup removes a group and its whole ledger.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupId)

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupId); err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupId)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// GetGroupBalances recomputes balances and suggested transfers from the
// group's activities and recorded settlements.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	groupID := req.Msg.GroupId
	slog.Info("GetGroupBalances request received", "group_id", groupID)

	if groupID == "" {
		return nil, invalidArgument("group_id required")
	}

	ledger, err := s.store.GetLedger(ctx, groupID)
	if err != nil {
		slog.Error("GetGroupBalances failed - could not read ledger", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	result, err := calculator.Settle(toSnapshot(ledger))
	if err != nil {
		logEngineError("GetGroupBalances failed - calculation error", err, "group_id", groupID)
		return nil, toConnectError(err)
	}

	pbBalances := make([]*api.MemberBalance, len(result.Members))
	for i, bal := range result.Members {
		pbBalances[i] = &api.MemberBalance{
			MemberId:   bal.MemberID,
			MemberName: bal.MemberName,
			NetBalance: toMoney(bal.NetBalance),
			TotalPaid:  toMoney(bal.TotalPaid),
			TotalOwed:  toMoney(bal.TotalOwed),
		}
	}

	pbTransfers := make([]*api.Transfer, len(result.Transfers))
	for i, t := range result.Transfers {
		pbTransfers[i] = &api.Transfer{
			FromMemberId: t.From,
			ToMemberId:   t.To,
			Amount:       toMoney(t.Amount),
		}
	}

	slog.Info("GetGroupBalances successful",
		"group_id", groupID,
		"activities_count", len(ledger.Activities),
		"settlements_count", len(ledger.Settlements),
		"transfers_count", len(result.Transfers),
	)

	return connect.NewResponse(&api.GetGroupBalancesResponse{
		MemberBalances: pbBalances,
		Transfers:      pbTransfers,
	}), nil
}

// RecordSettlement stores a payment one member made to another.
func (s *GroupService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	slog.Info("RecordSettlement request received",
		"group_id", req.Msg.GroupId,
		"from", req.Msg.FromMemberId,
		"to", req.Msg.ToMemberId,
		"amount", req.Msg.Amount,
	)

	amount, err := calculator.ParseAmount(req.Msg.Amount)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("RecordSettlement failed - group not found", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	payment := calculator.Payment{
		FromID: req.Msg.FromMemberId,
		ToID:   req.Msg.ToMemberId,
		Amount: amount,
	}
	if err := payment.Validate(toCalcGroup(group)); err != nil {
		slog.Warn("RecordSettlement rejected", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	settlement := &models.Settlement{
		GroupID:      group.ID,
		FromMemberID: payment.FromID,
		ToMemberID:   payment.ToID,
		Amount:       int64(payment.Amount),
		Note:         strings.TrimSpace(req.Msg.Note),
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Settlement recorded", "group_id", group.ID, "settlement_id", settlement.ID)

	return connect.NewResponse(&api.RecordSettlementResponse{Settlement: toPBSettlement(settlement)}), nil
}

// ListSettlements retrieves a group's recorded settlements, newest first.
func (s *GroupService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	if _, err := s.store.GetGroup(ctx, req.Msg.GroupId); err != nil {
		slog.Error("ListSettlements failed - group not found", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("ListSettlements failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	pbSettlements := make([]*api.Settlement, len(settlements))
	for i, st := range settlements {
		pbSettlements[i] = toPBSettlement(st)
	}

	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: pbSettlements}), nil
}

// DeleteSettlement removes a recorded settlement; balances follow on the next read.
func (s *GroupService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	if req.Msg.SettlementId == "" {
		return nil, invalidArgument("settlement_id required")
	}

	if err := s.store.DeleteSettlement(ctx, req.Msg.SettlementId); err != nil {
		slog.Error("DeleteSettlement failed", "settlement_id", req.Msg.SettlementId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Settlement deleted", "settlement_id", req.Msg.SettlementId)

	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}
