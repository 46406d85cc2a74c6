package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/outingsplit/internal/calculator"
	"github.com/mmynk/outingsplit/internal/models"
	"github.com/mmynk/outingsplit/internal/storage"
	"github.com/mmynk/outingsplit/pkg/api"
	"github.com/mmynk/outingsplit/pkg/api/apiconnect"
)

// ActivityService implements the Connect ActivityService
type ActivityService struct {
	apiconnect.UnimplementedActivityServiceHandler
	store storage.Store
}

// NewActivityService creates a new ActivityService with the given storage backend.
func NewActivityService(store storage.Store) *ActivityService {
	return &ActivityService{store: store}
}

// allocate parses the input and runs it through the calculator against the
// current group membership. Nothing is written.
func (s *ActivityService) allocate(ctx context.Context, in *api.ActivityInput) (*models.Group, *models.Activity, calculator.Allocation, error) {
	activity, err := activityFromInput(in)
	if err != nil {
		return nil, nil, nil, err
	}

	group, err := s.store.GetGroup(ctx, activity.GroupID)
	if err != nil {
		slog.Error("Failed to get group", "group_id", activity.GroupID, "error", err)
		return nil, nil, nil, toConnectError(err)
	}

	alloc, err := calculator.Allocate(toCalcGroup(group), toCalcActivity(activity))
	if err != nil {
		logEngineError("Activity rejected", err, "group_id", group.ID)
		return nil, nil, nil, toConnectError(err)
	}
	return group, activity, alloc, nil
}

// PreviewActivity shows how an activity would be split without storing it.
func (s *ActivityService) PreviewActivity(ctx context.Context, req *connect.Request[api.PreviewActivityRequest]) (*connect.Response[api.PreviewActivityResponse], error) {
	group, _, alloc, err := s.allocate(ctx, req.Msg.Activity)
	if err != nil {
		return nil, err
	}

	for id, delta := range alloc {
		slog.Debug("Preview share", "member_id", id, "delta", delta.String())
	}

	return connect.NewResponse(&api.PreviewActivityResponse{Shares: toPBShares(group, alloc)}), nil
}

// CreateActivity validates an activity against its group and records it.
func (s *ActivityService) CreateActivity(ctx context.Context, req *connect.Request[api.CreateActivityRequest]) (*connect.Response[api.CreateActivityResponse], error) {
	group, activity, alloc, err := s.allocate(ctx, req.Msg.Activity)
	if err != nil {
		return nil, err
	}

	if activity.Title == "" {
		activity.Title = generateTitle(group, activity.ParticipantIDs())
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateActivity(ctx, activity); err != nil {
		slog.Error("CreateActivity failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Activity created",
		"group_id", group.ID,
		"activity_id", activity.ID,
		"amount", calculator.Amount(activity.Amount).String(),
		"participants_count", len(activity.Participants),
	)

	return connect.NewResponse(&api.CreateActivityResponse{
		Activity: toPBActivity(activity),
		Shares:   toPBShares(group, alloc),
	}), nil
}

// GetActivity retrieves an activity and recomputes its split against the
// group's current membership.
func (s *ActivityService) GetActivity(ctx context.Context, req *connect.Request[api.GetActivityRequest]) (*connect.Response[api.GetActivityResponse], error) {
	activity, err := s.store.GetActivity(ctx, req.Msg.ActivityId)
	if err != nil {
		slog.Error("GetActivity failed", "activity_id", req.Msg.ActivityId, "error", err)
		return nil, toConnectError(err)
	}

	group, err := s.store.GetGroup(ctx, activity.GroupID)
	if err != nil {
		slog.Error("GetActivity failed - group not found", "group_id", activity.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	alloc, err := calculator.Allocate(toCalcGroup(group), toCalcActivity(activity))
	if err != nil {
		// A stored activity that no longer allocates is a server-side fault.
		logEngineError("GetActivity failed - calculation error", err, "activity_id", activity.ID)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.GetActivityResponse{
		Activity: toPBActivity(activity),
		Shares:   toPBShares(group, alloc),
	}), nil
}

// ListActivities retrieves all activities of a group.
func (s *ActivityService) ListActivities(ctx context.Context, req *connect.Request[api.ListActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error) {
	if _, err := s.store.GetGroup(ctx, req.Msg.GroupId); err != nil {
		slog.Error("ListActivities failed - group not found", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	activities, err := s.store.ListActivitiesByGroup(ctx, req.Msg.GroupId)
	if err != nil {
		slog.Error("ListActivities failed", "group_id", req.Msg.GroupId, "error", err)
		return nil, toConnectError(err)
	}

	pbActivities := make([]*api.Activity, len(activities))
	for i, a := range activities {
		pbActivities[i] = toPBActivity(a)
	}

	return connect.NewResponse(&api.ListActivitiesResponse{Activities: pbActivities}), nil
}

// DeleteActivity removes an activity; balances follow on the next read.
func (s *ActivityService) DeleteActivity(ctx context.Context, req *connect.Request[api.DeleteActivityRequest]) (*connect.Response[api.DeleteActivityResponse], error) {
	if req.Msg.ActivityId == "" {
		return nil, invalidArgument("activity_id required")
	}

	if err := s.store.DeleteActivity(ctx, req.Msg.ActivityId); err != nil {
		slog.Error("DeleteActivity failed", "activity_id", req.Msg.ActivityId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Activity deleted", "activity_id", req.Msg.ActivityId)

	return connect.NewResponse(&api.DeleteActivityResponse{}), nil
}
