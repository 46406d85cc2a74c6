// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/outingsplit/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Ledger is a consistent, point-in-time read of everything that determines
// a group's balances.
type Ledger struct {
	Group       *models.Group
	Activities  []*models.Activity
	Settlements []*models.Settlement
}

// Store defines the interface for group ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group with its initial members.
	// Missing IDs and CreatedAt are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group and its members by ID.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// AddGroupMembers appends new members to a group and returns them with IDs.
	AddGroupMembers(ctx context.Context, groupID string, names []string) ([]models.Member, error)

	// DeleteGroup removes a group together with its activities and settlements.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateActivity persists a new activity.
	CreateActivity(ctx context.Context, activity *models.Activity) error

	// GetActivity retrieves an activity with its participants.
	GetActivity(ctx context.Context, activityID string) (*models.Activity, error)

	// ListActivitiesByGroup retrieves a group's activities in recording order.
	ListActivitiesByGroup(ctx context.Context, groupID string) ([]*models.Activity, error)

	// DeleteActivity removes an activity.
	DeleteActivity(ctx context.Context, activityID string) error

	// CreateSettlement persists a recorded payment between members.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByGroup retrieves a group's settlements, newest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// DeleteSettlement removes a settlement.
	DeleteSettlement(ctx context.Context, settlementID string) error

	// GetLedger reads a group, its activities and settlements in a single
	// read transaction.
	GetLedger(ctx context.Context, groupID string) (*Ledger, error)

	// Close releases any resources held by the store.
	Close() error
}
