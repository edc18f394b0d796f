// Package users holds the admin user-management logic: listing accounts and
// the guarded mutations (role change, activation, deletion).
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/storage"
)

// Guard violations. Each maps to 403 at the HTTP layer. The target-not-found
// check always runs before these, so a missing target is 404 regardless of
// which rule would have fired.
var (
	ErrCannotChangeOwnRole        = errors.New("cannot change your own role")
	ErrOnlyOwnersGrantOwner       = errors.New("only owners can assign owner role")
	ErrCannotDeactivateSelf       = errors.New("cannot deactivate your own account")
	ErrOnlyOwnersDeactivateOwners = errors.New("only owners can deactivate other owners")
	ErrCannotDeleteSelf           = errors.New("cannot delete your own account")
)

// Service applies the self-service guard on top of the role threshold checks
// enforced by the routing layer.
type Service struct {
	store storage.UserStore
}

// NewService constructs the user-management service.
func NewService(store storage.UserStore) *Service {
	return &Service{store: store}
}

// List returns accounts matching the filter.
func (s *Service) List(ctx context.Context, filter storage.UserFilter) ([]models.User, error) {
	return s.store.ListUsers(ctx, filter)
}

// Get returns a single account by id.
func (s *Service) Get(ctx context.Context, id string) (models.User, error) {
	return s.store.FindUserByID(ctx, id)
}

// ChangeRole reassigns the target's role. Actors may never change their own
// role. Granting OWNER requires an OWNER actor; the route is already gated at
// OWNER so this rule is redundant today, but it is kept so the invariant
// survives any future loosening of the route gate.
func (s *Service) ChangeRole(ctx context.Context, actor models.User, targetID string, newRole models.Role) error {
	target, err := s.store.FindUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.ID == actor.ID {
		return ErrCannotChangeOwnRole
	}
	if newRole == models.RoleOwner && actor.Role != models.RoleOwner {
		return ErrOnlyOwnersGrantOwner
	}

	target.Role = newRole
	target.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateUser(ctx, target); err != nil {
		return fmt.Errorf("update user role: %w", err)
	}

	slog.Info("user role changed",
		slog.String("actor_id", actor.ID),
		slog.String("target_id", target.ID),
		slog.String("role", string(newRole)),
	)
	return nil
}

// SetActive activates or deactivates the target account. Actors may never
// deactivate themselves, and only owners may deactivate other owners.
// Deactivation takes effect immediately: outstanding tokens for the target
// stop resolving even though they remain cryptographically valid.
func (s *Service) SetActive(ctx context.Context, actor models.User, targetID string, isActive bool) error {
	target, err := s.store.FindUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.ID == actor.ID {
		return ErrCannotDeactivateSelf
	}
	if target.Role == models.RoleOwner && actor.Role != models.RoleOwner {
		return ErrOnlyOwnersDeactivateOwners
	}

	target.IsActive = isActive
	target.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateUser(ctx, target); err != nil {
		return fmt.Errorf("update user status: %w", err)
	}

	slog.Info("user status changed",
		slog.String("actor_id", actor.ID),
		slog.String("target_id", target.ID),
		slog.Bool("is_active", isActive),
	)
	return nil
}

// Delete removes the target account permanently. Actors may never delete
// themselves.
func (s *Service) Delete(ctx context.Context, actor models.User, targetID string) error {
	target, err := s.store.FindUserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.ID == actor.ID {
		return ErrCannotDeleteSelf
	}

	if err := s.store.DeleteUser(ctx, targetID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	slog.Info("user deleted",
		slog.String("actor_id", actor.ID),
		slog.String("target_id", targetID),
	)
	return nil
}
