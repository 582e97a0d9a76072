package hiring

import (
	"context"
	"errors"
	"fmt"

	"github.com/talentflow/engine/internal/models"
	"github.com/talentflow/engine/internal/store"
)

// Notifications returns the inbox, newest first
func (s *Service) Notifications(ctx context.Context) ([]*models.Notification, error) {
	return s.repo.ListNotifications(ctx)
}

// Notify inserts an unread notification
func (s *Service) Notify(ctx context.Context, title, body, relatedID string) (*models.Notification, error) {
	n := &models.Notification{
		ID:        newID("notif"),
		Title:     title,
		Body:      body,
		CreatedAt: s.now(),
		RelatedID: relatedID,
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// MarkNotificationRead flips the read flag in place
func (s *Service) MarkNotificationRead(ctx context.Context, id string) (*models.Notification, error) {
	n, err := s.repo.GetNotification(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	n.Read = true
	if err := s.repo.UpdateNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}
	return n, nil
}

// ClearReadNotifications deletes every notification already marked read
func (s *Service) ClearReadNotifications(ctx context.Context) error {
	all, err := s.repo.ListNotifications(ctx)
	if err != nil {
		return err
	}
	for _, n := range all {
		if !n.Read {
			continue
		}
		if err := s.repo.DeleteNotification(ctx, n.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to delete notification %s: %w", n.ID, err)
		}
	}
	return nil
}

// HiddenActivities lists every dismissed activity-feed item
func (s *Service) HiddenActivities(ctx context.Context) ([]*models.HiddenActivity, error) {
	return s.repo.ListHiddenActivities(ctx)
}

// HideActivity dismisses an activity-feed item. The id is the external
// activity id, not a record of ours.
func (s *Service) HideActivity(ctx context.Context, activityID string) (*models.HiddenActivity, error) {
	h := &models.HiddenActivity{
		ID:       activityID,
		HiddenAt: s.now(),
	}
	if err := s.repo.CreateHiddenActivity(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to hide activity: %w", err)
	}
	return h, nil
}

// UnhideActivity restores a dismissed activity-feed item
func (s *Service) UnhideActivity(ctx context.Context, activityID string) error {
	if err := s.repo.DeleteHiddenActivity(ctx, activityID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrActivityNotHidden
		}
		return err
	}
	return nil
}

// Profile returns the demo user's profile
func (s *Service) Profile(ctx context.Context) (*models.UserProfile, error) {
	p, err := s.repo.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// PatchProfile applies a partial update to the demo user's profile
func (s *Service) PatchProfile(ctx context.Context, patch *models.ProfilePatch) (*models.UserProfile, error) {
	p, err := s.repo.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	patch.Apply(p)
	if err := s.repo.PutProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return p, nil
}
