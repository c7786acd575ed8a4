package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

// Service resolves signed-in subjects to roles and keeps the result per
// subject until an auth event or a role change invalidates it.
type Service struct {
	profiles  interfaces.ProfileRepository
	publisher interfaces.EventPublisher
	logger    logger.Logger
	signInURL string
	origin    string

	mu    sync.RWMutex
	cache map[string]domain.Identity
}

func NewService(
	profiles interfaces.ProfileRepository,
	publisher interfaces.EventPublisher,
	logger logger.Logger,
	signInURL string,
	origin string,
) *Service {
	return &Service{
		profiles:  profiles,
		publisher: publisher,
		logger:    logger,
		signInURL: signInURL,
		origin:    origin,
		cache:     make(map[string]domain.Identity),
	}
}

func (s *Service) SignInURL() string {
	return s.signInURL
}

// Resolve returns the identity for subject. An empty subject is a guest.
// A failed or empty profile lookup yields domain.FallbackRole.
func (s *Service) Resolve(ctx context.Context, subject, email string) domain.Identity {
	if subject == "" {
		return domain.Guest()
	}

	s.mu.RLock()
	cached, ok := s.cache[subject]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	identity := domain.Identity{Subject: subject, Email: email, Role: domain.FallbackRole}

	profile, err := s.profiles.FindByID(ctx, subject)
	switch {
	case err == nil && profile.Role.IsAssignable():
		identity.Role = profile.Role
		if identity.Email == "" {
			identity.Email = profile.Email
		}
	case err == nil:
		s.logger.Warn("role_fallback", "Profile has no usable role, using fallback", logger.RequestID(ctx),
			map[string]interface{}{"subject": subject, "role": profile.Role, "fallback": domain.FallbackRole}, nil)
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Debug("role_fallback", "No profile row, using fallback", logger.RequestID(ctx),
			map[string]interface{}{"subject": subject, "fallback": domain.FallbackRole})
	default:
		// Transient failures are not cached so the next request retries
		s.logger.Warn("role_lookup_failed", "Profile lookup failed, using fallback", logger.RequestID(ctx),
			map[string]interface{}{"subject": subject, "fallback": domain.FallbackRole}, err)
		return identity
	}

	s.mu.Lock()
	s.cache[subject] = identity
	s.mu.Unlock()
	return identity
}

// Forget drops the cached identity of subject.
func (s *Service) Forget(subject string) {
	s.mu.Lock()
	delete(s.cache, subject)
	s.mu.Unlock()
}

func (s *Service) HandleAuthEvent(ctx context.Context, event interfaces.AuthEvent) error {
	switch event.Event {
	case interfaces.AuthSignedOut:
		s.Forget(event.UserID)
		s.logger.Info("signed_out", "Session ended", logger.RequestID(ctx), map[string]interface{}{"subject": event.UserID})
	case interfaces.AuthSignedIn, interfaces.AuthUserUpdated, interfaces.AuthTokenRefreshed:
		s.Forget(event.UserID)
		identity := s.Resolve(ctx, event.UserID, event.Email)
		s.logger.Info("role_resolved", fmt.Sprintf("Resolved %s after %s", identity.Role, event.Event), logger.RequestID(ctx),
			map[string]interface{}{"subject": event.UserID, "role": identity.Role})
	default:
		s.logger.Debug("auth_event_ignored", fmt.Sprintf("Ignoring auth event %s", event.Event), logger.RequestID(ctx), nil)
	}
	return nil
}

func (s *Service) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.List(ctx)
}

// SetRole writes the role straight to the profile table and re-resolves the
// subject if it is cached.
func (s *Service) SetRole(ctx context.Context, profileID string, role domain.Role) error {
	if !role.IsAssignable() {
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	if err := s.profiles.UpdateRole(ctx, profileID, role); err != nil {
		s.logger.Error("role_update_failed", "Failed to update role", logger.RequestID(ctx),
			map[string]interface{}{"profile_id": profileID}, err)
		return err
	}

	s.mu.RLock()
	cached, ok := s.cache[profileID]
	s.mu.RUnlock()
	if ok {
		s.Forget(profileID)
		s.Resolve(ctx, profileID, cached.Email)
	}

	s.logger.Info("role_updated", fmt.Sprintf("Profile %s is now %s", profileID, role), logger.RequestID(ctx),
		map[string]interface{}{"profile_id": profileID, "role": role})

	if s.publisher != nil {
		err := s.publisher.PublishStoreEvent(ctx, interfaces.StoreEvent{
			Origin:      s.origin,
			Action:      "role_updated",
			Collections: []interfaces.Collection{interfaces.CollectionProfiles},
			EntityID:    profileID,
			Timestamp:   time.Now().UTC(),
		})
		if err != nil {
			s.logger.Warn("rabbitmq_publish_failed", "Failed to publish role change", logger.RequestID(ctx), nil, err)
		}
	}
	return nil
}
