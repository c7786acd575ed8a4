package settings

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type Service struct {
	repo      interfaces.SettingsRepository
	storage   interfaces.FileStorage
	publisher interfaces.EventPublisher
	logger    logger.Logger
	origin    string
	now       func() time.Time

	mu      sync.RWMutex
	current *domain.Settings
}

func NewService(
	repo interfaces.SettingsRepository,
	storage interfaces.FileStorage,
	publisher interfaces.EventPublisher,
	logger logger.Logger,
	origin string,
) *Service {
	return &Service{
		repo:      repo,
		storage:   storage,
		publisher: publisher,
		logger:    logger,
		origin:    origin,
		now:       time.Now,
	}
}

// Get returns a copy of the cached settings, or nil before the first
// successful load.
func (s *Service) Get() *domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// Refresh reloads the singleton row. A missing row leaves the cache as it
// is and is not an error.
func (s *Service) Refresh(ctx context.Context) error {
	current, err := s.repo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Debug("settings_missing", "No settings row yet", logger.RequestID(ctx), nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	s.mu.Lock()
	s.current = current
	s.mu.Unlock()
	return nil
}

// Update uploads the optional background first, then writes the row and
// re-fetches it.
func (s *Service) Update(ctx context.Context, cmd interfaces.UpdateSettingsCommand) error {
	next := domain.DefaultSettings()
	if cur := s.Get(); cur != nil {
		next = *cur
	}
	next.BrandName = strings.TrimSpace(cmd.BrandName)
	next.TextColor = cmd.TextColor
	next.AccentColor = cmd.AccentColor

	if err := next.Validate(); err != nil {
		return err
	}

	if cmd.Background != nil {
		url, err := s.uploadBackground(ctx, *cmd.Background)
		if err != nil {
			return err
		}
		next.BackgroundImageURL = url
	}

	if err := s.repo.Update(ctx, next); err != nil {
		s.logger.Error("settings_update_failed", "Failed to save settings", logger.RequestID(ctx), nil, err)
		return err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("refresh_failed", "Failed to re-fetch settings", logger.RequestID(ctx), nil, err)
	}

	s.notify(ctx)
	return nil
}

// SetBackground replaces only the background image.
func (s *Service) SetBackground(ctx context.Context, upload interfaces.Upload) (string, error) {
	next := domain.DefaultSettings()
	if cur := s.Get(); cur != nil {
		next = *cur
	}

	url, err := s.uploadBackground(ctx, upload)
	if err != nil {
		return "", err
	}
	next.BackgroundImageURL = url

	if err := s.repo.Update(ctx, next); err != nil {
		s.logger.Error("settings_update_failed", "Failed to save background", logger.RequestID(ctx), nil, err)
		return "", err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("refresh_failed", "Failed to re-fetch settings", logger.RequestID(ctx), nil, err)
	}

	s.notify(ctx)
	return url, nil
}

func (s *Service) uploadBackground(ctx context.Context, upload interfaces.Upload) (string, error) {
	name := fmt.Sprintf("bg-%d%s", s.now().UnixMilli(), strings.ToLower(path.Ext(upload.Filename)))

	url, err := s.storage.Upload(ctx, name, upload.ContentType, upload.Body)
	if err != nil {
		s.logger.Error("image_upload_failed", "Failed to upload background", logger.RequestID(ctx),
			map[string]interface{}{"name": name}, err)
		return "", err
	}
	return url, nil
}

func (s *Service) notify(ctx context.Context) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.PublishStoreEvent(ctx, interfaces.StoreEvent{
		Origin:      s.origin,
		Action:      "settings_updated",
		Collections: []interfaces.Collection{interfaces.CollectionSettings},
		Timestamp:   s.now().UTC(),
	})
	if err != nil {
		s.logger.Warn("rabbitmq_publish_failed", "Failed to publish settings change", logger.RequestID(ctx), nil, err)
	}
}
