package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type catalogRefresher interface {
	RefreshCollections(ctx context.Context, collections ...interfaces.Collection) error
}

type settingsRefresher interface {
	Refresh(ctx context.Context) error
}

type identityCache interface {
	Forget(subject string)
}

// EventHandler applies store events published by other instances to the
// local snapshots.
type EventHandler struct {
	origin   string
	catalog  catalogRefresher
	settings settingsRefresher
	identity identityCache
	logger   logger.Logger
}

func NewEventHandler(origin string, catalog catalogRefresher, settings settingsRefresher, identity identityCache, logger logger.Logger) *EventHandler {
	return &EventHandler{
		origin:   origin,
		catalog:  catalog,
		settings: settings,
		identity: identity,
		logger:   logger,
	}
}

func (h *EventHandler) HandleStoreEvent(ctx context.Context, body []byte) error {
	var event interfaces.StoreEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse store event", "", nil, err)
		return err
	}

	// Our own mutations already refreshed the snapshots
	if event.Origin == h.origin {
		return nil
	}

	h.logger.Debug("store_event_received", fmt.Sprintf("Received %s from %s", event.Action, event.Origin), "",
		map[string]interface{}{
			"action":      event.Action,
			"collections": event.Collections,
			"entity_id":   event.EntityID,
		})

	var catalog []interfaces.Collection
	refreshSettings := false
	for _, c := range event.Collections {
		switch c {
		case interfaces.CollectionSettings:
			refreshSettings = true
		case interfaces.CollectionProfiles:
			// the next request re-reads the role
			if event.EntityID != "" {
				h.identity.Forget(event.EntityID)
			}
		default:
			catalog = append(catalog, c)
		}
	}

	if len(catalog) > 0 {
		if err := h.catalog.RefreshCollections(ctx, catalog...); err != nil {
			h.logger.Error("store_refresh_failed", "Failed to refresh catalog after event", "",
				map[string]interface{}{"action": event.Action}, err)
			return err
		}
	}

	if refreshSettings {
		if err := h.settings.Refresh(ctx); err != nil {
			h.logger.Error("settings_refresh_failed", "Failed to refresh settings after event", "", nil, err)
			return err
		}
	}

	return nil
}

// NotificationHandler only reports store events. It backs the
// notification-subscriber command.
type NotificationHandler struct {
	logger logger.Logger
}

func NewNotificationHandler(logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{logger: logger}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var event interfaces.StoreEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse notification", "", nil, err)
		return err
	}

	h.logger.Info("notification_received", fmt.Sprintf("%s changed %v", event.Action, event.Collections), "",
		map[string]interface{}{
			"origin":    event.Origin,
			"action":    event.Action,
			"entity_id": event.EntityID,
			"timestamp": event.Timestamp,
		})

	return nil
}
