package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type authEventApplier interface {
	HandleAuthEvent(ctx context.Context, event interfaces.AuthEvent) error
}

// AuthHandler forwards identity provider session changes to the identity
// store.
type AuthHandler struct {
	identity authEventApplier
	logger   logger.Logger
}

func NewAuthHandler(identity authEventApplier, logger logger.Logger) *AuthHandler {
	return &AuthHandler{identity: identity, logger: logger}
}

func (h *AuthHandler) HandleAuthEvent(ctx context.Context, body []byte) error {
	var event interfaces.AuthEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse auth event", "", nil, err)
		return err
	}

	if event.UserID == "" {
		return fmt.Errorf("auth event %s without user id", event.Event)
	}

	h.logger.Debug("auth_event_received", fmt.Sprintf("Auth event %s", event.Event), "",
		map[string]interface{}{"event": event.Event, "user_id": event.UserID})

	return h.identity.HandleAuthEvent(ctx, event)
}
