package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/events"
)

// ActivityService writes human-readable audit lines for lead lifecycle
// events. Activity is console-visible only; nothing is persisted.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	return &ActivityService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to lead events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLeadSubmitted, a.handleLeadSubmitted)
	a.dispatcher.Subscribe(events.EventLeadStatusChanged, a.handleLeadStatusChanged)
	a.dispatcher.Subscribe(events.EventLeadNoteAdded, a.handleLeadNoteAdded)
	a.dispatcher.Subscribe(events.EventLeadDeleted, a.handleLeadDeleted)
}

func (a *ActivityService) handleLeadSubmitted(_ context.Context, event events.Event) error {
	a.log(fmt.Sprintf("%s submitted a contact form", event.LeadName), event)
	return nil
}

func (a *ActivityService) handleLeadStatusChanged(_ context.Context, event events.Event) error {
	newStatus := ""
	if payload, ok := event.Payload.(events.StatusChangedPayload); ok {
		newStatus = payload.NewStatus
	}
	a.log(fmt.Sprintf("Lead status changed to %s for %s", newStatus, event.LeadName), event)
	return nil
}

func (a *ActivityService) handleLeadNoteAdded(_ context.Context, event events.Event) error {
	a.log(fmt.Sprintf("Note added to lead %s", event.LeadName), event)
	return nil
}

func (a *ActivityService) handleLeadDeleted(_ context.Context, event events.Event) error {
	a.log(fmt.Sprintf("Lead %s deleted", event.LeadName), event)
	return nil
}

func (a *ActivityService) log(action string, event events.Event) {
	a.logger.Info("activity",
		zap.String("action", action),
		zap.String("lead_id", event.LeadID),
		zap.Time("at", event.Timestamp),
	)
}
