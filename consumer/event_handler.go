package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"search-service/domain"
	"search-service/usecase"
)

// ServiceEventPayload carries the service identity for created and index
// events. The consumer re-reads the full row from the database, so the
// payload only needs the id.
type ServiceEventPayload struct {
	ServiceID  string `json:"service_id"`
	SupplierID string `json:"supplier_id"`
	Title      string `json:"title"`
}

// ServiceDeletedPayload is the payload for ServiceDeleted events.
type ServiceDeletedPayload struct {
	ServiceID string `json:"service_id"`
}

// ServiceEventHandler applies catalog events to the search index. Indexing
// always reloads the service from the database, which makes replays and
// out-of-order deliveries converge on current state.
type ServiceEventHandler struct {
	indexUsecase  *usecase.IndexServiceUsecase
	deleteUsecase *usecase.DeleteServiceUsecase
	logger        *slog.Logger
}

func NewServiceEventHandler(
	indexUsecase *usecase.IndexServiceUsecase,
	deleteUsecase *usecase.DeleteServiceUsecase,
	logger *slog.Logger,
) *ServiceEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ServiceEventHandler{
		indexUsecase:  indexUsecase,
		deleteUsecase: deleteUsecase,
		logger:        logger,
	}
}

// HandleEvent processes a single event. A nil return acknowledges the
// message; errors leave it pending for redelivery.
func (h *ServiceEventHandler) HandleEvent(ctx context.Context, event Event) error {
	switch event.EventType {
	case "ServiceCreated", "IndexService":
		return h.handleIndex(ctx, event)
	case "ServiceDeleted":
		return h.handleDelete(ctx, event)
	default:
		h.logger.Warn("unknown event type, skipping",
			"event_type", event.EventType,
			"event_id", event.EventID,
		)
		return nil
	}
}

func (h *ServiceEventHandler) handleIndex(ctx context.Context, event Event) error {
	var payload ServiceEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		h.logger.Error("failed to unmarshal service event payload",
			"event_id", event.EventID,
			"error", err,
		)
		return err
	}

	result, err := h.indexUsecase.Execute(ctx, payload.ServiceID)
	if err != nil {
		if domain.IsNotFound(err) {
			// Row already gone, retrying cannot help.
			h.logger.Warn("service vanished before indexing, acknowledging",
				"service_id", payload.ServiceID,
				"event_id", event.EventID,
			)
			return nil
		}
		return err
	}

	h.logger.Info("service indexed from event",
		"service_id", result.ServiceID,
		"event_type", event.EventType,
	)
	return nil
}

func (h *ServiceEventHandler) handleDelete(ctx context.Context, event Event) error {
	var payload ServiceDeletedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		h.logger.Error("failed to unmarshal ServiceDeleted payload",
			"event_id", event.EventID,
			"error", err,
		)
		return err
	}

	if err := h.deleteUsecase.Execute(ctx, payload.ServiceID); err != nil {
		if domain.IsNotFound(err) {
			// Deleting an absent document means the goal state is reached.
			h.logger.Info("document already absent, acknowledging",
				"service_id", payload.ServiceID,
			)
			return nil
		}
		return err
	}

	h.logger.Info("service removed from index", "service_id", payload.ServiceID)
	return nil
}
