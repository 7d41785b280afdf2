package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yamanekazuki/hr-qa-assistant/internal/dto"
	"github.com/yamanekazuki/hr-qa-assistant/internal/entity"
	"github.com/yamanekazuki/hr-qa-assistant/internal/pkg/logger"
	"github.com/yamanekazuki/hr-qa-assistant/internal/repository"
	"github.com/yamanekazuki/hr-qa-assistant/pkg/events"
	natspub "github.com/yamanekazuki/hr-qa-assistant/pkg/nats"
)

// IConsumerService drains the analytics topics and persists query history.
// It runs for the lifetime of the process; each Run call blocks until the
// subscriber channel closes.
type IConsumerService interface {
	RunAnsweredConsumer(ctx context.Context, messages <-chan *message.Message)
	RunEnrichedConsumer(ctx context.Context, messages <-chan *message.Message)
}

type consumerService struct {
	historyRepo   repository.HistoryRepository
	natsPublisher *natspub.Publisher
	logger        logger.ILogger
}

func NewConsumerService(historyRepo repository.HistoryRepository, natsPublisher *natspub.Publisher, sysLogger logger.ILogger) IConsumerService {
	return &consumerService{
		historyRepo:   historyRepo,
		natsPublisher: natsPublisher,
		logger:        sysLogger,
	}
}

func (c *consumerService) RunAnsweredConsumer(ctx context.Context, messages <-chan *message.Message) {
	for msg := range messages {
		c.handleAnswered(ctx, msg)
		msg.Ack()
	}
}

func (c *consumerService) handleAnswered(ctx context.Context, msg *message.Message) {
	var payload dto.QueryAnsweredMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.logger.Error("Analytics", "Malformed query-answered payload", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	record := &entity.QueryRecord{
		Id:          payload.RecordId,
		UserId:      payload.UserId,
		Query:       payload.Query,
		Granularity: payload.Granularity,
		Outcome:     entity.QueryOutcome(payload.Outcome),
		Answer:      payload.Answer,
	}
	if err := c.historyRepo.CreateRecord(ctx, record); err != nil {
		c.logger.Error("Analytics", "Failed to persist query record", map[string]interface{}{
			"record_id": payload.RecordId,
			"error":     err.Error(),
		})
		return
	}

	if c.natsPublisher != nil {
		event := events.NewQueryAnsweredEvent(payload.RecordId, payload.UserId, payload.Query, payload.Granularity, payload.Outcome)
		if err := c.natsPublisher.Publish(ctx, event); err != nil {
			c.logger.Warn("Analytics", "Failed to publish query-answered admin event", map[string]interface{}{
				"record_id": payload.RecordId,
				"error":     err.Error(),
			})
		}
	}
}

func (c *consumerService) RunEnrichedConsumer(ctx context.Context, messages <-chan *message.Message) {
	for msg := range messages {
		c.handleEnriched(ctx, msg)
		msg.Ack()
	}
}

func (c *consumerService) handleEnriched(ctx context.Context, msg *message.Message) {
	var payload dto.QueryEnrichedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.logger.Error("Analytics", "Malformed query-enriched payload", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	if payload.Insights != nil {
		body, err := json.Marshal(payload.Insights)
		if err == nil {
			err = c.historyRepo.AttachInsights(ctx, payload.RecordId, body)
		}
		if err != nil {
			c.logger.Warn("Analytics", "Failed to attach insights to query record", map[string]interface{}{
				"record_id": payload.RecordId,
				"error":     err.Error(),
			})
		}
	}

	if payload.Suggestions != nil {
		body, err := json.Marshal(payload.Suggestions)
		if err == nil {
			err = c.historyRepo.AttachSuggestions(ctx, payload.RecordId, body)
		}
		if err != nil {
			c.logger.Warn("Analytics", "Failed to attach suggestions to query record", map[string]interface{}{
				"record_id": payload.RecordId,
				"error":     err.Error(),
			})
		}
	}
}
