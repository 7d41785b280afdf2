package service

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/yamanekazuki/hr-qa-assistant/internal/dto"
)

// IPublisherService hands analytics messages to the in-process message
// router. Publishing is fire-and-forget from the caller's point of view:
// a failed publish never fails the request that produced it.
type IPublisherService interface {
	PublishQueryAnswered(msg dto.QueryAnsweredMessage) error
	PublishQueryEnriched(msg dto.QueryEnrichedMessage) error
}

type publisherService struct {
	publisher       message.Publisher
	answeredTopic   string
	enrichmentTopic string
}

func NewPublisherService(publisher message.Publisher, answeredTopic, enrichmentTopic string) IPublisherService {
	return &publisherService{
		publisher:       publisher,
		answeredTopic:   answeredTopic,
		enrichmentTopic: enrichmentTopic,
	}
}

func (p *publisherService) PublishQueryAnswered(msg dto.QueryAnsweredMessage) error {
	return p.publish(p.answeredTopic, msg)
}

func (p *publisherService) PublishQueryEnriched(msg dto.QueryEnrichedMessage) error {
	return p.publish(p.enrichmentTopic, msg)
}

func (p *publisherService) publish(topic string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.publisher.Publish(topic, message.NewMessage(uuid.NewString(), body))
}
