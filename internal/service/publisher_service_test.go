package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamanekazuki/hr-qa-assistant/internal/dto"
)

func TestPublisherServiceRoundTrip(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	answered, err := pubSub.Subscribe(ctx, "QUERY_ANSWERED")
	require.NoError(t, err)
	enriched, err := pubSub.Subscribe(ctx, "QUERY_ENRICHED")
	require.NoError(t, err)

	svc := NewPublisherService(pubSub, "QUERY_ANSWERED", "QUERY_ENRICHED")

	recordID := uuid.New()
	require.NoError(t, svc.PublishQueryAnswered(dto.QueryAnsweredMessage{
		RecordId: recordID,
		UserId:   uuid.New(),
		Query:    "q",
		Outcome:  "answered",
	}))
	require.NoError(t, svc.PublishQueryEnriched(dto.QueryEnrichedMessage{
		RecordId: recordID,
		Insights: []string{"示唆"},
	}))

	select {
	case msg := <-answered:
		var payload dto.QueryAnsweredMessage
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, recordID, payload.RecordId)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no message on answered topic")
	}

	select {
	case msg := <-enriched:
		var payload dto.QueryEnrichedMessage
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, []string{"示唆"}, payload.Insights)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no message on enriched topic")
	}
}
