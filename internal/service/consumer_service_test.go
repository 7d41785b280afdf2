package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/yamanekazuki/hr-qa-assistant/internal/dto"
	"github.com/yamanekazuki/hr-qa-assistant/internal/entity"
)

type fakeHistoryRepo struct {
	mu          sync.Mutex
	records     []entity.QueryRecord
	insights    map[uuid.UUID][]byte
	suggestions map[uuid.UUID][]byte
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{
		insights:    make(map[uuid.UUID][]byte),
		suggestions: make(map[uuid.UUID][]byte),
	}
}

func (r *fakeHistoryRepo) CreateRecord(ctx context.Context, record *entity.QueryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeHistoryRepo) AttachInsights(ctx context.Context, recordID uuid.UUID, insights []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insights[recordID] = insights
	return nil
}

func (r *fakeHistoryRepo) AttachSuggestions(ctx context.Context, recordID uuid.UUID, suggestions []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggestions[recordID] = suggestions
	return nil
}

func (r *fakeHistoryRepo) ListRecords(ctx context.Context, limit, offset int) ([]entity.QueryRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.QueryRecord{}, r.records...), int64(len(r.records)), nil
}

func (r *fakeHistoryRepo) CountByOutcome(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int64)
	for _, rec := range r.records {
		out[string(rec.Outcome)]++
	}
	return out, nil
}

func (r *fakeHistoryRepo) CountByGranularity(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int64)
	for _, rec := range r.records {
		out[rec.Granularity]++
	}
	return out, nil
}

func runConsumer(run func(context.Context, <-chan *message.Message), payloads ...interface{}) {
	ch := make(chan *message.Message, len(payloads))
	for _, p := range payloads {
		body, _ := json.Marshal(p)
		ch <- message.NewMessage(uuid.NewString(), body)
	}
	close(ch)
	run(context.Background(), ch)
}

func TestAnsweredConsumerPersistsRecord(t *testing.T) {
	repo := newFakeHistoryRepo()
	consumer := NewConsumerService(repo, nil, nopLogger{})

	recordID := uuid.New()
	userID := uuid.New()
	runConsumer(consumer.RunAnsweredConsumer, dto.QueryAnsweredMessage{
		RecordId:    recordID,
		UserId:      userID,
		Query:       "有給休暇について",
		Granularity: "contextual",
		Outcome:     "answered",
		Answer:      "回答本文",
	})

	require.Len(t, repo.records, 1)
	record := repo.records[0]
	assert.Equal(t, recordID, record.Id)
	assert.Equal(t, userID, record.UserId)
	assert.Equal(t, entity.QueryOutcomeAnswered, record.Outcome)
	assert.Equal(t, "回答本文", record.Answer)
}

func TestAnsweredConsumerSkipsMalformedPayload(t *testing.T) {
	repo := newFakeHistoryRepo()
	consumer := NewConsumerService(repo, nil, nopLogger{})

	ch := make(chan *message.Message, 1)
	ch <- message.NewMessage(uuid.NewString(), []byte("not json"))
	close(ch)
	consumer.RunAnsweredConsumer(context.Background(), ch)

	assert.Empty(t, repo.records)
}

func TestEnrichedConsumerAttachesBothParts(t *testing.T) {
	repo := newFakeHistoryRepo()
	consumer := NewConsumerService(repo, nil, nopLogger{})

	recordID := uuid.New()
	runConsumer(consumer.RunEnrichedConsumer,
		dto.QueryEnrichedMessage{RecordId: recordID, Insights: []string{"示唆1", "示唆2"}},
		dto.QueryEnrichedMessage{RecordId: recordID, Suggestions: []string{"次の質問"}},
	)

	var insights []string
	require.NoError(t, json.Unmarshal(repo.insights[recordID], &insights))
	assert.Equal(t, []string{"示唆1", "示唆2"}, insights)

	var suggestions []string
	require.NoError(t, json.Unmarshal(repo.suggestions[recordID], &suggestions))
	assert.Equal(t, []string{"次の質問"}, suggestions)
}

func TestEnrichedConsumerIgnoresEmptyMessage(t *testing.T) {
	repo := newFakeHistoryRepo()
	consumer := NewConsumerService(repo, nil, nopLogger{})

	runConsumer(consumer.RunEnrichedConsumer, dto.QueryEnrichedMessage{RecordId: uuid.New()})

	assert.Empty(t, repo.insights)
	assert.Empty(t, repo.suggestions)
}

func TestAdminServiceStats(t *testing.T) {
	repo := newFakeHistoryRepo()
	now := time.Now()
	repo.records = []entity.QueryRecord{
		{Id: uuid.New(), Outcome: entity.QueryOutcomeAnswered, Granularity: "contextual", CreatedAt: now},
		{Id: uuid.New(), Outcome: entity.QueryOutcomeAnswered, Granularity: "detailed", CreatedAt: now},
		{Id: uuid.New(), Outcome: entity.QueryOutcomeNotFound, Granularity: "contextual", CreatedAt: now},
	}

	admin := NewAdminService(repo, nopLogger{})
	stats, err := admin.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalQueries)
	assert.Equal(t, int64(2), stats.ByOutcome["answered"])
	assert.Equal(t, int64(1), stats.ByOutcome["not_found"])
	assert.Equal(t, int64(2), stats.ByGranularity["contextual"])
}

func TestAdminServiceHistory(t *testing.T) {
	repo := newFakeHistoryRepo()
	insights, _ := json.Marshal([]string{"示唆"})
	repo.records = []entity.QueryRecord{
		{Id: uuid.New(), UserId: uuid.New(), Query: "q", Outcome: entity.QueryOutcomeAnswered, Insights: datatypes.JSON(insights)},
	}

	admin := NewAdminService(repo, nopLogger{})
	history, err := admin.History(context.Background(), 10, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(1), history.Total)
	require.Len(t, history.Records, 1)
	assert.Equal(t, []string{"示唆"}, history.Records[0].Insights)
}
