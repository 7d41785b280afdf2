package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yamanekazuki/hr-qa-assistant/internal/constant"
	"github.com/yamanekazuki/hr-qa-assistant/internal/dto"
	"github.com/yamanekazuki/hr-qa-assistant/internal/entity"
	"github.com/yamanekazuki/hr-qa-assistant/internal/pkg/logger"
	"github.com/yamanekazuki/hr-qa-assistant/internal/repository/memory"
	"github.com/yamanekazuki/hr-qa-assistant/pkg/generation"
	"github.com/yamanekazuki/hr-qa-assistant/pkg/knowledge"
	"github.com/yamanekazuki/hr-qa-assistant/pkg/prompt"
	"github.com/yamanekazuki/hr-qa-assistant/pkg/sanitize"
	"github.com/yamanekazuki/hr-qa-assistant/pkg/store"
)

// IAssistantService is the answer orchestrator: one primary generation
// request per submit, then two dependent secondary requests fired
// concurrently once the main answer is visible. Secondary failures degrade
// silently; the primary answer is never blocked by them.
type IAssistantService interface {
	Ask(ctx context.Context, userID uuid.UUID, req *dto.AskRequest) (*dto.SessionStateResponse, error)
	SessionState(userID uuid.UUID) *dto.SessionStateResponse
	SetGranularity(userID uuid.UUID, req *dto.SetGranularityRequest) *dto.SessionStateResponse
	SetQueryText(userID uuid.UUID, req *dto.SetQueryTextRequest) *dto.SessionStateResponse
	FAQ(limit int) []*dto.FAQItemResponse
	MatchFAQ(query string) *dto.FAQMatchResponse
}

// SessionNotifier pushes session snapshots to connected presentation clients.
type SessionNotifier interface {
	PushSessionState(userID uuid.UUID, state interface{})
}

type assistantService struct {
	kb          *knowledge.Store
	generator   generation.Client
	sessionRepo *memory.SessionRepository
	publisher   IPublisherService
	notifier    SessionNotifier
	logger      logger.ILogger
	timeout     time.Duration
}

func NewAssistantService(
	kb *knowledge.Store,
	generator generation.Client,
	sessionRepo *memory.SessionRepository,
	publisher IPublisherService,
	notifier SessionNotifier,
	sysLogger logger.ILogger,
	requestTimeout time.Duration,
) IAssistantService {
	return &assistantService{
		kb:          kb,
		generator:   generator,
		sessionRepo: sessionRepo,
		publisher:   publisher,
		notifier:    notifier,
		logger:      sysLogger,
		timeout:     requestTimeout,
	}
}

// Ask runs one full submit cycle. It returns once the MAIN answer settles;
// insight and suggestion requests keep running in the background and commit
// into the session whenever each resolves.
func (s *assistantService) Ask(ctx context.Context, userID uuid.UUID, req *dto.AskRequest) (*dto.SessionStateResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "query must not be blank")
	}

	sess := s.sessionRepo.GetOrCreate(userID.String())
	if req.Granularity != "" {
		sess.SetGranularity(req.Granularity)
	}

	tag, granularity := sess.StartSearch(query)
	s.notify(userID, sess)

	callCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	raw, err := s.generator.GenerateText(callCtx, query, prompt.BuildMainInstruction(granularity, s.kb.Context()))
	cancel()

	if err != nil {
		message := constant.GenericErrorMessage
		if generation.KindOf(err) == generation.KindUnauthorized {
			message = constant.APIKeyErrorMessage
		}
		s.logger.Error("Assistant", "Main generation request failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		// Error settles the answer AND forces both secondary requests to
		// their absent state; they must not start.
		if sess.SettleMainError(tag, message) {
			s.notify(userID, sess)
			s.publishAnswered(tag, userID, query, granularity, entity.QueryOutcomeError, message)
		}
		return s.stateOf(sess), nil
	}

	processed := sanitize.RemoveUnwantedReferences(raw)
	answer := processed
	outcome := entity.QueryOutcomeAnswered
	if processed == constant.NotFoundMessage || sanitize.IsEffectivelyEmpty(processed) {
		answer = constant.NotFoundMessage
		outcome = entity.QueryOutcomeNotFound
	}

	if !sess.SettleMain(tag, answer) {
		// Superseded by a newer submit while generating; drop silently.
		return s.stateOf(sess), nil
	}
	s.notify(userID, sess)
	s.publishAnswered(tag, userID, query, granularity, outcome, answer)

	s.dispatchSecondaries(sess, userID, tag, query, answer)

	return s.stateOf(sess), nil
}

// dispatchSecondaries fires the insight and suggestion requests back-to-back
// without waiting on either. Both share one cancellable context so a
// superseding submit aborts whatever is still in flight.
func (s *assistantService) dispatchSecondaries(sess *store.Session, userID uuid.UUID, tag uuid.UUID, query, answer string) {
	secCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	if !sess.BeginSecondaries(tag, cancel) {
		return
	}
	s.notify(userID, sess)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.fetchInsights(secCtx, sess, userID, tag, query, answer)
	}()
	go func() {
		defer wg.Done()
		s.fetchSuggestions(secCtx, sess, userID, tag, query, answer)
	}()
	go func() {
		wg.Wait()
		cancel()
	}()
}

func (s *assistantService) fetchInsights(ctx context.Context, sess *store.Session, userID uuid.UUID, tag uuid.UUID, query, answer string) {
	var hints []string

	raw, err := s.generator.GenerateStringArray(ctx, prompt.BuildInsightPrompt(query, answer), constant.InsightItemDescription)
	if err != nil {
		s.logger.Warn("Assistant", "Insight request failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	} else {
		hints = sanitize.ParseStringArray(raw)
		if hints == nil {
			s.logger.Warn("Assistant", "Insight response was not a string array", map[string]interface{}{
				"user_id": userID,
			})
		}
	}

	if !sess.SettleInsights(tag, hints) {
		return
	}
	s.notify(userID, sess)
	if hints != nil {
		s.publishEnriched(dto.QueryEnrichedMessage{RecordId: tag, Insights: hints})
	}
}

func (s *assistantService) fetchSuggestions(ctx context.Context, sess *store.Session, userID uuid.UUID, tag uuid.UUID, query, answer string) {
	questions := []string{}

	raw, err := s.generator.GenerateStringArray(ctx, prompt.BuildSuggestionsPrompt(query, answer, s.kb.Context()), constant.SuggestionItemDescription)
	if err != nil {
		s.logger.Warn("Assistant", "Suggestions request failed", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	} else if parsed := sanitize.ParseStringArray(raw); parsed != nil {
		if len(parsed) > constant.MaxSuggestedQuestions {
			parsed = parsed[:constant.MaxSuggestedQuestions]
		}
		questions = parsed
	} else {
		s.logger.Warn("Assistant", "Suggestions response was not a string array", map[string]interface{}{
			"user_id": userID,
		})
	}

	if !sess.SettleSuggestions(tag, questions) {
		return
	}
	s.notify(userID, sess)
	if len(questions) > 0 {
		s.publishEnriched(dto.QueryEnrichedMessage{RecordId: tag, Suggestions: questions})
	}
}

func (s *assistantService) SessionState(userID uuid.UUID) *dto.SessionStateResponse {
	sess := s.sessionRepo.GetOrCreate(userID.String())
	return s.stateOf(sess)
}

func (s *assistantService) SetGranularity(userID uuid.UUID, req *dto.SetGranularityRequest) *dto.SessionStateResponse {
	sess := s.sessionRepo.GetOrCreate(userID.String())
	// Only affects the NEXT submit; displayed answer and derived features
	// stay as they are.
	sess.SetGranularity(req.Granularity)
	return s.stateOf(sess)
}

func (s *assistantService) SetQueryText(userID uuid.UUID, req *dto.SetQueryTextRequest) *dto.SessionStateResponse {
	sess := s.sessionRepo.GetOrCreate(userID.String())
	sess.SetQueryText(req.Query)
	return s.stateOf(sess)
}

func (s *assistantService) FAQ(limit int) []*dto.FAQItemResponse {
	items := s.kb.Top(limit)
	out := make([]*dto.FAQItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, &dto.FAQItemResponse{
			Id:          item.Id,
			Category:    item.Category,
			SubCategory: item.SubCategory,
			Question:    item.Question,
		})
	}
	return out
}

func (s *assistantService) MatchFAQ(query string) *dto.FAQMatchResponse {
	item, score := s.kb.Match(query)
	res := &dto.FAQMatchResponse{Score: score}
	if item != nil {
		res.Item = &dto.FAQItemDetailResponse{
			Id:          item.Id,
			Category:    item.Category,
			SubCategory: item.SubCategory,
			Question:    item.Question,
			Answer:      item.Answer,
		}
	}
	return res
}

func (s *assistantService) publishAnswered(tag uuid.UUID, userID uuid.UUID, query, granularity string, outcome entity.QueryOutcome, answer string) {
	if s.publisher == nil {
		return
	}
	msg := dto.QueryAnsweredMessage{
		RecordId:    tag,
		UserId:      userID,
		Query:       query,
		Granularity: granularity,
		Outcome:     string(outcome),
		Answer:      answer,
	}
	if err := s.publisher.PublishQueryAnswered(msg); err != nil {
		s.logger.Warn("Assistant", "Failed to publish query-answered event", map[string]interface{}{"error": err.Error()})
	}
}

func (s *assistantService) publishEnriched(msg dto.QueryEnrichedMessage) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishQueryEnriched(msg); err != nil {
		s.logger.Warn("Assistant", "Failed to publish query-enriched event", map[string]interface{}{"error": err.Error()})
	}
}

func (s *assistantService) notify(userID uuid.UUID, sess *store.Session) {
	if s.notifier == nil {
		return
	}
	s.notifier.PushSessionState(userID, s.stateOf(sess))
}

func (s *assistantService) stateOf(sess *store.Session) *dto.SessionStateResponse {
	snap := sess.Snapshot()
	return &dto.SessionStateResponse{
		CurrentQueryText:           snap.CurrentQueryText,
		SearchedQuestion:           snap.SearchedQuestion,
		Answer:                     snap.Answer,
		InsightHints:               snap.InsightHints,
		FollowUpQuestions:          snap.FollowUpQuestions,
		MainRequestInFlight:        snap.MainInFlight,
		InsightRequestInFlight:     snap.InsightInFlight,
		SuggestionsRequestInFlight: snap.SuggestionsInFlight,
		Granularity:                snap.Granularity,
	}
}
