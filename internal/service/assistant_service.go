// FILE: internal/service/assistant_service.go
// PURPOSE: Orchestrates a conversational turn: classify intent, dispatch to
// search or explanation, and record the turn in the session.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"code-assistant-be/internal/constant"
	"code-assistant-be/internal/dto"
	"code-assistant-be/internal/entity"
	"code-assistant-be/internal/model"
	"code-assistant-be/internal/pkg/apperrors"
	"code-assistant-be/internal/pkg/logger"
	"code-assistant-be/internal/repository/contract"
	"code-assistant-be/pkg/embedding"
	"code-assistant-be/pkg/explain"
	"code-assistant-be/pkg/intent"
	"code-assistant-be/pkg/session"
	"code-assistant-be/pkg/store"
)

type IAssistantService interface {
	CodeSearch(ctx context.Context, sessionID, userInput string, topK int) (*dto.SearchResponse, error)
	ExplainFunction(ctx context.Context, sessionID, userInput string) (*dto.ExplainResponse, error)
	Chat(ctx context.Context, sessionID, userInput string) (*dto.ChatResponse, error)
	GetHistory(sessionID string) (*dto.HistoryResponse, error)
}

type assistantService struct {
	indexer    IIndexerService
	embedder   embedding.EmbeddingProvider
	classifier intent.Classifier
	explainer  *explain.Explainer
	sessions   *session.Manager
	auditRepo  contract.TurnAuditRepository // nil when auditing is off
	topK       int
	llmLog     logger.ILogger
}

func NewAssistantService(
	indexer IIndexerService,
	embedder embedding.EmbeddingProvider,
	classifier intent.Classifier,
	explainer *explain.Explainer,
	sessions *session.Manager,
	auditRepo contract.TurnAuditRepository,
	topK int,
) IAssistantService {
	if topK <= 0 {
		topK = 5
	}
	return &assistantService{
		indexer:    indexer,
		embedder:   embedder,
		classifier: classifier,
		explainer:  explainer,
		sessions:   sessions,
		auditRepo:  auditRepo,
		topK:       topK,
		llmLog:     logger.NewIsolatedLogger("logs/llm_assistant.log"),
	}
}

func (s *assistantService) CodeSearch(ctx context.Context, sessionID, userInput string, topK int) (*dto.SearchResponse, error) {
	if strings.TrimSpace(userInput) == "" {
		return nil, apperrors.InvalidArgumentf("user_input is empty")
	}
	if topK <= 0 {
		topK = s.topK
	}

	results, err := s.search(ctx, userInput, topK)
	if err != nil {
		// Failed turns enter history too; LastResults stays untouched so a
		// later "explain the first one" still points at the last good search.
		s.sessions.RecordTurn(sessionID, userInput, intent.IntentCodeSearch.String(), nil)
		return nil, err
	}

	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.Id
	}
	s.sessions.RecordSearchTurn(sessionID, userInput, ids)
	s.audit(sessionID, userInput, intent.IntentCodeSearch.String(), ids)

	return &dto.SearchResponse{
		SessionId: sessionID,
		Results:   results,
	}, nil
}

// search embeds the utterance and queries the current index. No session lock
// is held here; the provider call may take seconds.
func (s *assistantService) search(ctx context.Context, userInput string, topK int) ([]dto.SearchResultDTO, error) {
	resp, err := s.embedder.Generate(userInput, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	idx := s.indexer.Index()
	hits, err := idx.Query(resp.Embedding.Values, topK)
	if err != nil {
		return nil, err
	}

	corpusStore := s.indexer.Corpus()
	results := make([]dto.SearchResultDTO, 0, len(hits))
	for _, hit := range hits {
		item, err := corpusStore.Get(hit.ItemId)
		if err != nil {
			// Store and index briefly diverge during a reload swap.
			log.Printf("[WARN] Search hit %s missing from corpus store, skipping", hit.ItemId)
			continue
		}
		results = append(results, dto.SearchResultDTO{
			Id:      item.Id,
			Score:   hit.Score,
			Rank:    hit.Rank,
			Snippet: item.Text,
			Doc:     item.Doc,
		})
	}
	return results, nil
}

func (s *assistantService) ExplainFunction(ctx context.Context, sessionID, userInput string) (*dto.ExplainResponse, error) {
	if strings.TrimSpace(userInput) == "" {
		return nil, apperrors.InvalidArgumentf("user_input is empty")
	}

	item, err := s.resolveTarget(sessionID, userInput)
	if err != nil {
		s.sessions.RecordTurn(sessionID, userInput, intent.IntentFunctionExplanation.String(), nil)
		return nil, err
	}

	explanation, err := s.explainer.Explain(ctx, &item)
	degraded := false
	if err != nil {
		if !errors.Is(err, apperrors.ErrExplanationUnavailable) {
			return nil, err
		}
		// The function resolved fine, only the paraphrase failed. Serve a
		// degraded reply instead of erroring the whole turn.
		explanation = constant.ExplanationDegradedMessage
		degraded = true
	}

	s.llmLog.Info("explain", "Function explanation served", map[string]interface{}{
		"session_id":  sessionID,
		"function_id": item.Id,
		"degraded":    degraded,
	})

	s.sessions.RecordTurn(sessionID, userInput, intent.IntentFunctionExplanation.String(), []string{item.Id})
	s.audit(sessionID, userInput, intent.IntentFunctionExplanation.String(), []string{item.Id})

	return &dto.ExplainResponse{
		SessionId:   sessionID,
		FunctionId:  item.Id,
		Explanation: explanation,
		Degraded:    degraded,
	}, nil
}

// resolveTarget decides which corpus item the utterance is about: a reference
// to a prior result ("the second one") or a function named inline.
func (s *assistantService) resolveTarget(sessionID, userInput string) (entity.CorpusItem, error) {
	corpusStore := s.indexer.Corpus()

	if token := intent.ExtractFunctionToken(userInput); token != "" {
		return corpusStore.Resolve(token)
	}

	if session.RefersToPriorResult(userInput) {
		id, err := s.sessions.ResolveReference(sessionID, userInput)
		if err != nil {
			return entity.CorpusItem{}, err
		}
		return corpusStore.Get(id)
	}

	return entity.CorpusItem{}, apperrors.InvalidArgumentf("no function named in %q", userInput)
}

func (s *assistantService) Chat(ctx context.Context, sessionID, userInput string) (*dto.ChatResponse, error) {
	if strings.TrimSpace(userInput) == "" {
		return nil, apperrors.InvalidArgumentf("user_input is empty")
	}

	classified := s.classifier.Classify(ctx, userInput)

	switch classified.Intent {
	case intent.IntentCodeSearch:
		searchRes, err := s.CodeSearch(ctx, sessionID, userInput, s.topK)
		if err != nil {
			return nil, err
		}
		reply := fmt.Sprintf("I found %d matching snippets.", len(searchRes.Results))
		if len(searchRes.Results) == 0 {
			reply = constant.NoResultsMessage
		}
		return &dto.ChatResponse{
			SessionId: sessionID,
			Intent:    classified.Intent.String(),
			Reply:     reply,
			Results:   searchRes.Results,
		}, nil

	case intent.IntentFunctionExplanation:
		explainRes, err := s.ExplainFunction(ctx, sessionID, userInput)
		if err != nil {
			return nil, err
		}
		return &dto.ChatResponse{
			SessionId:   sessionID,
			Intent:      classified.Intent.String(),
			Reply:       explainRes.Explanation,
			FunctionId:  explainRes.FunctionId,
			Explanation: explainRes.Explanation,
		}, nil

	default:
		// Ask the user to restate instead of guessing an action.
		s.sessions.RecordTurn(sessionID, userInput, intent.IntentUnknown.String(), nil)
		s.audit(sessionID, userInput, intent.IntentUnknown.String(), nil)
		return &dto.ChatResponse{
			SessionId: sessionID,
			Intent:    intent.IntentUnknown.String(),
			Reply:     constant.ClarificationMessage,
		}, nil
	}
}

func (s *assistantService) GetHistory(sessionID string) (*dto.HistoryResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperrors.InvalidArgumentf("session id is empty")
	}

	snapshot := s.sessions.GetOrCreate(sessionID)
	return toHistoryResponse(snapshot), nil
}

func toHistoryResponse(snapshot *store.Session) *dto.HistoryResponse {
	turns := make([]dto.TurnDTO, len(snapshot.History))
	for i, t := range snapshot.History {
		turns[i] = dto.TurnDTO{
			Utterance: t.Utterance,
			Intent:    t.Intent,
			ResultRef: t.ResultRef,
			At:        t.At,
		}
	}
	return &dto.HistoryResponse{
		SessionId:    snapshot.ID,
		Turns:        turns,
		LastResults:  snapshot.LastResults,
		CreatedAt:    snapshot.CreatedAt,
		LastActiveAt: snapshot.LastActiveAt,
	}
}

// audit writes the turn to Postgres off the request path. Failures are logged
// and dropped; auditing never affects the user-visible turn.
func (s *assistantService) audit(sessionID, utterance, intentLabel string, resultIDs []string) {
	if s.auditRepo == nil {
		return
	}
	go func() {
		record := &model.TurnAudit{
			SessionId: sessionID,
			Utterance: utterance,
			Intent:    intentLabel,
			ResultIds: strings.Join(resultIDs, ","),
		}
		if err := s.auditRepo.Create(context.Background(), record); err != nil {
			log.Printf("[ERROR] Failed to audit turn for session %s: %v", sessionID, err)
		}
	}()
}
