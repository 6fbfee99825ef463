package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/notemind/notemind/internal/constants"
	"github.com/notemind/notemind/internal/dto"
	apperrors "github.com/notemind/notemind/internal/errors"
	"github.com/notemind/notemind/internal/repository"
	"github.com/notemind/notemind/pkg/redis"
	"github.com/notemind/notemind/pkg/summarize"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// chatCompleter is the slice of the OpenAI client the summarizer needs.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// SummaryService produces note summaries. It prefers the OpenAI chat API and
// falls back to the local extractive summarizer when no API key is configured
// or the call fails, so summarization always returns something.
type SummaryService struct {
	notes    repository.NoteRepository
	ai       chatCompleter
	cache    *redis.Client
	model    string
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewSummaryService(notes repository.NoteRepository, ai chatCompleter, cache *redis.Client, model string, cacheTTL time.Duration, logger *zap.Logger) *SummaryService {
	return &SummaryService{
		notes:    notes,
		ai:       ai,
		cache:    cache,
		model:    model,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// NewOpenAIClient returns the chat client for the given API key, or nil when
// the key is empty. A nil client makes SummaryService fallback-only.
func NewOpenAIClient(apiKey string) chatCompleter {
	if apiKey == "" {
		return nil
	}
	return openai.NewClient(apiKey)
}

// Summarize generates a summary for the note's current content. The result is
// cached by content digest and persisted on the note.
func (s *SummaryService) Summarize(ctx context.Context, userID, noteID uint, length string) (*dto.SummarizeResponse, error) {
	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if note.UserID != userID {
		return nil, apperrors.ErrForbidden
	}

	if strings.TrimSpace(note.Content) == "" {
		return nil, apperrors.ErrInvalidInput
	}
	if length == "" {
		length = "medium"
	}

	cacheKey := summaryCacheKey(note.ID, note.Content, length)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		var resp dto.SummarizeResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
		s.cache.Delete(ctx, cacheKey)
	}

	resp := s.generate(ctx, note.Content, length)

	// Persisting and caching are best effort; the summary is already computed.
	if err := s.notes.UpdateSummary(ctx, note.ID, resp.Summary); err != nil {
		s.logger.Warn("Failed to persist summary",
			zap.Uint("note_id", note.ID),
			zap.Error(err),
		)
	}
	if payload, err := json.Marshal(resp); err == nil {
		s.cache.Set(ctx, cacheKey, string(payload), s.cacheTTL)
	}

	s.logger.Info("Note summarized",
		zap.Uint("note_id", note.ID),
		zap.Uint("user_id", userID),
		zap.String("source", resp.Source),
	)

	return resp, nil
}

func (s *SummaryService) generate(ctx context.Context, content, length string) *dto.SummarizeResponse {
	if s.ai != nil {
		summary, err := s.aiSummary(ctx, content, length)
		if err == nil {
			return &dto.SummarizeResponse{Summary: summary, Source: "ai"}
		}
		s.logger.Warn("AI summarization failed, using fallback", zap.Error(err))
	}

	summary := summarize.Summary(content, summarize.SentenceCount(length, content))
	return &dto.SummarizeResponse{Summary: summary, Source: "fallback"}
}

func (s *SummaryService) aiSummary(ctx context.Context, content, length string) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the following note in a %s summary. Reply with the summary only.\n\n%s",
		length, content,
	)

	resp, err := s.ai.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize personal notes concisely and faithfully.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("blank completion content")
	}
	return summary, nil
}

// summaryCacheKey keys the cache by note and content digest, so edits
// invalidate naturally instead of needing explicit eviction.
func summaryCacheKey(noteID uint, content, length string) string {
	sum := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%s%d:%s:%s", constants.CacheKeySummary, noteID, length, hex.EncodeToString(sum[:8]))
}
