package service

import (
	"context"
	"fmt"
	"time"

	"interview-prep-be/internal/constant"
	"interview-prep-be/internal/dto"
	"interview-prep-be/internal/pkg/apperror"
	"interview-prep-be/internal/pkg/logger"
	"interview-prep-be/internal/pkg/validation"
	"interview-prep-be/pkg/ai/extract"
	"interview-prep-be/pkg/llm"
	"interview-prep-be/pkg/ratelimit"

	"github.com/google/uuid"
)

const (
	opGenerateQuestions   = "generate questions"
	opGenerateExplanation = "generate explanation"
)

type IGenerationService interface {
	GenerateQuestions(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuestionsRequest) ([]dto.QuestionPair, error)
	GenerateExplanation(ctx context.Context, userId uuid.UUID, req *dto.GenerateExplanationRequest) (*dto.ExplanationResponse, error)
	// GenerateForSession asks the provider for questions matching the session
	// and appends them to it.
	GenerateForSession(ctx context.Context, userId uuid.UUID, req *dto.GenerateForSessionRequest) (*dto.SessionResponse, error)
}

type GenerationServiceConfig struct {
	RequestTimeout       time.Duration
	DefaultQuestionCount int
	Temperature          float64
	ExplanationMaxTokens int
}

type generationService struct {
	provider       llm.LLMProvider
	limiter        ratelimit.Limiter
	sessionService ISessionService
	cfg            GenerationServiceConfig
	logger         logger.ILogger
}

func NewGenerationService(
	provider llm.LLMProvider,
	limiter ratelimit.Limiter,
	sessionService ISessionService,
	cfg GenerationServiceConfig,
	log logger.ILogger,
) IGenerationService {
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	if cfg.DefaultQuestionCount <= 0 {
		cfg.DefaultQuestionCount = 10
	}
	return &generationService{
		provider:       provider,
		limiter:        limiter,
		sessionService: sessionService,
		cfg:            cfg,
		logger:         log,
	}
}

func (s *generationService) GenerateQuestions(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuestionsRequest) ([]dto.QuestionPair, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	prompt := constant.QuestionAnswerPrompt(req.Role, req.Experience, req.TopicsToFocus, req.NumberOfQuestions)
	raw, err := s.call(ctx, userId, opGenerateQuestions, prompt)
	if err != nil {
		return nil, err
	}

	parsed, err := extract.Questions(raw)
	if err != nil {
		s.logMalformed(opGenerateQuestions, raw, err)
		return nil, apperror.MalformedResponse(opGenerateQuestions, raw, err)
	}

	// extra pairs beyond the requested count are dropped
	if len(parsed) > req.NumberOfQuestions {
		parsed = parsed[:req.NumberOfQuestions]
	}

	pairs := make([]dto.QuestionPair, len(parsed))
	for i, qa := range parsed {
		pairs[i] = dto.QuestionPair{Question: qa.Question, Answer: qa.Answer}
		if err := validation.Struct(&pairs[i]); err != nil {
			err = fmt.Errorf("item %d: %s", i, err.Error())
			s.logMalformed(opGenerateQuestions, raw, err)
			return nil, apperror.MalformedResponse(opGenerateQuestions, raw, err)
		}
	}

	s.logger.Info("GENERATION", "Questions generated", map[string]interface{}{
		"user_id":   userId,
		"requested": req.NumberOfQuestions,
		"received":  len(pairs),
	})
	return pairs, nil
}

func (s *generationService) GenerateExplanation(ctx context.Context, userId uuid.UUID, req *dto.GenerateExplanationRequest) (*dto.ExplanationResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	opts := []llm.Option{}
	if s.cfg.ExplanationMaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(s.cfg.ExplanationMaxTokens))
	}
	raw, err := s.call(ctx, userId, opGenerateExplanation, constant.ConceptExplainPrompt(req.Question), opts...)
	if err != nil {
		return nil, err
	}

	explanation, err := extract.ConceptExplanation(raw)
	if err != nil {
		s.logMalformed(opGenerateExplanation, raw, err)
		return nil, apperror.MalformedResponse(opGenerateExplanation, raw, err)
	}

	return &dto.ExplanationResponse{
		Title:       explanation.Title,
		Explanation: explanation.Explanation,
	}, nil
}

func (s *generationService) GenerateForSession(ctx context.Context, userId uuid.UUID, req *dto.GenerateForSessionRequest) (*dto.SessionResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	session, err := s.sessionService.Show(ctx, userId, req.SessionId)
	if err != nil {
		return nil, err
	}

	count := req.NumberOfQuestions
	if count == 0 {
		count = s.cfg.DefaultQuestionCount
	}

	pairs, err := s.GenerateQuestions(ctx, userId, &dto.GenerateQuestionsRequest{
		Role:              session.Role,
		Experience:        session.Experience,
		TopicsToFocus:     session.TopicsToFocus,
		NumberOfQuestions: count,
	})
	if err != nil {
		return nil, err
	}

	return s.sessionService.AddQuestions(ctx, userId, &dto.AddQuestionsRequest{
		SessionId: session.Id,
		Questions: pairs,
	})
}

// call runs one provider request under the per-user rate limit and the request timeout.
// Nothing is retried.
func (s *generationService) call(ctx context.Context, userId uuid.UUID, op, prompt string, opts ...llm.Option) (string, error) {
	allowed, err := s.limiter.Allow(ctx, userId.String())
	if err != nil {
		// limiter backend down, do not block generation on it
		s.logger.Warn("GENERATION", "Rate limiter unavailable", map[string]interface{}{"error": err})
		allowed = true
	}
	if !allowed {
		return "", apperror.RateLimited("too many generation requests, try again later")
	}

	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	opts = append([]llm.Option{llm.WithJSONResponse()}, opts...)
	if s.cfg.Temperature > 0 {
		opts = append(opts, llm.WithTemperature(s.cfg.Temperature))
	}

	started := time.Now()
	raw, err := s.provider.Generate(ctx, prompt, opts...)
	if err != nil {
		s.logger.Error("GENERATION", "Provider call failed", map[string]interface{}{
			"op":          op,
			"error":       err,
			"duration_ms": time.Since(started).Milliseconds(),
		})
		return "", apperror.ProviderUnavailable(op, err)
	}

	s.logger.Debug("GENERATION", "Provider call finished", map[string]interface{}{
		"op":          op,
		"duration_ms": time.Since(started).Milliseconds(),
		"bytes":       len(raw),
	})
	return raw, nil
}

func (s *generationService) logMalformed(op, raw string, err error) {
	preview := raw
	if len(preview) > 500 {
		preview = preview[:500]
	}
	s.logger.Error("GENERATION", "Malformed provider response", map[string]interface{}{
		"op":      op,
		"error":   err,
		"preview": preview,
	})
}
