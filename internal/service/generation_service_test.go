package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"interview-prep-be/internal/dto"
	"interview-prep-be/internal/pkg/apperror"
	"interview-prep-be/internal/pkg/logger"
	"interview-prep-be/pkg/ratelimit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const questionsJSON = `[
  {"question": "What is a goroutine?", "answer": "A lightweight thread managed by the Go runtime."},
  {"question": "What is a channel?", "answer": "A typed conduit for communication between goroutines."}
]`

func newGeneration(f *fixture, provider *fakeProvider, limiter ratelimit.Limiter, cfg GenerationServiceConfig) IGenerationService {
	return NewGenerationService(provider, limiter, f.sessions, cfg, logger.NewNopLogger())
}

func questionsReq() *dto.GenerateQuestionsRequest {
	return &dto.GenerateQuestionsRequest{
		Role:              "Backend Engineer",
		Experience:        "2",
		TopicsToFocus:     "Go",
		NumberOfQuestions: 2,
	}
}

func TestGenerationService_GenerateQuestions_FencedEqualsPlain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	plain := newGeneration(f, &fakeProvider{response: questionsJSON}, nil, GenerationServiceConfig{})
	fenced := newGeneration(f, &fakeProvider{response: "```json\n" + questionsJSON + "\n```"}, nil, GenerationServiceConfig{})

	a, err := plain.GenerateQuestions(ctx, uuid.New(), questionsReq())
	require.NoError(t, err)
	b, err := fenced.GenerateQuestions(ctx, uuid.New(), questionsReq())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	require.Len(t, a, 2)
	assert.Equal(t, "What is a goroutine?", a[0].Question)
}

func TestGenerationService_GenerateQuestions_Prompt(t *testing.T) {
	f := newFixture(t)
	provider := &fakeProvider{response: questionsJSON}
	gen := newGeneration(f, provider, nil, GenerationServiceConfig{})

	_, err := gen.GenerateQuestions(context.Background(), uuid.New(), questionsReq())
	require.NoError(t, err)
	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "**Backend Engineer**")
	assert.Contains(t, provider.prompts[0], "Focus Areas: Go")
}

func TestGenerationService_GenerateQuestions_Failures(t *testing.T) {
	tests := []struct {
		name      string
		provider  *fakeProvider
		malformed bool
	}{
		{name: "transport error", provider: &fakeProvider{err: errors.New("connection refused")}},
		{name: "not json", provider: &fakeProvider{response: "Sure! Here are your questions."}, malformed: true},
		{name: "object instead of array", provider: &fakeProvider{response: `{"question":"q","answer":"a"}`}, malformed: true},
		{name: "missing answer", provider: &fakeProvider{response: `[{"question":"q"}]`}, malformed: true},
		{name: "empty array", provider: &fakeProvider{response: `[]`}, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			gen := newGeneration(f, tt.provider, nil, GenerationServiceConfig{})

			res, err := gen.GenerateQuestions(context.Background(), uuid.New(), questionsReq())
			assert.Nil(t, res)
			assert.ErrorIs(t, err, apperror.ErrProvider)
			assert.Equal(t, tt.malformed, errors.Is(err, apperror.ErrMalformedProviderResponse))
			assert.Equal(t, 1, tt.provider.Calls(), "no automatic retry")
		})
	}
}

func TestGenerationService_Validation(t *testing.T) {
	f := newFixture(t)
	provider := &fakeProvider{response: questionsJSON}
	gen := newGeneration(f, provider, nil, GenerationServiceConfig{})

	req := questionsReq()
	req.NumberOfQuestions = 0
	_, err := gen.GenerateQuestions(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = gen.GenerateExplanation(context.Background(), uuid.New(), &dto.GenerateExplanationRequest{Question: " "})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	assert.Zero(t, provider.Calls())
}

func TestGenerationService_Timeout(t *testing.T) {
	f := newFixture(t)
	gen := newGeneration(f, &fakeProvider{block: true}, nil, GenerationServiceConfig{RequestTimeout: 20 * time.Millisecond})

	_, err := gen.GenerateQuestions(context.Background(), uuid.New(), questionsReq())
	assert.ErrorIs(t, err, apperror.ErrProvider)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerationService_RateLimited(t *testing.T) {
	f := newFixture(t)
	provider := &fakeProvider{response: questionsJSON}
	limiter := ratelimit.NewMemoryLimiter(ratelimit.Config{Limit: 1, Window: time.Minute})
	gen := newGeneration(f, provider, limiter, GenerationServiceConfig{})
	user := uuid.New()

	_, err := gen.GenerateQuestions(context.Background(), user, questionsReq())
	require.NoError(t, err)

	_, err = gen.GenerateQuestions(context.Background(), user, questionsReq())
	assert.ErrorIs(t, err, apperror.ErrRateLimited)
	assert.Equal(t, 1, provider.Calls())

	// other users have their own window
	_, err = gen.GenerateQuestions(context.Background(), uuid.New(), questionsReq())
	assert.NoError(t, err)
}

func TestGenerationService_GenerateExplanation(t *testing.T) {
	f := newFixture(t)
	provider := &fakeProvider{response: "```json\n{\"title\": \"Goroutines 101\", \"explanation\": \"They are cheap threads.\"}\n```"}
	gen := newGeneration(f, provider, nil, GenerationServiceConfig{})

	res, err := gen.GenerateExplanation(context.Background(), uuid.New(), &dto.GenerateExplanationRequest{Question: "What is a goroutine?"})
	require.NoError(t, err)
	assert.Equal(t, "Goroutines 101", res.Title)
	assert.Equal(t, "They are cheap threads.", res.Explanation)
	assert.Contains(t, provider.prompts[0], `"What is a goroutine?"`)

	bad := newGeneration(f, &fakeProvider{response: `{"title": "only title"}`}, nil, GenerationServiceConfig{})
	_, err = bad.GenerateExplanation(context.Background(), uuid.New(), &dto.GenerateExplanationRequest{Question: "q"})
	assert.ErrorIs(t, err, apperror.ErrMalformedProviderResponse)
}

func TestGenerationService_GenerateForSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := f.sessions.Create(ctx, owner, createReq(pair("Q1")))
	require.NoError(t, err)

	provider := &fakeProvider{response: questionsJSON}
	gen := newGeneration(f, provider, nil, GenerationServiceConfig{DefaultQuestionCount: 7})

	res, err := gen.GenerateForSession(ctx, owner, &dto.GenerateForSessionRequest{SessionId: created.Id})
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1", "What is a goroutine?", "What is a channel?"}, questionTexts(res))
	assert.Contains(t, provider.prompts[0], "generate a list of 7 diverse")
	assert.Contains(t, provider.prompts[0], "Focus Areas: Node.js")

	// a stranger cannot spend the provider on someone else's session
	_, err = gen.GenerateForSession(ctx, uuid.New(), &dto.GenerateForSessionRequest{SessionId: created.Id})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Equal(t, 1, provider.Calls())

	// a malformed response attaches nothing
	broken := newGeneration(f, &fakeProvider{response: "nope"}, nil, GenerationServiceConfig{})
	_, err = broken.GenerateForSession(ctx, owner, &dto.GenerateForSessionRequest{SessionId: created.Id, NumberOfQuestions: 3})
	assert.ErrorIs(t, err, apperror.ErrMalformedProviderResponse)

	shown, err := f.sessions.Show(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Len(t, shown.Questions, 3)
}

func TestGenerationService_GenerateForSession_OversizedResponse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := f.sessions.Create(ctx, owner, createReq(pair("Q1")))
	require.NoError(t, err)

	many := make([]map[string]string, 101)
	for i := range many {
		many[i] = map[string]string{"question": fmt.Sprintf("Q%d?", i), "answer": "A"}
	}
	raw, err := json.Marshal(many)
	require.NoError(t, err)

	gen := newGeneration(f, &fakeProvider{response: string(raw)}, nil, GenerationServiceConfig{})
	res, err := gen.GenerateForSession(ctx, owner, &dto.GenerateForSessionRequest{SessionId: created.Id, NumberOfQuestions: 50})
	require.NoError(t, err)
	assert.Len(t, res.Questions, 51)
}

func TestGenerationService_GenerateForSession_UnstorableText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := f.sessions.Create(ctx, owner, createReq(pair("Q1")))
	require.NoError(t, err)

	gen := newGeneration(f, &fakeProvider{response: `[{"question": "bad\u0000byte", "answer": "A"}]`}, nil, GenerationServiceConfig{})
	_, err = gen.GenerateForSession(ctx, owner, &dto.GenerateForSessionRequest{SessionId: created.Id, NumberOfQuestions: 1})
	assert.ErrorIs(t, err, apperror.ErrMalformedProviderResponse)
	assert.NotErrorIs(t, err, apperror.ErrValidation)

	shown, err := f.sessions.Show(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Len(t, shown.Questions, 1)
}
