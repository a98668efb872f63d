package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-prep-be/internal/dto"
	"interview-prep-be/internal/pkg/apperror"
	"interview-prep-be/internal/pkg/logger"
	"interview-prep-be/internal/pkg/serverutils"
)

const testSecret = "controller-secret"

type stubSessionService struct {
	created   *dto.CreateSessionRequest
	added     *dto.AddQuestionsRequest
	deletedId uuid.UUID
	err       error
}

func (s *stubSessionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SessionResponse{Id: uuid.New(), UserId: userId, Role: req.Role}, nil
}

func (s *stubSessionService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SessionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SessionResponse{Id: id, UserId: userId}, nil
}

func (s *stubSessionService) List(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	return []*dto.SessionResponse{{Id: uuid.New(), UserId: userId}}, s.err
}

func (s *stubSessionService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	s.deletedId = id
	return s.err
}

func (s *stubSessionService) AddQuestions(ctx context.Context, userId uuid.UUID, req *dto.AddQuestionsRequest) (*dto.SessionResponse, error) {
	s.added = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SessionResponse{Id: req.SessionId, UserId: userId}, nil
}

type stubQuestionService struct {
	note *dto.UpdateNoteRequest
}

func (s *stubQuestionService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.QuestionResponse, error) {
	return &dto.QuestionResponse{Id: id}, nil
}

func (s *stubQuestionService) TogglePin(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.QuestionResponse, error) {
	return &dto.QuestionResponse{Id: id, IsPinned: true}, nil
}

func (s *stubQuestionService) UpdateNote(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.QuestionResponse, error) {
	s.note = req
	return &dto.QuestionResponse{Id: req.Id, Note: req.Note}, nil
}

type stubGenerationService struct {
	forSession *dto.GenerateForSessionRequest
	err        error
}

func (s *stubGenerationService) GenerateQuestions(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuestionsRequest) ([]dto.QuestionPair, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []dto.QuestionPair{{Question: "What is Go?", Answer: "A language."}}, nil
}

func (s *stubGenerationService) GenerateExplanation(ctx context.Context, userId uuid.UUID, req *dto.GenerateExplanationRequest) (*dto.ExplanationResponse, error) {
	return &dto.ExplanationResponse{Title: "Go", Explanation: "A language."}, s.err
}

func (s *stubGenerationService) GenerateForSession(ctx context.Context, userId uuid.UUID, req *dto.GenerateForSessionRequest) (*dto.SessionResponse, error) {
	s.forSession = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.SessionResponse{Id: req.SessionId, UserId: userId}, nil
}

type testApp struct {
	app        *fiber.App
	sessions   *stubSessionService
	questions  *stubQuestionService
	generation *stubGenerationService
	token      string
	userId     uuid.UUID
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ta := &testApp{
		sessions:   &stubSessionService{},
		questions:  &stubQuestionService{},
		generation: &stubGenerationService{},
		userId:     uuid.New(),
	}
	token, err := serverutils.SignToken(testSecret, ta.userId)
	require.NoError(t, err)
	ta.token = token

	ta.app = fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandlerMiddleware(logger.NewNopLogger())})
	api := ta.app.Group("/api")
	auth := serverutils.NewJwtMiddleware(testSecret)
	NewSessionController(ta.sessions, nil).RegisterRoutes(api, auth)
	NewQuestionController(ta.sessions, ta.questions).RegisterRoutes(api, auth)
	NewAiController(ta.generation).RegisterRoutes(api, auth)
	return ta
}

func (ta *testApp) do(t *testing.T, method, path, body string, withToken bool) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken {
		req.Header.Set("Authorization", "Bearer "+ta.token)
	}

	resp, err := ta.app.Test(req)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestSessionController_Create(t *testing.T) {
	ta := newTestApp(t)

	resp, out := ta.do(t, "POST", "/api/session/v1",
		`{"role":"Backend Engineer","experience":"3 years","topics_to_focus":"Go, SQL","questions":[{"question":"Q1","answer":"A1"}]}`, true)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, out["success"])
	require.NotNil(t, ta.sessions.created)
	assert.Equal(t, "Backend Engineer", ta.sessions.created.Role)
	require.Len(t, ta.sessions.created.Questions, 1)
	assert.Equal(t, "Q1", ta.sessions.created.Questions[0].Question)
}

func TestSessionController_CreateValidation(t *testing.T) {
	ta := newTestApp(t)

	resp, out := ta.do(t, "POST", "/api/session/v1", `{"role":"  ","experience":"3 years","topics_to_focus":"Go"}`, true)

	assert.Equal(t, 400, resp.StatusCode)
	assert.Nil(t, ta.sessions.created)
	errDetail, ok := out["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "validation", errDetail["kind"])
}

func TestSessionController_RequiresToken(t *testing.T) {
	ta := newTestApp(t)

	resp, _ := ta.do(t, "GET", "/api/session/v1", "", false)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestSessionController_InvalidId(t *testing.T) {
	ta := newTestApp(t)

	resp, out := ta.do(t, "GET", "/api/session/v1/not-a-uuid", "", true)
	assert.Equal(t, 400, resp.StatusCode)
	errDetail := out["error"].(map[string]interface{})
	assert.Equal(t, "validation", errDetail["kind"])
}

func TestSessionController_Delete(t *testing.T) {
	ta := newTestApp(t)
	id := uuid.New()

	resp, out := ta.do(t, "DELETE", "/api/session/v1/"+id.String(), "", true)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, id, ta.sessions.deletedId)
}

func TestSessionController_ErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: apperror.NotFound("session not found"), status: 404},
		{name: "forbidden", err: apperror.Forbidden("forbidden"), status: 403},
		{name: "persistence", err: apperror.Persistence("find", errors.New("boom")), status: 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)
			ta.sessions.err = tt.err

			resp, _ := ta.do(t, "GET", "/api/session/v1/"+uuid.NewString(), "", true)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestQuestionController_AddPartialCreation(t *testing.T) {
	ta := newTestApp(t)
	sessionId := uuid.New()
	ta.sessions.err = &apperror.PartialCreationError{
		SessionId:          sessionId,
		CreatedQuestionIds: []uuid.UUID{uuid.New()},
		Stage:              apperror.StageFanOut,
		Err:                errors.New("insert failed"),
	}

	resp, out := ta.do(t, "POST", "/api/question/v1",
		`{"session_id":"`+sessionId.String()+`","questions":[{"question":"Q","answer":"A"}]}`, true)

	assert.Equal(t, 409, resp.StatusCode)
	errDetail := out["error"].(map[string]interface{})
	assert.Equal(t, "partial_creation", errDetail["kind"])
	assert.Equal(t, sessionId.String(), errDetail["session_id"])
	assert.Equal(t, apperror.StageFanOut, errDetail["stage"])
}

func TestQuestionController_UpdateNote(t *testing.T) {
	ta := newTestApp(t)
	id := uuid.New()

	resp, out := ta.do(t, "PUT", "/api/question/v1/"+id.String()+"/note", `{"note":"remember the GC"}`, true)

	assert.Equal(t, 200, resp.StatusCode)
	require.NotNil(t, ta.questions.note)
	assert.Equal(t, id, ta.questions.note.Id)
	assert.Equal(t, "remember the GC", ta.questions.note.Note)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "remember the GC", data["note"])
}

func TestQuestionController_UpdateNoteEmptyBodyClears(t *testing.T) {
	ta := newTestApp(t)
	id := uuid.New()

	resp, _ := ta.do(t, "PUT", "/api/question/v1/"+id.String()+"/note", "", true)

	assert.Equal(t, 200, resp.StatusCode)
	require.NotNil(t, ta.questions.note)
	assert.Empty(t, ta.questions.note.Note)
}

func TestQuestionController_TogglePin(t *testing.T) {
	ta := newTestApp(t)
	id := uuid.New()

	resp, out := ta.do(t, "PUT", "/api/question/v1/"+id.String()+"/pin", "", true)

	assert.Equal(t, 200, resp.StatusCode)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_pinned"])
}

func TestAiController_GenerateQuestions(t *testing.T) {
	ta := newTestApp(t)

	resp, out := ta.do(t, "POST", "/api/ai/v1/generate-questions",
		`{"role":"SRE","experience":"5 years","topics_to_focus":"Kubernetes","number_of_questions":3}`, true)

	assert.Equal(t, 200, resp.StatusCode)
	data := out["data"].([]interface{})
	assert.Len(t, data, 1)
}

func TestAiController_ProviderFailure(t *testing.T) {
	ta := newTestApp(t)
	ta.generation.err = apperror.MalformedResponse("generate questions", "not json", errors.New("invalid character"))

	resp, out := ta.do(t, "POST", "/api/ai/v1/generate-questions",
		`{"role":"SRE","experience":"5 years","topics_to_focus":"Kubernetes","number_of_questions":3}`, true)

	assert.Equal(t, 502, resp.StatusCode)
	errDetail := out["error"].(map[string]interface{})
	assert.Equal(t, "provider", errDetail["kind"])
}

func TestAiController_GenerateForSession(t *testing.T) {
	ta := newTestApp(t)
	id := uuid.New()

	resp, _ := ta.do(t, "POST", "/api/ai/v1/session/"+id.String()+"/generate", `{"number_of_questions":4}`, true)

	assert.Equal(t, 200, resp.StatusCode)
	require.NotNil(t, ta.generation.forSession)
	assert.Equal(t, id, ta.generation.forSession.SessionId)
	assert.Equal(t, 4, ta.generation.forSession.NumberOfQuestions)
}
