package service

import (
	"context"
	"time"

	"interview-prep-be/internal/constant"
	"interview-prep-be/internal/dto"
	"interview-prep-be/internal/entity"
	"interview-prep-be/internal/pkg/apperror"
	"interview-prep-be/internal/pkg/logger"
	"interview-prep-be/internal/pkg/validation"
	"interview-prep-be/internal/repository/specification"
	"interview-prep-be/internal/repository/unitofwork"
	"interview-prep-be/pkg/events"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SessionResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	AddQuestions(ctx context.Context, userId uuid.UUID, req *dto.AddQuestionsRequest) (*dto.SessionResponse, error)
}

type SessionServiceConfig struct {
	FanOutConcurrency int
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	fanOut     *questionFanOut
	events     eventEmitter
	logger     logger.ILogger
	now        func() time.Time
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	cfg SessionServiceConfig,
	publisher events.Publisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		fanOut:     newQuestionFanOut(cfg.FanOutConcurrency),
		events:     newEventEmitter(publisher, log),
		logger:     log,
		now:        time.Now,
	}
}

// Create persists the session shell, fans out the question inserts and then
// back-fills the reference list. The three steps are not atomic: a failure
// after the shell is written returns *apperror.PartialCreationError.
func (s *sessionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session := entity.Session{
		Id:            uuid.New(),
		UserId:        userId,
		Role:          req.Role,
		Experience:    req.Experience,
		TopicsToFocus: req.TopicsToFocus,
		Description:   req.Description,
		QuestionIds:   []uuid.UUID{},
		CreatedAt:     s.now().UTC(),
	}

	// 1. Shell
	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	// 2. Fan-out, 3. Back-fill
	created, err := s.attach(ctx, uow, session.Id, req.Questions)
	if err != nil {
		return nil, err
	}

	res, err := s.load(ctx, uow, session.Id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("SESSION", "Session created", map[string]interface{}{
		"session_id": session.Id,
		"user_id":    userId,
		"questions":  len(created),
	})
	s.events.emit(ctx, constant.EventSessionCreated, map[string]interface{}{
		"session_id":     session.Id,
		"user_id":        userId,
		"question_count": len(created),
	})

	return res, nil
}

// attach writes the questions and appends their references, in input order.
func (s *sessionService) attach(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, pairs []dto.QuestionPair) ([]uuid.UUID, error) {
	created, err := s.fanOut.create(ctx, uow.QuestionRepository(), sessionId, pairs)
	if err != nil {
		// keep whatever was written reachable from the session
		if backFillErr := uow.SessionRepository().AppendQuestionRefs(ctx, sessionId, created); backFillErr != nil {
			s.logger.Warn("SESSION", "Failed to attach questions after fan-out failure", map[string]interface{}{
				"session_id": sessionId,
				"error":      backFillErr,
			})
		}
		return nil, s.partialCreation(ctx, sessionId, created, apperror.StageFanOut, err)
	}

	if err := uow.SessionRepository().AppendQuestionRefs(ctx, sessionId, created); err != nil {
		return nil, s.partialCreation(ctx, sessionId, created, apperror.StageBackFill, err)
	}
	return created, nil
}

func (s *sessionService) partialCreation(ctx context.Context, sessionId uuid.UUID, created []uuid.UUID, stage string, cause error) error {
	s.logger.Error("SESSION", "Session partially created", map[string]interface{}{
		"session_id":   sessionId,
		"stage":        stage,
		"question_ids": created,
		"error":        cause,
	})
	s.events.emit(ctx, constant.EventSessionPartial, map[string]interface{}{
		"session_id": sessionId,
		"stage":      stage,
	})
	return &apperror.PartialCreationError{
		SessionId:          sessionId,
		CreatedQuestionIds: created,
		Stage:              stage,
		Err:                cause,
	}
}

func (s *sessionService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := findOwnedSession(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, uow, session)
}

func (s *sessionService) List(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SessionResponse, 0, len(sessions))
	if len(sessions) == 0 {
		return res, nil
	}

	ids := make([]uuid.UUID, len(sessions))
	for i, session := range sessions {
		ids[i] = session.Id
	}
	questions, err := uow.QuestionRepository().FindAll(ctx, specification.BySessionIDs{SessionIDs: ids})
	if err != nil {
		return nil, err
	}

	byId := indexQuestions(questions)
	for _, session := range sessions {
		res = append(res, toSessionResponse(session, byId))
	}
	return res, nil
}

// Delete removes the owned questions before the session, inside one transaction.
func (s *sessionService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findOwnedSession(ctx, uow, userId, id); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return apperror.Persistence("begin delete session", err)
	}
	defer uow.Rollback()

	deleted, err := uow.QuestionRepository().DeleteBySessionId(ctx, id)
	if err != nil {
		return err
	}
	if err := uow.SessionRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return apperror.Persistence("commit delete session", err)
	}

	s.logger.Info("SESSION", "Session deleted", map[string]interface{}{
		"session_id":        id,
		"questions_deleted": deleted,
	})
	s.events.emit(ctx, constant.EventSessionDeleted, map[string]interface{}{
		"session_id": id,
		"user_id":    userId,
	})
	return nil
}

// AddQuestions appends new questions to an existing session. Prior references
// are never rewritten; the new ids go after them.
func (s *sessionService) AddQuestions(ctx context.Context, userId uuid.UUID, req *dto.AddQuestionsRequest) (*dto.SessionResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := findOwnedSession(ctx, uow, userId, req.SessionId)
	if err != nil {
		return nil, err
	}

	created, err := s.attach(ctx, uow, session.Id, req.Questions)
	if err != nil {
		return nil, err
	}
	if err := uow.SessionRepository().Touch(ctx, session.Id); err != nil {
		s.logger.Warn("SESSION", "Failed to touch session", map[string]interface{}{"session_id": session.Id, "error": err})
	}

	s.events.emit(ctx, constant.EventSessionQuestionsAdded, map[string]interface{}{
		"session_id":   session.Id,
		"question_ids": created,
	})

	return s.load(ctx, uow, session.Id)
}

func (s *sessionService) load(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session not found")
	}
	return s.expand(ctx, uow, session)
}

func (s *sessionService) expand(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.Session) (*dto.SessionResponse, error) {
	questions, err := uow.QuestionRepository().FindAll(ctx, specification.BySessionID{SessionID: session.Id})
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session, indexQuestions(questions)), nil
}

// findOwnedSession resolves a session and checks it belongs to userId.
func findOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Session, error) {
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session not found")
	}
	if session.UserId != userId {
		return nil, apperror.Forbidden("access to this session is denied")
	}
	return session, nil
}
