package service

import (
	"context"

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

type IQuestionService interface {
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.QuestionResponse, error)
	TogglePin(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.QuestionResponse, error)
	UpdateNote(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.QuestionResponse, error)
}

// questionService mutates single questions. It never writes the owning session.
type questionService struct {
	uowFactory unitofwork.RepositoryFactory
	events     eventEmitter
	logger     logger.ILogger
}

func NewQuestionService(
	uowFactory unitofwork.RepositoryFactory,
	publisher events.Publisher,
	log logger.ILogger,
) IQuestionService {
	return &questionService{
		uowFactory: uowFactory,
		events:     newEventEmitter(publisher, log),
		logger:     log,
	}
}

func (s *questionService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.QuestionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	question, err := findOwnedQuestion(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return toQuestionResponse(question), nil
}

// TogglePin flips is_pinned. Concurrent toggles on the same question are last write wins.
func (s *questionService) TogglePin(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.QuestionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	question, err := findOwnedQuestion(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	pinned := !question.IsPinned
	if err := uow.QuestionRepository().UpdatePinned(ctx, id, pinned); err != nil {
		return nil, err
	}

	updated, err := reloadQuestion(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	eventType := constant.EventQuestionUnpinned
	if pinned {
		eventType = constant.EventQuestionPinned
	}
	s.events.emit(ctx, eventType, map[string]interface{}{
		"question_id": id,
		"session_id":  updated.SessionId,
	})

	return toQuestionResponse(updated), nil
}

// UpdateNote replaces the note. An omitted note clears it.
func (s *questionService) UpdateNote(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.QuestionResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findOwnedQuestion(ctx, uow, userId, req.Id); err != nil {
		return nil, err
	}

	if err := uow.QuestionRepository().UpdateNote(ctx, req.Id, req.Note); err != nil {
		return nil, err
	}

	updated, err := reloadQuestion(ctx, uow, req.Id)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("QUESTION", "Note updated", map[string]interface{}{"question_id": req.Id})
	return toQuestionResponse(updated), nil
}

// findOwnedQuestion resolves a question and checks its session belongs to userId.
func findOwnedQuestion(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Question, error) {
	question, err := uow.QuestionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, apperror.NotFound("question not found")
	}

	count, err := uow.SessionRepository().Count(ctx,
		specification.ByID{ID: question.SessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		// owning session is gone or belongs to someone else
		exists, err := uow.SessionRepository().Count(ctx, specification.ByID{ID: question.SessionId})
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, apperror.NotFound("question not found")
		}
		return nil, apperror.Forbidden("access to this question is denied")
	}
	return question, nil
}

func reloadQuestion(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Question, error) {
	question, err := uow.QuestionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, apperror.NotFound("question not found")
	}
	return question, nil
}
