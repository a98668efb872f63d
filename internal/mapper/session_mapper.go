package mapper

import (
	"time"

	"interview-prep-be/internal/entity"
	"interview-prep-be/internal/model"

	"github.com/google/uuid"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session, questionIds []uuid.UUID) *entity.Session {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	if questionIds == nil {
		questionIds = make([]uuid.UUID, 0)
	}

	return &entity.Session{
		Id:            s.Id,
		UserId:        s.UserId,
		Role:          s.Role,
		Experience:    s.Experience,
		TopicsToFocus: s.TopicsToFocus,
		Description:   s.Description,
		QuestionIds:   questionIds,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Session{
		Id:            s.Id,
		UserId:        s.UserId,
		Role:          s.Role,
		Experience:    s.Experience,
		TopicsToFocus: s.TopicsToFocus,
		Description:   s.Description,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

// ToRefs builds reference rows in list order.
func (m *SessionMapper) ToRefs(sessionId uuid.UUID, questionIds []uuid.UUID) []*model.SessionQuestionRef {
	refs := make([]*model.SessionQuestionRef, len(questionIds))
	for i, qid := range questionIds {
		refs[i] = &model.SessionQuestionRef{
			SessionId:  sessionId,
			QuestionId: qid,
		}
	}
	return refs
}
