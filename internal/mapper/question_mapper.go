package mapper

import (
	"time"

	"interview-prep-be/internal/entity"
	"interview-prep-be/internal/model"
)

type QuestionMapper struct{}

func NewQuestionMapper() *QuestionMapper {
	return &QuestionMapper{}
}

func (m *QuestionMapper) ToEntity(q *model.Question) *entity.Question {
	if q == nil {
		return nil
	}

	var updatedAt *time.Time
	if !q.UpdatedAt.IsZero() {
		t := q.UpdatedAt
		updatedAt = &t
	}

	return &entity.Question{
		Id:        q.Id,
		SessionId: q.SessionId,
		Question:  q.Question,
		Answer:    q.Answer,
		IsPinned:  q.IsPinned,
		Note:      q.Note,
		CreatedAt: q.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *QuestionMapper) ToModel(q *entity.Question) *model.Question {
	if q == nil {
		return nil
	}

	var updatedAt time.Time
	if q.UpdatedAt != nil {
		updatedAt = *q.UpdatedAt
	}

	return &model.Question{
		Id:        q.Id,
		SessionId: q.SessionId,
		Question:  q.Question,
		Answer:    q.Answer,
		IsPinned:  q.IsPinned,
		Note:      q.Note,
		CreatedAt: q.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *QuestionMapper) ToEntities(questions []*model.Question) []*entity.Question {
	entities := make([]*entity.Question, len(questions))
	for i, q := range questions {
		entities[i] = m.ToEntity(q)
	}
	return entities
}
