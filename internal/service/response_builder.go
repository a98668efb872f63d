package service

import (
	"interview-prep-be/internal/dto"
	"interview-prep-be/internal/entity"

	"github.com/google/uuid"
)

func toQuestionResponse(q *entity.Question) *dto.QuestionResponse {
	return &dto.QuestionResponse{
		Id:        q.Id,
		SessionId: q.SessionId,
		Question:  q.Question,
		Answer:    q.Answer,
		IsPinned:  q.IsPinned,
		Note:      q.Note,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

// toSessionResponse expands the reference list with the given questions and
// applies the ordering rule. References without a matching question are skipped.
func toSessionResponse(s *entity.Session, byId map[uuid.UUID]*entity.Question) *dto.SessionResponse {
	questions := make([]*entity.Question, 0, len(s.QuestionIds))
	for _, id := range s.QuestionIds {
		if q, ok := byId[id]; ok && q.SessionId == s.Id {
			questions = append(questions, q)
		}
	}
	OrderQuestions(questions)

	res := make([]*dto.QuestionResponse, len(questions))
	for i, q := range questions {
		res[i] = toQuestionResponse(q)
	}

	return &dto.SessionResponse{
		Id:            s.Id,
		UserId:        s.UserId,
		Role:          s.Role,
		Experience:    s.Experience,
		TopicsToFocus: s.TopicsToFocus,
		Description:   s.Description,
		QuestionIds:   s.QuestionIds,
		Questions:     res,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func indexQuestions(questions []*entity.Question) map[uuid.UUID]*entity.Question {
	byId := make(map[uuid.UUID]*entity.Question, len(questions))
	for _, q := range questions {
		byId[q.Id] = q
	}
	return byId
}
