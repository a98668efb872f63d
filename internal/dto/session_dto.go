package dto

import (
	"time"

	"github.com/google/uuid"
)

// QuestionPair is a question/answer unit before it is persisted.
type QuestionPair struct {
	Question string `json:"question" validate:"notblank,cleantext"`
	Answer   string `json:"answer" validate:"notblank,cleantext"`
}

type CreateSessionRequest struct {
	Role          string         `json:"role" validate:"notblank,cleantext,max=255"`
	Experience    string         `json:"experience" validate:"notblank,cleantext,max=100"`
	TopicsToFocus string         `json:"topics_to_focus" validate:"notblank,cleantext"`
	Description   string         `json:"description" validate:"cleantext"`
	Questions     []QuestionPair `json:"questions" validate:"max=100,dive"`
}

type QuestionResponse struct {
	Id        uuid.UUID  `json:"id"`
	SessionId uuid.UUID  `json:"session_id"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	IsPinned  bool       `json:"is_pinned"`
	Note      string     `json:"note"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type SessionResponse struct {
	Id            uuid.UUID           `json:"id"`
	UserId        uuid.UUID           `json:"user_id"`
	Role          string              `json:"role"`
	Experience    string              `json:"experience"`
	TopicsToFocus string              `json:"topics_to_focus"`
	Description   string              `json:"description"`
	QuestionIds   []uuid.UUID         `json:"question_ids"`
	Questions     []*QuestionResponse `json:"questions"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     *time.Time          `json:"updated_at"`
}

type AddQuestionsRequest struct {
	SessionId uuid.UUID      `json:"session_id" validate:"required"`
	Questions []QuestionPair `json:"questions" validate:"required,min=1,max=100,dive"`
}

type ReconcileSessionResponse struct {
	SessionId           uuid.UUID   `json:"session_id"`
	AttachedQuestionIds []uuid.UUID `json:"attached_question_ids"`
	DroppedReferenceIds []uuid.UUID `json:"dropped_reference_ids"`
}

// Repaired reports whether the session needed any change.
func (r *ReconcileSessionResponse) Repaired() bool {
	return len(r.AttachedQuestionIds) > 0 || len(r.DroppedReferenceIds) > 0
}

type ReconcileReport struct {
	SessionsScanned          int                         `json:"sessions_scanned"`
	SessionsRepaired         int                         `json:"sessions_repaired"`
	Sessions                 []*ReconcileSessionResponse `json:"sessions"`
	OrphanedQuestionsDeleted int64                       `json:"orphaned_questions_deleted"`
	OrphanedRefsDeleted      int64                       `json:"orphaned_refs_deleted"`
}
