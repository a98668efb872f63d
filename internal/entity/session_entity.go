package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is an interview preparation record. QuestionIds is the ordered
// reference list; every id must resolve to a Question whose SessionId is Id.
type Session struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Role          string
	Experience    string
	TopicsToFocus string
	Description   string
	QuestionIds   []uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
