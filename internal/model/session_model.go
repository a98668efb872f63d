package model

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Role          string    `gorm:"type:varchar(255);not null"`
	Experience    string    `gorm:"type:varchar(100);not null"`
	TopicsToFocus string    `gorm:"type:text;not null"`
	Description   string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Session) TableName() string {
	return "interview_sessions"
}

// SessionQuestionRef is one entry of a session's ordered reference list.
// Seq gives the list order; appends are plain inserts.
type SessionQuestionRef struct {
	Seq        uint64    `gorm:"primaryKey;autoIncrement"`
	SessionId  uuid.UUID `gorm:"type:uuid;not null;index"`
	QuestionId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (SessionQuestionRef) TableName() string {
	return "session_question_refs"
}
