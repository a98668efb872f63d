package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type BySessionIDs struct {
	SessionIDs []uuid.UUID
}

func (s BySessionIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id IN ?", s.SessionIDs)
}

// SessionMissing matches questions whose owning session row no longer exists.
type SessionMissing struct{}

func (s SessionMissing) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("NOT EXISTS (SELECT 1 FROM interview_sessions s WHERE s.id = questions.session_id)")
}
