package entity

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Question  string
	Answer    string
	IsPinned  bool
	Note      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
