package dto

import "github.com/google/uuid"

type UpdateNoteRequest struct {
	Id   uuid.UUID
	Note string `json:"note" validate:"cleantext,max=10000"`
}
