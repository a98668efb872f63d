package dto

import "github.com/google/uuid"

type GenerateQuestionsRequest struct {
	Role              string `json:"role" validate:"notblank,cleantext"`
	Experience        string `json:"experience" validate:"notblank,cleantext"`
	TopicsToFocus     string `json:"topics_to_focus" validate:"notblank,cleantext"`
	NumberOfQuestions int    `json:"number_of_questions" validate:"required,min=1,max=50"`
}

type GenerateExplanationRequest struct {
	Question string `json:"question" validate:"notblank,cleantext"`
}

type ExplanationResponse struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

// GenerateForSessionRequest asks for more questions using the session's own
// role, experience and topics. Zero NumberOfQuestions means the configured default.
type GenerateForSessionRequest struct {
	SessionId         uuid.UUID
	NumberOfQuestions int `json:"number_of_questions" validate:"omitempty,min=1,max=50"`
}
