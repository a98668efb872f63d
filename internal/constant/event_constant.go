package constant

const (
	EventSessionCreated        = "SESSION_CREATED"
	EventSessionQuestionsAdded = "SESSION_QUESTIONS_ADDED"
	EventSessionPartial        = "SESSION_PARTIAL_CREATION"
	EventSessionDeleted        = "SESSION_DELETED"
	EventSessionReconciled     = "SESSION_RECONCILED"
	EventQuestionPinned        = "QUESTION_PINNED"
	EventQuestionUnpinned      = "QUESTION_UNPINNED"
)
