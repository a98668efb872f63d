package apperror

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	StageFanOut   = "fan_out"
	StageBackFill = "back_fill"
)

var ErrPartialCreation = &PartialCreationError{}

// PartialCreationError is returned when the session shell was written but the
// question fan-out or the reference back-fill failed afterwards. The session
// exists; callers should reconcile or augment it instead of creating it again.
type PartialCreationError struct {
	SessionId          uuid.UUID
	CreatedQuestionIds []uuid.UUID
	Stage              string
	Err                error
}

func (e *PartialCreationError) Error() string {
	return fmt.Sprintf("session %s partially created (%s, %d questions written): %v",
		e.SessionId, e.Stage, len(e.CreatedQuestionIds), e.Err)
}

func (e *PartialCreationError) Unwrap() error {
	return e.Err
}

func (e *PartialCreationError) Is(target error) bool {
	_, ok := target.(*PartialCreationError)
	return ok
}
