package contract

import (
	"context"

	"interview-prep-be/internal/entity"
	"interview-prep-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionRepository interface {
	// Create writes the session shell only; QuestionIds is ignored.
	Create(ctx context.Context, session *entity.Session) error
	Touch(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// AppendQuestionRefs adds references at the end of the list. Ids already
	// referenced are skipped, so a repeated back-fill is a no-op.
	AppendQuestionRefs(ctx context.Context, sessionId uuid.UUID, questionIds []uuid.UUID) error
	RemoveQuestionRefs(ctx context.Context, sessionId uuid.UUID, questionIds []uuid.UUID) error
	FindQuestionRefs(ctx context.Context, sessionId uuid.UUID) ([]uuid.UUID, error)
	// DeleteOrphanedQuestionRefs removes reference rows whose session row is gone.
	DeleteOrphanedQuestionRefs(ctx context.Context) (int64, error)
}
