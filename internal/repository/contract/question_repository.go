package contract

import (
	"context"

	"interview-prep-be/internal/entity"
	"interview-prep-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	UpdatePinned(ctx context.Context, id uuid.UUID, pinned bool) error
	UpdateNote(ctx context.Context, id uuid.UUID, note string) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error)
	DeleteByIds(ctx context.Context, ids []uuid.UUID) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Question, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
