package unitofwork

import (
	"context"

	"interview-prep-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	QuestionRepository() contract.QuestionRepository
}
