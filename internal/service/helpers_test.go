package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"interview-prep-be/internal/entity"
	"interview-prep-be/internal/model"
	"interview-prep-be/internal/pkg/apperror"
	"interview-prep-be/internal/pkg/logger"
	"interview-prep-be/internal/repository/contract"
	"interview-prep-be/internal/repository/unitofwork"
	"interview-prep-be/pkg/database"
	"interview-prep-be/pkg/events"
	"interview-prep-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewGormDB(database.GormConfig{
		Driver:   database.DriverSQLite,
		DSN:      dsn,
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// recordingPublisher keeps every published event type.
type recordingPublisher struct {
	mu    sync.Mutex
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, event.EventType())
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.types...)
}

type fixture struct {
	db        *gorm.DB
	factory   unitofwork.RepositoryFactory
	publisher *recordingPublisher
	sessions  *sessionService
	questions IQuestionService
	reconcile IReconcileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	return newFixtureWithFactory(t, db, unitofwork.NewRepositoryFactory(db), 8)
}

func newFixtureWithFactory(t *testing.T, db *gorm.DB, factory unitofwork.RepositoryFactory, concurrency int) *fixture {
	t.Helper()
	pub := &recordingPublisher{}
	log := logger.NewNopLogger()
	return &fixture{
		db:        db,
		factory:   factory,
		publisher: pub,
		sessions:  NewSessionService(factory, SessionServiceConfig{FanOutConcurrency: concurrency}, pub, log).(*sessionService),
		questions: NewQuestionService(factory, pub, log),
		reconcile: NewReconcileService(factory, pub, log),
	}
}

// rawQuestion inserts a question row directly, bypassing the services.
func rawQuestion(t *testing.T, db *gorm.DB, sessionId uuid.UUID, text string) uuid.UUID {
	t.Helper()
	repo := unitofwork.NewUnitOfWork(db).QuestionRepository()
	q := &entity.Question{Id: uuid.New(), SessionId: sessionId, Question: text, Answer: "a"}
	require.NoError(t, repo.Create(context.Background(), q))
	return q.Id
}

var errInjected = errors.New("injected failure")

// faultyFactory wraps a real factory and fails chosen repository calls.
type faultyFactory struct {
	inner        unitofwork.RepositoryFactory
	failCreateAt int32 // 1-based question create that fails, 0 never
	failAppend   bool
	creates      atomic.Int32
}

func (f *faultyFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &faultyUnitOfWork{UnitOfWork: f.inner.NewUnitOfWork(ctx), f: f}
}

type faultyUnitOfWork struct {
	unitofwork.UnitOfWork
	f *faultyFactory
}

func (u *faultyUnitOfWork) QuestionRepository() contract.QuestionRepository {
	return &faultyQuestionRepository{QuestionRepository: u.UnitOfWork.QuestionRepository(), f: u.f}
}

func (u *faultyUnitOfWork) SessionRepository() contract.SessionRepository {
	return &faultySessionRepository{SessionRepository: u.UnitOfWork.SessionRepository(), f: u.f}
}

type faultyQuestionRepository struct {
	contract.QuestionRepository
	f *faultyFactory
}

func (r *faultyQuestionRepository) Create(ctx context.Context, q *entity.Question) error {
	if n := r.f.creates.Add(1); n == r.f.failCreateAt {
		return apperror.Persistence("create question", errInjected)
	}
	return r.QuestionRepository.Create(ctx, q)
}

type faultySessionRepository struct {
	contract.SessionRepository
	f *faultyFactory
}

func (r *faultySessionRepository) AppendQuestionRefs(ctx context.Context, sessionId uuid.UUID, ids []uuid.UUID) error {
	if r.f.failAppend {
		return apperror.Persistence("append session refs", errInjected)
	}
	return r.SessionRepository.AppendQuestionRefs(ctx, sessionId, ids)
}

// fakeProvider returns a canned response and records prompts.
type fakeProvider struct {
	mu       sync.Mutex
	response string
	err      error
	block    bool
	prompts  []string
}

var _ llm.LLMProvider = &fakeProvider{}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	return p.Generate(ctx, history[len(history)-1].Content)
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, _ ...llm.Option) (string, error) {
	p.mu.Lock()
	p.prompts = append(p.prompts, prompt)
	p.mu.Unlock()

	if p.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return p.response, p.err
}

func (p *fakeProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.prompts)
}
