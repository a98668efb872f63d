package implementation

import (
	"context"
	"errors"
	"time"

	"interview-prep-be/internal/entity"
	"interview-prep-be/internal/mapper"
	"interview-prep-be/internal/model"
	"interview-prep-be/internal/repository/contract"
	"interview-prep-be/internal/repository/scope"
	"interview-prep-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *entity.Session) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return wrapError("create session", err)
	}
	*session = *r.mapper.ToEntity(m, nil)
	return nil
}

func (r *SessionRepositoryImpl) Touch(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", time.Now()).Error
	return wrapError("touch session", err)
}

// Delete removes the session row and its reference rows. Questions are not
// touched here; the caller deletes them first.
func (r *SessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("session_id = ?", id).Delete(&model.SessionQuestionRef{}).Error; err != nil {
		return wrapError("delete session refs", err)
	}
	return wrapError("delete session", db.Delete(&model.Session{}, "id = ?", id).Error)
}

func (r *SessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	var m model.Session
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapError("find session", err)
	}

	refs, err := r.FindQuestionRefs(ctx, m.Id)
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&m, refs), nil
}

func (r *SessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	var models []*model.Session
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, wrapError("find sessions", err)
	}
	if len(models) == 0 {
		return []*entity.Session{}, nil
	}

	ids := make([]uuid.UUID, len(models))
	for i, m := range models {
		ids[i] = m.Id
	}

	var refs []*model.SessionQuestionRef
	if err := r.db.WithContext(ctx).
		Scopes(scope.OrderBySeq).
		Where("session_id IN ?", ids).
		Find(&refs).Error; err != nil {
		return nil, wrapError("find session refs", err)
	}

	grouped := make(map[uuid.UUID][]uuid.UUID, len(models))
	for _, ref := range refs {
		grouped[ref.SessionId] = append(grouped[ref.SessionId], ref.QuestionId)
	}

	sessions := make([]*entity.Session, len(models))
	for i, m := range models {
		sessions[i] = r.mapper.ToEntity(m, grouped[m.Id])
	}
	return sessions, nil
}

func (r *SessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Session{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, wrapError("count sessions", err)
	}
	return count, nil
}

func (r *SessionRepositoryImpl) AppendQuestionRefs(ctx context.Context, sessionId uuid.UUID, questionIds []uuid.UUID) error {
	if len(questionIds) == 0 {
		return nil
	}
	refs := r.mapper.ToRefs(sessionId, questionIds)
	// one multi-row insert, seq follows row order
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "question_id"}}, DoNothing: true}).
		Create(&refs).Error
	return wrapError("append session refs", err)
}

func (r *SessionRepositoryImpl) RemoveQuestionRefs(ctx context.Context, sessionId uuid.UUID, questionIds []uuid.UUID) error {
	if len(questionIds) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND question_id IN ?", sessionId, questionIds).
		Delete(&model.SessionQuestionRef{}).Error
	return wrapError("remove session refs", err)
}

func (r *SessionRepositoryImpl) DeleteOrphanedQuestionRefs(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM interview_sessions s WHERE s.id = session_question_refs.session_id)").
		Delete(&model.SessionQuestionRef{})
	if res.Error != nil {
		return 0, wrapError("delete orphaned session refs", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *SessionRepositoryImpl) FindQuestionRefs(ctx context.Context, sessionId uuid.UUID) ([]uuid.UUID, error) {
	var refs []*model.SessionQuestionRef
	if err := r.db.WithContext(ctx).
		Scopes(scope.OrderBySeq).
		Where("session_id = ?", sessionId).
		Find(&refs).Error; err != nil {
		return nil, wrapError("find session refs", err)
	}

	ids := make([]uuid.UUID, len(refs))
	for i, ref := range refs {
		ids[i] = ref.QuestionId
	}
	return ids, nil
}
