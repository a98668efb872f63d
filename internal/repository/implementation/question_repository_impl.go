package implementation

import (
	"context"
	"errors"

	"interview-prep-be/internal/entity"
	"interview-prep-be/internal/mapper"
	"interview-prep-be/internal/model"
	"interview-prep-be/internal/pkg/apperror"
	"interview-prep-be/internal/repository/contract"
	"interview-prep-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuestionMapper
}

func NewQuestionRepository(db *gorm.DB) contract.QuestionRepository {
	return &QuestionRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuestionMapper(),
	}
}

func (r *QuestionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QuestionRepositoryImpl) Create(ctx context.Context, question *entity.Question) error {
	m := r.mapper.ToModel(question)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return wrapError("create question", err)
	}
	*question = *r.mapper.ToEntity(m)
	return nil
}

// UpdatePinned and UpdateNote write a single column so that pin and note
// edits never overwrite each other.
func (r *QuestionRepositoryImpl) UpdatePinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"is_pinned": pinned}, "update question pin")
}

func (r *QuestionRepositoryImpl) UpdateNote(ctx context.Context, id uuid.UUID, note string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"note": note}, "update question note")
}

func (r *QuestionRepositoryImpl) updateColumns(ctx context.Context, id uuid.UUID, values map[string]interface{}, op string) error {
	res := r.db.WithContext(ctx).Model(&model.Question{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return wrapError(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("question not found")
	}
	return nil
}

func (r *QuestionRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.Question{})
	return res.RowsAffected, wrapError("delete session questions", res.Error)
}

func (r *QuestionRepositoryImpl) DeleteByIds(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Question{})
	return res.RowsAffected, wrapError("delete questions", res.Error)
}

func (r *QuestionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Question, error) {
	var m model.Question
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapError("find question", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QuestionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error) {
	var models []*model.Question
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, wrapError("find questions", err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QuestionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Question{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, wrapError("count questions", err)
	}
	return count, nil
}
