package service

import (
	"context"
	"sort"

	"interview-prep-be/internal/constant"
	"interview-prep-be/internal/dto"
	"interview-prep-be/internal/entity"
	"interview-prep-be/internal/pkg/logger"
	"interview-prep-be/internal/repository/specification"
	"interview-prep-be/internal/repository/unitofwork"
	"interview-prep-be/pkg/events"

	"github.com/google/uuid"
)

// IReconcileService repairs sessions left inconsistent by a partial creation.
type IReconcileService interface {
	ReconcileSession(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ReconcileSessionResponse, error)
	// ReconcileAll scans every session, or only those of userId when it is set.
	// Orphaned questions and reference rows are deleted only on a full scan.
	ReconcileAll(ctx context.Context, userId *uuid.UUID) (*dto.ReconcileReport, error)
	FindOrphanedQuestions(ctx context.Context) ([]uuid.UUID, error)
}

type reconcileService struct {
	uowFactory unitofwork.RepositoryFactory
	events     eventEmitter
	logger     logger.ILogger
}

func NewReconcileService(
	uowFactory unitofwork.RepositoryFactory,
	publisher events.Publisher,
	log logger.ILogger,
) IReconcileService {
	return &reconcileService{
		uowFactory: uowFactory,
		events:     newEventEmitter(publisher, log),
		logger:     log,
	}
}

func (s *reconcileService) ReconcileSession(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ReconcileSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := findOwnedSession(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, uow, session)
}

func (s *reconcileService) ReconcileAll(ctx context.Context, userId *uuid.UUID) (*dto.ReconcileReport, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OrderBy{Field: "created_at"}}
	if userId != nil {
		specs = append(specs, specification.UserOwnedBy{UserID: *userId})
	}
	sessions, err := uow.SessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	report := &dto.ReconcileReport{
		Sessions: []*dto.ReconcileSessionResponse{},
	}
	for _, session := range sessions {
		res, err := s.reconcile(ctx, uow, session)
		if err != nil {
			return report, err
		}
		report.SessionsScanned++
		if res.Repaired() {
			report.SessionsRepaired++
			report.Sessions = append(report.Sessions, res)
		}
	}

	if userId == nil {
		orphans, err := s.FindOrphanedQuestions(ctx)
		if err != nil {
			return report, err
		}
		deleted, err := uow.QuestionRepository().DeleteByIds(ctx, orphans)
		if err != nil {
			return report, err
		}
		report.OrphanedQuestionsDeleted = deleted

		refs, err := uow.SessionRepository().DeleteOrphanedQuestionRefs(ctx)
		if err != nil {
			return report, err
		}
		report.OrphanedRefsDeleted = refs
	}

	s.logger.Info("RECONCILE", "Reconciliation finished", map[string]interface{}{
		"scanned":         report.SessionsScanned,
		"repaired":        report.SessionsRepaired,
		"orphans_deleted": report.OrphanedQuestionsDeleted,
		"refs_deleted":    report.OrphanedRefsDeleted,
	})
	return report, nil
}

// FindOrphanedQuestions lists questions whose session no longer exists.
func (s *reconcileService) FindOrphanedQuestions(ctx context.Context) ([]uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	orphans, err := uow.QuestionRepository().FindAll(ctx,
		specification.SessionMissing{},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(orphans))
	for i, q := range orphans {
		ids[i] = q.Id
	}
	return ids, nil
}

// reconcile drops references that do not resolve to a question of this session
// and appends questions of this session that are missing from the list, oldest first.
func (s *reconcileService) reconcile(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.Session) (*dto.ReconcileSessionResponse, error) {
	owned, err := uow.QuestionRepository().FindAll(ctx, specification.BySessionID{SessionID: session.Id})
	if err != nil {
		return nil, err
	}

	ownedIds := indexQuestions(owned)
	referenced := make(map[uuid.UUID]struct{}, len(session.QuestionIds))

	res := &dto.ReconcileSessionResponse{
		SessionId:           session.Id,
		AttachedQuestionIds: []uuid.UUID{},
		DroppedReferenceIds: []uuid.UUID{},
	}

	for _, id := range session.QuestionIds {
		referenced[id] = struct{}{}
		if _, ok := ownedIds[id]; !ok {
			res.DroppedReferenceIds = append(res.DroppedReferenceIds, id)
		}
	}

	missing := make([]*entity.Question, 0)
	for _, q := range owned {
		if _, ok := referenced[q.Id]; !ok {
			missing = append(missing, q)
		}
	}
	sort.SliceStable(missing, func(i, j int) bool {
		return missing[i].CreatedAt.Before(missing[j].CreatedAt)
	})
	for _, q := range missing {
		res.AttachedQuestionIds = append(res.AttachedQuestionIds, q.Id)
	}

	if err := uow.SessionRepository().RemoveQuestionRefs(ctx, session.Id, res.DroppedReferenceIds); err != nil {
		return nil, err
	}
	if err := uow.SessionRepository().AppendQuestionRefs(ctx, session.Id, res.AttachedQuestionIds); err != nil {
		return nil, err
	}

	if res.Repaired() {
		s.logger.Warn("RECONCILE", "Session repaired", map[string]interface{}{
			"session_id": session.Id,
			"attached":   res.AttachedQuestionIds,
			"dropped":    res.DroppedReferenceIds,
		})
		s.events.emit(ctx, constant.EventSessionReconciled, map[string]interface{}{
			"session_id": session.Id,
			"attached":   len(res.AttachedQuestionIds),
			"dropped":    len(res.DroppedReferenceIds),
		})
	}
	return res, nil
}
