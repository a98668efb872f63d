package service

import (
	"context"
	"time"

	"interview-prep-be/internal/dto"
	"interview-prep-be/internal/entity"
	"interview-prep-be/internal/repository/contract"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultFanOutConcurrency = 8

// questionFanOut writes a batch of questions as independent concurrent inserts.
type questionFanOut struct {
	concurrency int
	now         func() time.Time
}

func newQuestionFanOut(concurrency int) *questionFanOut {
	if concurrency <= 0 {
		concurrency = defaultFanOutConcurrency
	}
	return &questionFanOut{concurrency: concurrency, now: time.Now}
}

// create writes one question per pair owned by sessionId. It returns the ids
// that were written, in input order, even when it also returns an error.
//
// Creation times are base+i microseconds so that the ordering rule sees the
// input order regardless of which insert lands first.
func (f *questionFanOut) create(
	ctx context.Context,
	repo contract.QuestionRepository,
	sessionId uuid.UUID,
	pairs []dto.QuestionPair,
) ([]uuid.UUID, error) {
	if len(pairs) == 0 {
		return []uuid.UUID{}, nil
	}

	base := f.now().UTC().Truncate(time.Microsecond)
	ids := make([]uuid.UUID, len(pairs))
	written := make([]bool, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	for i, pair := range pairs {
		ids[i] = uuid.New()
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			q := &entity.Question{
				Id:        ids[i],
				SessionId: sessionId,
				Question:  pair.Question,
				Answer:    pair.Answer,
				IsPinned:  false,
				Note:      "",
				CreatedAt: base.Add(time.Duration(i) * time.Microsecond),
			}
			if err := repo.Create(gctx, q); err != nil {
				return err
			}
			written[i] = true
			return nil
		})
	}

	err := g.Wait()

	created := make([]uuid.UUID, 0, len(pairs))
	for i, ok := range written {
		if ok {
			created = append(created, ids[i])
		}
	}
	return created, err
}
