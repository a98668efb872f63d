package service

import (
	"context"
	"testing"

	"interview-prep-be/internal/constant"
	"interview-prep-be/internal/dto"
	"interview-prep-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionService_TogglePin_SelfInverse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := f.sessions.Create(ctx, owner, createReq(pair("Q1")))
	require.NoError(t, err)
	original := created.Questions[0]

	_, err = f.questions.UpdateNote(ctx, owner, &dto.UpdateNoteRequest{Id: original.Id, Note: "remember this"})
	require.NoError(t, err)

	pinned, err := f.questions.TogglePin(ctx, owner, original.Id)
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)
	assert.Equal(t, "remember this", pinned.Note)

	restored, err := f.questions.TogglePin(ctx, owner, original.Id)
	require.NoError(t, err)
	assert.False(t, restored.IsPinned)
	assert.Equal(t, original.Question, restored.Question)
	assert.Equal(t, original.Answer, restored.Answer)
	assert.Equal(t, original.SessionId, restored.SessionId)
	assert.Equal(t, "remember this", restored.Note)
	assert.True(t, original.CreatedAt.Equal(restored.CreatedAt))

	assert.Contains(t, f.publisher.Types(), constant.EventQuestionPinned)
	assert.Contains(t, f.publisher.Types(), constant.EventQuestionUnpinned)
}

func TestQuestionService_TogglePin_DoesNotTouchSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := f.sessions.Create(ctx, owner, createReq(pair("Q1"), pair("Q2")))
	require.NoError(t, err)

	_, err = f.questions.TogglePin(ctx, owner, created.Questions[1].Id)
	require.NoError(t, err)

	shown, err := f.sessions.Show(ctx, owner, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created.QuestionIds, shown.QuestionIds)
	require.NotNil(t, created.UpdatedAt)
	require.NotNil(t, shown.UpdatedAt)
	assert.True(t, created.UpdatedAt.Equal(*shown.UpdatedAt))
}

func TestQuestionService_UpdateNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := f.sessions.Create(ctx, owner, createReq(pair("Q1")))
	require.NoError(t, err)
	id := created.Questions[0].Id

	res, err := f.questions.UpdateNote(ctx, owner, &dto.UpdateNoteRequest{Id: id, Note: "first"})
	require.NoError(t, err)
	assert.Equal(t, "first", res.Note)

	// omitted note clears it
	res, err = f.questions.UpdateNote(ctx, owner, &dto.UpdateNoteRequest{Id: id})
	require.NoError(t, err)
	assert.Equal(t, "", res.Note)
	assert.False(t, res.IsPinned)
}

func TestQuestionService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := f.sessions.Create(ctx, owner, createReq(pair("Q1")))
	require.NoError(t, err)
	id := created.Questions[0].Id

	_, err = f.questions.TogglePin(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.questions.UpdateNote(ctx, owner, &dto.UpdateNoteRequest{Id: uuid.New(), Note: "x"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.questions.TogglePin(ctx, uuid.New(), id)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.questions.Show(ctx, uuid.New(), id)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	// orphaned question reads as not found
	orphan := rawQuestion(t, f.db, uuid.New(), "orphan")
	_, err = f.questions.Show(ctx, owner, orphan)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
