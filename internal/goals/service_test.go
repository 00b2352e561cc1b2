package goals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	owner   = Actor{ID: "user-owner", Email: "Owner@Example.com"}
	visitor = Actor{ID: "user-v", Email: "visitor@example.com"}
	guest   = Actor{ID: "guest:abc"}
)

func newService() *Service {
	clock := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	return &Service{
		Repo:       NewMemoryRepo(),
		AdminEmail: "owner@example.com",
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}
}

func TestIsOwnerCaseInsensitive(t *testing.T) {
	svc := newService()
	assert.True(t, svc.IsOwner(owner))
	assert.False(t, svc.IsOwner(visitor))
	assert.False(t, svc.IsOwner(guest))

	svc.AdminEmail = ""
	assert.False(t, svc.IsOwner(Actor{}))
}

func TestCreateCategoryOwnerOnly(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, visitor, "Career")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateCategory(ctx, owner, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	first, err := svc.CreateCategory(ctx, owner, "Career")
	require.NoError(t, err)
	second, err := svc.CreateCategory(ctx, owner, "Health")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Career", list[0].Category)
}

func TestDeleteTaskRenumbers(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	cat, err := svc.CreateCategory(ctx, owner, "Career")
	require.NoError(t, err)
	for _, text := range []string{"a", "b", "c", "d"} {
		cat, err = svc.AddTask(ctx, owner, cat.ID, text)
		require.NoError(t, err)
	}
	require.Len(t, cat.Tasks, 4)

	cat, err = svc.DeleteTask(ctx, owner, cat.ID, cat.Tasks[1].ID)
	require.NoError(t, err)
	require.Len(t, cat.Tasks, 3)
	assert.Equal(t, []int{0, 1, 2}, orders(cat.Tasks))
	assert.Equal(t, "a", cat.Tasks[0].Text)
	assert.Equal(t, "c", cat.Tasks[1].Text)
	assert.Equal(t, "d", cat.Tasks[2].Text)

	_, err = svc.DeleteTask(ctx, owner, cat.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleAndMoveTask(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	cat, _ := svc.CreateCategory(ctx, owner, "Career")
	cat, _ = svc.AddTask(ctx, owner, cat.ID, "a")
	cat, _ = svc.AddTask(ctx, owner, cat.ID, "b")

	_, err := svc.ToggleTask(ctx, visitor, cat.ID, cat.Tasks[0].ID)
	assert.ErrorIs(t, err, ErrForbidden)

	cat, err = svc.ToggleTask(ctx, owner, cat.ID, cat.Tasks[0].ID)
	require.NoError(t, err)
	assert.True(t, cat.Tasks[0].Completed)

	cat, err = svc.MoveTask(ctx, owner, cat.ID, cat.Tasks[0].ID, 10)
	require.NoError(t, err)
	assert.Equal(t, "b", cat.Tasks[0].Text)
	assert.Equal(t, "a", cat.Tasks[1].Text)
	assert.Equal(t, []int{0, 1}, orders(cat.Tasks))
}

func TestSuggestionFlow(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	cat, _ := svc.CreateCategory(ctx, owner, "Career")

	_, err := svc.Suggest(ctx, owner, cat.ID, "owner should not suggest")
	assert.ErrorIs(t, err, ErrForbidden)

	cat, err = svc.Suggest(ctx, visitor, cat.ID, "Learn Go")
	require.NoError(t, err)
	cat, err = svc.Suggest(ctx, guest, cat.ID, "Ship it")
	require.NoError(t, err)
	require.Len(t, cat.Suggestions, 2)
	assert.Equal(t, "visitor@example.com", cat.Suggestions[0].SuggestedBy)
	assert.Equal(t, "anonymous", cat.Suggestions[1].SuggestedBy)

	_, err = svc.ApproveSuggestion(ctx, visitor, cat.ID, cat.Suggestions[0].ID)
	assert.ErrorIs(t, err, ErrForbidden)

	cat, err = svc.ApproveSuggestion(ctx, owner, cat.ID, cat.Suggestions[0].ID)
	require.NoError(t, err)
	require.Len(t, cat.Tasks, 1)
	assert.Equal(t, "Learn Go", cat.Tasks[0].Text)
	assert.Equal(t, 0, cat.Tasks[0].Order)
	require.Len(t, cat.Suggestions, 1)

	cat, err = svc.DeleteSuggestion(ctx, owner, cat.ID, cat.Suggestions[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cat.Suggestions)
}

func TestReorderAndDeleteCategory(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	a, _ := svc.CreateCategory(ctx, owner, "A")
	b, _ := svc.CreateCategory(ctx, owner, "B")
	c, _ := svc.CreateCategory(ctx, owner, "C")

	_, err := svc.ReorderCategories(ctx, owner, []string{a.ID, b.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := svc.ReorderCategories(ctx, owner, []string{c.ID, a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, names(list))

	require.NoError(t, svc.DeleteCategory(ctx, owner, a.ID))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B"}, names(list))
	assert.Equal(t, 0, list[0].Order)
	assert.Equal(t, 1, list[1].Order)

	assert.ErrorIs(t, svc.DeleteCategory(ctx, owner, "missing"), ErrNotFound)
}

func names(list []Category) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Category
	}
	return out
}
