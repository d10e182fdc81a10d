package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwarner/tagboard/internal/domain"
	"github.com/mwarner/tagboard/internal/repo"
	"github.com/mwarner/tagboard/internal/service"
)

// ---- mock TagRepo ----------------------------------------------------------

type mockTagRepo struct {
	listByTeam func(ctx context.Context, teamID uuid.UUID) ([]domain.Tag, error)
	create     func(ctx context.Context, tag domain.Tag) (domain.Tag, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Tag, error)
	update     func(ctx context.Context, id uuid.UUID, name, color *string) (domain.Tag, bool, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTagRepo) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Tag, error) {
	return m.listByTeam(ctx, teamID)
}
func (m *mockTagRepo) Create(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	return m.create(ctx, tag)
}
func (m *mockTagRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Tag, error) {
	return m.getByID(ctx, id)
}
func (m *mockTagRepo) Update(ctx context.Context, id uuid.UUID, name, color *string) (domain.Tag, bool, error) {
	return m.update(ctx, id, name, color)
}
func (m *mockTagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check
var _ repo.TagRepo = (*mockTagRepo)(nil)

// ---- List ------------------------------------------------------------------

func TestTagService_List_NilBecomesEmptySlice(t *testing.T) {
	svc := service.NewTagService(&mockTagRepo{
		listByTeam: func(_ context.Context, _ uuid.UUID) ([]domain.Tag, error) {
			return nil, nil
		},
	})

	tags, err := svc.List(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

// ---- Create ----------------------------------------------------------------

func TestTagService_Create_OK(t *testing.T) {
	teamID := uuid.New()
	var captured domain.Tag
	svc := service.NewTagService(&mockTagRepo{
		create: func(_ context.Context, tag domain.Tag) (domain.Tag, error) {
			captured = tag
			return tag, nil
		},
	})

	got, err := svc.Create(context.Background(), teamID, "  Design ", "🎨")

	require.NoError(t, err)
	assert.Equal(t, "Design", got.Name, "name should be trimmed")
	assert.Equal(t, teamID, captured.TeamID)
	assert.NotEqual(t, uuid.Nil, captured.ID)
}

func TestTagService_Create_MissingName(t *testing.T) {
	svc := service.NewTagService(&mockTagRepo{})

	_, err := svc.Create(context.Background(), uuid.New(), " ", "🎨")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTagService_Create_MissingColor(t *testing.T) {
	svc := service.NewTagService(&mockTagRepo{})

	_, err := svc.Create(context.Background(), uuid.New(), "Design", "")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTagService_Create_DuplicateName(t *testing.T) {
	svc := service.NewTagService(&mockTagRepo{
		create: func(_ context.Context, _ domain.Tag) (domain.Tag, error) {
			return domain.Tag{}, domain.ErrConflict
		},
	})

	_, err := svc.Create(context.Background(), uuid.New(), "Urgent", "🔥")

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTagService_Create_TruncatesName(t *testing.T) {
	var captured domain.Tag
	svc := service.NewTagService(&mockTagRepo{
		create: func(_ context.Context, tag domain.Tag) (domain.Tag, error) {
			captured = tag
			return tag, nil
		},
	})

	_, err := svc.Create(context.Background(), uuid.New(), strings.Repeat("n", 80), "🎨")

	require.NoError(t, err)
	assert.Len(t, captured.Name, domain.MaxTagNameLen)
}

// ---- Update ----------------------------------------------------------------

func TestTagService_Update_PartialNameOnly(t *testing.T) {
	var gotName, gotColor *string
	svc := service.NewTagService(&mockTagRepo{
		update: func(_ context.Context, _ uuid.UUID, name, color *string) (domain.Tag, bool, error) {
			gotName, gotColor = name, color
			return domain.Tag{Name: *name}, true, nil
		},
	})

	_, found, err := svc.Update(context.Background(), uuid.New(), "Renamed", "")

	require.NoError(t, err)
	assert.True(t, found)
	require.NotNil(t, gotName)
	assert.Equal(t, "Renamed", *gotName)
	assert.Nil(t, gotColor, "empty color must leave the column unchanged")
}

func TestTagService_Update_WhitespaceFieldTreatedAsAbsent(t *testing.T) {
	var gotName *string
	svc := service.NewTagService(&mockTagRepo{
		update: func(_ context.Context, _ uuid.UUID, name, _ *string) (domain.Tag, bool, error) {
			gotName = name
			return domain.Tag{}, true, nil
		},
	})

	_, _, err := svc.Update(context.Background(), uuid.New(), "   ", "🎨")

	require.NoError(t, err)
	assert.Nil(t, gotName)
}

func TestTagService_Update_MissingTagSucceedsSilently(t *testing.T) {
	svc := service.NewTagService(&mockTagRepo{
		update: func(_ context.Context, _ uuid.UUID, _, _ *string) (domain.Tag, bool, error) {
			return domain.Tag{}, false, nil
		},
	})

	tag, found, err := svc.Update(context.Background(), uuid.New(), "Renamed", "")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, domain.Tag{}, tag)
}

// ---- Delete ----------------------------------------------------------------

func TestTagService_Delete_OK(t *testing.T) {
	tagID := uuid.New()
	deleted := false
	svc := service.NewTagService(&mockTagRepo{
		delete: func(_ context.Context, id uuid.UUID) error {
			assert.Equal(t, tagID, id)
			deleted = true
			return nil
		},
	})

	require.NoError(t, svc.Delete(context.Background(), tagID))
	assert.True(t, deleted)
}
