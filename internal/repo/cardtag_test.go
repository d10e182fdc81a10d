package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwarner/tagboard/internal/domain"
	"github.com/mwarner/tagboard/internal/idgen"
)

func TestCardTagRepo_AttachAndList(t *testing.T) {
	teams, tags, cardTags := newTestRepos(t)
	ctx := context.Background()

	team := mustCreateTeam(t, teams, "Engineering", "u1")
	design := mustCreateTag(t, tags, team.ID, "Design", "#aabbcc")
	review := mustCreateTag(t, tags, team.ID, "Needs Review", "#112233")

	for _, tag := range []domain.Tag{design, review} {
		err := cardTags.Attach(ctx, domain.CardTag{
			ID: idgen.NewID(), TeamID: team.ID, CardID: "card-1", TagID: tag.ID,
		})
		require.NoError(t, err)
	}
	err := cardTags.Attach(ctx, domain.CardTag{
		ID: idgen.NewID(), TeamID: team.ID, CardID: "card-2", TagID: design.ID,
	})
	require.NoError(t, err)

	got, err := cardTags.ListByTeam(ctx, team.ID)

	require.NoError(t, err)
	require.Len(t, got, 3)

	byCard := map[string][]domain.CardTagView{}
	for _, v := range got {
		byCard[v.CardID] = append(byCard[v.CardID], v)
	}
	require.Len(t, byCard["card-1"], 2)
	require.Len(t, byCard["card-2"], 1)
	assert.Equal(t, "Design", byCard["card-1"][0].TagName, "tags ordered by creation time within a card")
	assert.Equal(t, "Needs Review", byCard["card-1"][1].TagName)
	assert.Equal(t, "#aabbcc", byCard["card-2"][0].TagColor)
}

func TestCardTagRepo_Attach_Idempotent(t *testing.T) {
	teams, tags, cardTags := newTestRepos(t)
	ctx := context.Background()

	team := mustCreateTeam(t, teams, "Engineering", "u1")
	tag := mustCreateTag(t, tags, team.ID, "Design", "#aabbcc")

	for i := 0; i < 2; i++ {
		err := cardTags.Attach(ctx, domain.CardTag{
			ID: idgen.NewID(), TeamID: team.ID, CardID: "card-1", TagID: tag.ID,
		})
		require.NoError(t, err, "attach %d", i)
	}

	got, err := cardTags.ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1, "re-attaching the same tag must not duplicate the link")
}

func TestCardTagRepo_Detach(t *testing.T) {
	teams, tags, cardTags := newTestRepos(t)
	ctx := context.Background()

	team := mustCreateTeam(t, teams, "Engineering", "u1")
	tag := mustCreateTag(t, tags, team.ID, "Design", "#aabbcc")

	err := cardTags.Attach(ctx, domain.CardTag{
		ID: idgen.NewID(), TeamID: team.ID, CardID: "card-1", TagID: tag.ID,
	})
	require.NoError(t, err)

	require.NoError(t, cardTags.Detach(ctx, team.ID, "card-1", tag.ID))

	got, err := cardTags.ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Detaching a link that no longer exists is still a success.
	assert.NoError(t, cardTags.Detach(ctx, team.ID, "card-1", tag.ID))
}

func TestCardTagRepo_ListByTeam_ScopedToTeam(t *testing.T) {
	teams, tags, cardTags := newTestRepos(t)
	ctx := context.Background()

	a := mustCreateTeam(t, teams, "A", "u1")
	b := mustCreateTeam(t, teams, "B", "u2")
	tagA := mustCreateTag(t, tags, a.ID, "Design", "#aabbcc")

	err := cardTags.Attach(ctx, domain.CardTag{
		ID: idgen.NewID(), TeamID: a.ID, CardID: "card-1", TagID: tagA.ID,
	})
	require.NoError(t, err)

	got, err := cardTags.ListByTeam(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, got, "another team's links must not leak")
}
