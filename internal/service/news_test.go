package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marco21c/backend-noticias/internal/domain/news"
	"github.com/Marco21c/backend-noticias/internal/domain/user"
	"github.com/Marco21c/backend-noticias/internal/utils"
)

func validNewsRequest(categoryID string) news.CreateNewsRequest {
	return news.CreateNewsRequest{
		Title:      "Local team wins",
		Slug:       "Local Team Wins",
		Summary:    "A short summary of the match",
		Content:    "<p>The local team won the final.</p><script>alert(1)</script>",
		Highlights: []string{"final", "victory"},
		CategoryID: categoryID,
	}
}

func TestNewsService_CreateForcesDraft(t *testing.T) {
	f := newFixture(t)
	editor := f.createUser(t, "editor@example.com", user.RoleEditor)
	sports := f.createCategory(t, "Sports")

	n, err := f.newsSvc.Create(context.Background(), editor.ID, validNewsRequest(sports.ID))
	require.NoError(t, err)

	assert.Equal(t, news.StatusDraft, n.Status)
	assert.Nil(t, n.PublicationDate)
	assert.Equal(t, editor.ID, n.AuthorID)
	assert.Equal(t, "local-team-wins", n.Slug)
	assert.Equal(t, news.VariantDefault, n.Variant)
	assert.Equal(t, []string{"final", "victory"}, n.Highlights)
	assert.NotContains(t, n.Content, "<script>")
}

func TestNewsService_CreateSlugRules(t *testing.T) {
	f := newFixture(t)
	editor := f.createUser(t, "editor@example.com", user.RoleEditor)
	sports := f.createCategory(t, "Sports")

	_, err := f.newsSvc.Create(context.Background(), editor.ID, validNewsRequest(sports.ID))
	require.NoError(t, err)

	dup := validNewsRequest(sports.ID)
	dup.Slug = "local-team-WINS"
	_, err = f.newsSvc.Create(context.Background(), editor.ID, dup)
	assert.ErrorIs(t, err, news.ErrSlugDuplicate)

	short := validNewsRequest(sports.ID)
	short.Slug = "¡¡a!!"
	_, err = f.newsSvc.Create(context.Background(), editor.ID, short)
	assert.ErrorIs(t, err, news.ErrInvalidSlug)
}

func TestNewsService_CreateUnknownCategory(t *testing.T) {
	f := newFixture(t)
	editor := f.createUser(t, "editor@example.com", user.RoleEditor)

	_, err := f.newsSvc.Create(context.Background(), editor.ID, validNewsRequest(utils.NewID()))
	assert.ErrorIs(t, err, news.ErrUnknownCategory)
}

func TestNewsService_ListFilters(t *testing.T) {
	f := newFixture(t)
	editor := f.createUser(t, "editor@example.com", user.RoleEditor)
	sports := f.createCategory(t, "Sports")

	created, err := f.newsSvc.Create(context.Background(), editor.ID, validNewsRequest(sports.ID))
	require.NoError(t, err)

	all, err := f.newsSvc.List(context.Background(), news.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	byAuthor, err := f.newsSvc.List(context.Background(), news.ListFilter{AuthorID: ptr(editor.ID)})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, created.ID, byAuthor[0].ID)

	malformed, err := f.newsSvc.List(context.Background(), news.ListFilter{AuthorID: ptr("not-an-id")})
	require.NoError(t, err)
	assert.Empty(t, malformed)

	published, err := f.newsSvc.List(context.Background(), news.ListFilter{Status: ptr(news.StatusPublished)})
	require.NoError(t, err)
	assert.Empty(t, published)
}

func TestNewsService_ListByCategory(t *testing.T) {
	f := newFixture(t)
	editor := f.createUser(t, "editor@example.com", user.RoleEditor)
	sports := f.createCategory(t, "Sports")
	politics := f.createCategory(t, "Politics")

	_, err := f.newsSvc.Create(context.Background(), editor.ID, validNewsRequest(sports.ID))
	require.NoError(t, err)

	items, err := f.newsSvc.ListByCategory(context.Background(), sports.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = f.newsSvc.ListByCategory(context.Background(), politics.ID)
	assert.ErrorIs(t, err, news.ErrNotFound)

	_, err = f.newsSvc.ListByCategory(context.Background(), "garbage")
	assert.ErrorIs(t, err, news.ErrNotFound)
}

func TestNewsService_UpdatePublishStampsDate(t *testing.T) {
	f := newFixture(t)
	editor := f.createUser(t, "editor@example.com", user.RoleEditor)
	sports := f.createCategory(t, "Sports")

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.newsSvc.now = func() time.Time { return fixed }

	n, err := f.newsSvc.Create(context.Background(), editor.ID, validNewsRequest(sports.ID))
	require.NoError(t, err)

	// transitions are not restricted
	rejected, err := f.newsSvc.Update(context.Background(), n.ID, news.UpdateNewsRequest{Status: ptr(news.StatusRejected)})
	require.NoError(t, err)
	assert.Equal(t, news.StatusRejected, rejected.Status)
	assert.Nil(t, rejected.PublicationDate)

	published, err := f.newsSvc.Update(context.Background(), n.ID, news.UpdateNewsRequest{Status: ptr(news.StatusPublished)})
	require.NoError(t, err)
	require.NotNil(t, published.PublicationDate)
	assert.True(t, fixed.Equal(*published.PublicationDate))

	f.newsSvc.now = func() time.Time { return fixed.Add(time.Hour) }
	again, err := f.newsSvc.Update(context.Background(), n.ID, news.UpdateNewsRequest{Status: ptr(news.StatusPublished)})
	require.NoError(t, err)
	assert.True(t, fixed.Equal(*again.PublicationDate))
}

func TestNewsService_UpdatePartial(t *testing.T) {
	f := newFixture(t)
	editor := f.createUser(t, "editor@example.com", user.RoleEditor)
	sports := f.createCategory(t, "Sports")

	n, err := f.newsSvc.Create(context.Background(), editor.ID, validNewsRequest(sports.ID))
	require.NoError(t, err)

	updated, err := f.newsSvc.Update(context.Background(), n.ID, news.UpdateNewsRequest{
		Title: ptr("Local team wins again"),
		Slug:  ptr("local-team-wins"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Local team wins again", updated.Title)
	assert.Equal(t, n.Summary, updated.Summary)
	assert.Equal(t, n.Slug, updated.Slug)

	_, err = f.newsSvc.Update(context.Background(), n.ID, news.UpdateNewsRequest{CategoryID: ptr(utils.NewID())})
	assert.ErrorIs(t, err, news.ErrUnknownCategory)

	_, err = f.newsSvc.Update(context.Background(), utils.NewID(), news.UpdateNewsRequest{Title: ptr("Whatever")})
	assert.ErrorIs(t, err, news.ErrNotFound)
}
