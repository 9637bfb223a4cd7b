package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marco21c/backend-noticias/internal/domain/category"
	"github.com/Marco21c/backend-noticias/internal/utils"
)

func TestCategoryService_CreateDefaults(t *testing.T) {
	f := newFixture(t)

	c, err := f.categorySvc.Create(context.Background(), category.CreateCategoryRequest{Name: "  Sports  "})
	require.NoError(t, err)

	assert.Equal(t, "Sports", c.Name)
	assert.Equal(t, "", c.Description)
	assert.True(t, c.IsActive)
}

func TestCategoryService_DuplicateIgnoresCaseAndWhitespace(t *testing.T) {
	f := newFixture(t)
	f.createCategory(t, "Sports")

	_, err := f.categorySvc.Create(context.Background(), category.CreateCategoryRequest{Name: "sports "})
	assert.ErrorIs(t, err, category.ErrNameDuplicate)
}

func TestCategoryService_InvalidName(t *testing.T) {
	f := newFixture(t)

	_, err := f.categorySvc.Create(context.Background(), category.CreateCategoryRequest{Name: " a "})
	assert.ErrorIs(t, err, category.ErrInvalidName)
}

func TestCategoryService_UpdateMergesPresentFields(t *testing.T) {
	f := newFixture(t)
	c, err := f.categorySvc.Create(context.Background(), category.CreateCategoryRequest{Name: "Sports", Description: "all sports"})
	require.NoError(t, err)

	updated, err := f.categorySvc.Update(context.Background(), c.ID, category.UpdateCategoryRequest{IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Sports", updated.Name)
	assert.Equal(t, "all sports", updated.Description)
	assert.False(t, updated.IsActive)

	renamed, err := f.categorySvc.Update(context.Background(), c.ID, category.UpdateCategoryRequest{Name: ptr("SPORTS")})
	require.NoError(t, err)
	assert.Equal(t, "SPORTS", renamed.Name)
}

func TestCategoryService_UpdateToTakenName(t *testing.T) {
	f := newFixture(t)
	f.createCategory(t, "Sports")
	politics := f.createCategory(t, "Politics")

	_, err := f.categorySvc.Update(context.Background(), politics.ID, category.UpdateCategoryRequest{Name: ptr("sports")})
	assert.ErrorIs(t, err, category.ErrNameDuplicate)
}

func TestCategoryService_NotFound(t *testing.T) {
	f := newFixture(t)
	id := utils.NewID()

	_, err := f.categorySvc.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, category.ErrNotFound)

	_, err = f.categorySvc.Update(context.Background(), id, category.UpdateCategoryRequest{Description: ptr("x")})
	assert.ErrorIs(t, err, category.ErrNotFound)

	_, err = f.categorySvc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, category.ErrNotFound)
}
