package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/testhelpers"
)

func TestFavorites(t *testing.T) {
	e := newEnv(t)
	svc := NewFavoriteService(e.db)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, e.db)
	food := testhelpers.CreateFood(t, e.db, models.FoodItem{Name: "Pasta"}, testhelpers.Entry(ike, "Lunch", today))

	fav, err := svc.AddFavorite(ctx, user.ID, food.ID)
	require.NoError(t, err)
	require.NotNil(t, fav.Food)
	assert.Equal(t, "Pasta", fav.Food.Name)

	again, err := svc.AddFavorite(ctx, user.ID, food.ID)
	require.NoError(t, err)
	assert.Equal(t, fav.ID, again.ID)

	favs, err := svc.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	require.NotNil(t, favs[0].Food)
	assert.Len(t, favs[0].Food.MealEntries, 1)

	require.NoError(t, svc.RemoveFavorite(ctx, user.ID, food.ID))
	require.NoError(t, svc.RemoveFavorite(ctx, user.ID, food.ID))
	favs, err = svc.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, favs)

	_, err = svc.AddFavorite(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrFoodNotFound)
}
