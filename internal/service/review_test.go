package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/testhelpers"
	"github.com/illineats/backend/internal/types"
)

func newReviewService(e *env) *ReviewService {
	s := NewReviewService(e.db, e.schedule)
	s.SetClock(e.clock)
	return s
}

func TestCreateReviewOncePerDay(t *testing.T) {
	e := newEnv(t)
	svc := newReviewService(e)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, e.db)
	food := testhelpers.CreateFood(t, e.db, models.FoodItem{Name: "Pasta"})

	review, err := svc.CreateReview(ctx, user.ID, &types.CreateReviewRequest{FoodID: food.ID, Rating: "GOOD", Text: " tasty "})
	require.NoError(t, err)
	assert.Equal(t, models.RatingGood, review.Rating)
	assert.Equal(t, "tasty", review.Text)
	assert.Equal(t, "2024-10-07", review.ReviewDay)

	_, err = svc.CreateReview(ctx, user.ID, &types.CreateReviewRequest{FoodID: food.ID, Rating: "bad"})
	assert.ErrorIs(t, err, ErrDuplicateReview)

	svc.SetClock(func() time.Time { return e.now.Add(24 * time.Hour) })
	_, err = svc.CreateReview(ctx, user.ID, &types.CreateReviewRequest{FoodID: food.ID, Rating: "bad"})
	assert.NoError(t, err)
}

func TestCreateReviewUsesScheduleZoneForDay(t *testing.T) {
	e := newEnv(t)
	svc := newReviewService(e)
	user := testhelpers.CreateUser(t, e.db)
	food := testhelpers.CreateFood(t, e.db, models.FoodItem{Name: "Pasta"})

	// 23:30 in Chicago is already the next day in UTC
	late := time.Date(2024, time.October, 7, 23, 30, 0, 0, e.schedule.Location())
	svc.SetClock(func() time.Time { return late.UTC() })

	review, err := svc.CreateReview(context.Background(), user.ID, &types.CreateReviewRequest{FoodID: food.ID, Rating: "mid"})
	require.NoError(t, err)
	assert.Equal(t, "2024-10-07", review.ReviewDay)
}

func TestCreateReviewValidates(t *testing.T) {
	e := newEnv(t)
	svc := newReviewService(e)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, e.db)
	food := testhelpers.CreateFood(t, e.db, models.FoodItem{Name: "Pasta"})

	_, err := svc.CreateReview(ctx, user.ID, &types.CreateReviewRequest{FoodID: food.ID, Rating: "great"})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.CreateReview(ctx, user.ID, &types.CreateReviewRequest{FoodID: uuid.New(), Rating: "good"})
	assert.ErrorIs(t, err, ErrFoodNotFound)

	_, err = svc.CreateReview(ctx, uuid.New(), &types.CreateReviewRequest{FoodID: food.ID, Rating: "good"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListReviews(t *testing.T) {
	e := newEnv(t)
	svc := newReviewService(e)
	ctx := context.Background()
	alice := testhelpers.CreateUser(t, e.db)
	bob := testhelpers.CreateUser(t, e.db)
	pasta := testhelpers.CreateFood(t, e.db, models.FoodItem{Name: "Pasta"})
	salad := testhelpers.CreateFood(t, e.db, models.FoodItem{Name: "Salad"})
	soup := testhelpers.CreateFood(t, e.db, models.FoodItem{Name: "Soup"})

	_, err := svc.CreateReview(ctx, alice.ID, &types.CreateReviewRequest{FoodID: pasta.ID, Rating: "good"})
	require.NoError(t, err)
	svc.SetClock(func() time.Time { return e.now.Add(time.Minute) })
	_, err = svc.CreateReview(ctx, bob.ID, &types.CreateReviewRequest{FoodID: pasta.ID, Rating: "bad"})
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, bob.ID, &types.CreateReviewRequest{FoodID: salad.ID, Rating: "mid"})
	require.NoError(t, err)

	reviews, err := svc.ListForFood(ctx, pasta.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, bob.ID, reviews[0].UserID)

	_, err = svc.ListForFood(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrFoodNotFound)

	grouped, err := svc.ListGrouped(ctx, []uuid.UUID{pasta.ID, salad.ID, soup.ID})
	require.NoError(t, err)
	assert.Len(t, grouped[pasta.ID.String()], 2)
	assert.Len(t, grouped[salad.ID.String()], 1)
	assert.NotNil(t, grouped[soup.ID.String()])
	assert.Empty(t, grouped[soup.ID.String()])
}

func TestLikeAndDeleteReview(t *testing.T) {
	e := newEnv(t)
	svc := newReviewService(e)
	ctx := context.Background()
	author := testhelpers.CreateUser(t, e.db)
	other := testhelpers.CreateUser(t, e.db)
	food := testhelpers.CreateFood(t, e.db, models.FoodItem{Name: "Pasta"})
	review := testhelpers.CreateReview(t, e.db, author.ID, food.ID, models.RatingGood, "2024-10-07")

	liked, err := svc.LikeReview(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
	liked, err = svc.LikeReview(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, liked.Likes)

	_, err = svc.LikeReview(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrReviewNotFound)

	assert.ErrorIs(t, svc.DeleteReview(ctx, other.ID, review.ID), ErrForbidden)
	require.NoError(t, svc.DeleteReview(ctx, author.ID, review.ID))
	assert.ErrorIs(t, svc.DeleteReview(ctx, author.ID, review.ID), ErrReviewNotFound)
}
