package service

import "errors"

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token has expired")
	ErrFoodNotFound     = errors.New("food not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrHallNotFound     = errors.New("dining hall not found")
	ErrDuplicateReview  = errors.New("food already reviewed today")
	ErrInvalidRating    = errors.New("rating must be one of bad, mid, good")
	ErrInvalidGoal      = errors.New("goal must be one of bulk, lose_weight, eat_healthy")
	ErrForbidden        = errors.New("forbidden")
	ErrImageTooLarge    = errors.New("image exceeds size limit")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrInvalidImport    = errors.New("invalid import document")
)
