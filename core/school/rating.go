package school

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
)

// Rating is a student's review of a teacher, recorded by display names.
type Rating struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Teacher     string             `json:"teacher" bson:"teacher"`
	Rating      float64            `json:"rating" bson:"rating"`
	Comment     string             `json:"comment" bson:"comment"`
	StudentName string             `json:"studentName" bson:"studentName"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"` // UTC
}

type NewRating struct {
	Teacher     string   `json:"teacher" validate:"required"`
	Rating      *float64 `json:"rating" validate:"required"`
	Comment     string   `json:"comment" validate:"required"`
	StudentName string   `json:"studentName" validate:"required"`
}

func (nr *NewRating) Validate() error {
	nr.Teacher = core.CleanString(nr.Teacher)
	nr.Comment = core.CleanString(nr.Comment)
	nr.StudentName = core.CleanString(nr.StudentName)
	return core.Validate.Struct(nr)
}

type (
	RatingRepository interface {
		CreateRating(ctx context.Context, rtg Rating) (Rating, error)
		// QueryAllRatings returns ratings newest first.
		QueryAllRatings(ctx context.Context, opts core.ListOptions) ([]Rating, error)
	}

	RatingService struct {
		repo RatingRepository
	}
)

func NewRatingService(repo RatingRepository) *RatingService {
	return &RatingService{repo: repo}
}

func (svc *RatingService) Create(ctx context.Context, nr NewRating) (Rating, error) {
	rtg := Rating{
		Teacher:     nr.Teacher,
		Rating:      *nr.Rating,
		Comment:     nr.Comment,
		StudentName: nr.StudentName,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateRating(ctx, rtg)
}

func (svc *RatingService) Query(ctx context.Context, opts core.ListOptions) ([]Rating, error) {
	return svc.repo.QueryAllRatings(ctx, opts)
}
