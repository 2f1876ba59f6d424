package assignment

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
)

var ErrNotFound = core.NewNotFoundError("Assignment not found")

type (
	Repository interface {
		CreateAssignment(ctx context.Context, asgmt Assignment) (Assignment, error)
		// QueryAssignments applies AND operation on available QueryFilter fields.
		QueryAssignments(ctx context.Context, filter QueryFilter, opts core.ListOptions) ([]Assignment, error)
		GetAssignmentByID(ctx context.Context, id primitive.ObjectID) (Assignment, error)
		// AppendSubmission adds a submission reference to the assignment's set.
		AppendSubmission(ctx context.Context, id, submissionID primitive.ObjectID) error
		// RemoveSubmission drops a submission reference; used to compensate a
		// failed submission write.
		RemoveSubmission(ctx context.Context, id, submissionID primitive.ObjectID) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new Assignment with an empty submission-reference set.
// The owning teacher defaults to the request principal when not supplied.
func (svc *Service) Create(ctx context.Context, na NewAssignment, principal core.Principal) (Assignment, error) {
	teacherID := principal.ID
	if na.TeacherID != "" {
		id, err := primitive.ObjectIDFromHex(na.TeacherID)
		if err != nil {
			return Assignment{}, core.NewValidationError(err, core.FieldError{Field: "teacherId", Error: "must be a valid identifier"})
		}
		teacherID = id
	}

	now := time.Now().UTC()
	asgmt := Assignment{
		Title:       na.Title,
		Details:     na.Details,
		Grade:       *na.Grade,
		TeacherID:   teacherID,
		Submissions: []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateAssignment(ctx, asgmt)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter, opts core.ListOptions) ([]Assignment, error) {
	filter.Clean()
	return svc.repo.QueryAssignments(ctx, filter, opts)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Assignment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Assignment{}, ErrNotFound
	}
	return svc.repo.GetAssignmentByID(ctx, oid)
}
