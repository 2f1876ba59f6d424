package assignment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
)

// Assignment is a piece of work posted by a teacher. It is immutable once
// created except for its submission-reference set, which grows as students
// submit.
type Assignment struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title   string             `json:"title" bson:"title"`
	Details string             `json:"details" bson:"details"`
	// Grade is the maximum achievable score, 0-100.
	Grade       float64              `json:"grade" bson:"grade"`
	TeacherID   primitive.ObjectID   `json:"teacherId" bson:"teacherId"`
	Submissions []primitive.ObjectID `json:"submissions" bson:"submissions"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"` // UTC
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	Title     string   `json:"title" validate:"required"`
	Details   string   `json:"details" validate:"required"`
	Grade     *float64 `json:"grade" validate:"required,gte=0,lte=100"`
	TeacherID string   `json:"teacherId" validate:"omitempty,objectid"`
}

func (na *NewAssignment) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Details = core.CleanString(na.Details)
	na.TeacherID = core.CleanString(na.TeacherID)
	return core.Validate.Struct(na)
}

// QueryFilter narrows an assignment listing.
type QueryFilter struct {
	TeacherID string `query:"teacherId"`
}

func (qf *QueryFilter) IsEmpty() bool { return qf.TeacherID == "" }

func (qf *QueryFilter) Clean() {
	qf.TeacherID = core.CleanString(qf.TeacherID)
}
