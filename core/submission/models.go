package submission

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
)

// Statuses. A submission is created pending and can only move to graded.
const (
	StatusPending = "pending"
	StatusGraded  = "graded"
)

// Submission is one student's answer to an Assignment. A second submit
// creates an independent new Submission, never an update; only grading
// mutates an existing one.
type Submission struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	AssignmentID primitive.ObjectID  `json:"assignmentId" bson:"assignmentId"`
	StudentID    *primitive.ObjectID `json:"studentId,omitempty" bson:"studentId,omitempty"`
	Student      string              `json:"student" bson:"student"`
	Content      string              `json:"content" bson:"content"`
	FileURL      string              `json:"fileUrl,omitempty" bson:"fileUrl,omitempty"`
	FileName     string              `json:"fileName,omitempty" bson:"fileName,omitempty"`
	Grade        *float64            `json:"grade,omitempty" bson:"grade,omitempty"`
	Status       string              `json:"status" bson:"status"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"` // UTC
	UpdatedAt    time.Time           `json:"updatedAt" bson:"updatedAt"` // UTC
}

// NewSubmission contains information needed to submit an Assignment.
type NewSubmission struct {
	Student   string `json:"student" form:"student" validate:"required"`
	Content   string `json:"content" form:"content" validate:"required"`
	StudentID string `json:"studentId" form:"studentId" validate:"required,objectid"`
}

func (ns *NewSubmission) Validate() error {
	ns.Student = core.CleanString(ns.Student)
	ns.Content = core.CleanString(ns.Content)
	ns.StudentID = core.CleanString(ns.StudentID)
	return core.Validate.Struct(ns)
}

// GradeSubmission defines the grade a teacher attaches to a Submission.
// Bounds follow Assignment.Grade: 0-100.
type GradeSubmission struct {
	Grade *float64 `json:"grade" validate:"required,gte=0,lte=100"`
}

func (gs *GradeSubmission) Validate() error {
	return core.Validate.Struct(gs)
}

// Resolved is a Submission with its student identity reference resolved to
// display fields, when the referenced Student still exists.
type Resolved struct {
	Submission
	StudentName  string `json:"studentName,omitempty"`
	StudentEmail string `json:"studentEmail,omitempty"`
}

// WithAssignment is a Submission carrying its parent Assignment's title
// inline for display; left unresolved if the reference is stale.
type WithAssignment struct {
	Submission
	AssignmentTitle string `json:"assignmentTitle,omitempty"`
}
