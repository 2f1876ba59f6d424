package school

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
)

// Attendance statuses.
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceExcused = "Absent with apology"
)

// Attendance is a flat record of one student's presence for one date.
// The student is recorded by display name; there is no reference integrity
// to Student.
type Attendance struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Date    time.Time          `json:"date" bson:"date"`
	Course  string             `json:"course" bson:"course"`
	Month   string             `json:"month" bson:"month"`
	Status  string             `json:"status" bson:"status"`
	Student string             `json:"student" bson:"student"`
}

type NewAttendance struct {
	Date    *time.Time `json:"date" validate:"required"`
	Course  string     `json:"course" validate:"required"`
	Month   string     `json:"month" validate:"required"`
	Status  string     `json:"status" validate:"required,oneof=Present Absent 'Absent with apology'"`
	Student string     `json:"student" validate:"required"`
}

func (na *NewAttendance) Validate() error {
	na.Course = core.CleanString(na.Course)
	na.Month = core.CleanString(na.Month)
	na.Student = core.CleanString(na.Student)
	return core.Validate.Struct(na)
}

type (
	AttendanceRepository interface {
		// CreateAttendances inserts the whole batch or nothing.
		CreateAttendances(ctx context.Context, records []Attendance) ([]Attendance, error)
		QueryAllAttendances(ctx context.Context, opts core.ListOptions) ([]Attendance, error)
	}

	AttendanceService struct {
		repo AttendanceRepository
	}
)

func NewAttendanceService(repo AttendanceRepository) *AttendanceService {
	return &AttendanceService{repo: repo}
}

// BulkCreate validates every record up front; any single invalid record fails
// the entire batch and nothing is inserted.
func (svc *AttendanceService) BulkCreate(ctx context.Context, batch []NewAttendance) ([]Attendance, error) {
	if len(batch) == 0 {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "attendanceData", Error: "this field is required"})
	}

	records := make([]Attendance, 0, len(batch))
	for i := range batch {
		if err := batch[i].Validate(); err != nil {
			return nil, err
		}
		records = append(records, Attendance{
			Date:    batch[i].Date.UTC(),
			Course:  batch[i].Course,
			Month:   batch[i].Month,
			Status:  batch[i].Status,
			Student: batch[i].Student,
		})
	}
	return svc.repo.CreateAttendances(ctx, records)
}

func (svc *AttendanceService) Query(ctx context.Context, opts core.ListOptions) ([]Attendance, error) {
	return svc.repo.QueryAllAttendances(ctx, opts)
}
