package school

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
)

var ErrExamNotFound = core.NewNotFoundError("Exam not found")

type Exam struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title   string             `json:"title" bson:"title"`
	Subject string             `json:"subject" bson:"subject"`
	Date    time.Time          `json:"date" bson:"date"`
	// Duration in minutes.
	Duration int    `json:"duration" bson:"duration"`
	Teacher  string `json:"teacher" bson:"teacher"`
	Grade    string `json:"grade" bson:"grade"`
}

type NewExam struct {
	Title    string     `json:"title" validate:"required"`
	Subject  string     `json:"subject" validate:"required"`
	Date     *time.Time `json:"date" validate:"required"`
	Duration *int       `json:"duration" validate:"required,gt=0"`
	Teacher  string     `json:"teacher" validate:"required"`
	Grade    string     `json:"grade" validate:"required"`
}

func (ne *NewExam) Validate() error {
	ne.Title = core.CleanString(ne.Title)
	ne.Subject = core.CleanString(ne.Subject)
	ne.Teacher = core.CleanString(ne.Teacher)
	ne.Grade = core.CleanString(ne.Grade)
	return core.Validate.Struct(ne)
}

type UpdateExam struct {
	Title    string     `json:"title"`
	Subject  string     `json:"subject"`
	Date     *time.Time `json:"date"`
	Duration *int       `json:"duration" validate:"omitempty,gt=0"`
	Teacher  string     `json:"teacher"`
	Grade    string     `json:"grade"`
}

type (
	ExamRepository interface {
		CreateExam(ctx context.Context, exam Exam) (Exam, error)
		QueryAllExams(ctx context.Context, opts core.ListOptions) ([]Exam, error)
		GetExamByID(ctx context.Context, id primitive.ObjectID) (Exam, error)
		UpdateExam(ctx context.Context, exam Exam) (Exam, error)
		DeleteExam(ctx context.Context, id primitive.ObjectID) error
	}

	ExamService struct {
		repo ExamRepository
	}
)

func NewExamService(repo ExamRepository) *ExamService {
	return &ExamService{repo: repo}
}

func (svc *ExamService) Create(ctx context.Context, ne NewExam) (Exam, error) {
	exam := Exam{
		Title:    ne.Title,
		Subject:  ne.Subject,
		Date:     ne.Date.UTC(),
		Duration: *ne.Duration,
		Teacher:  ne.Teacher,
		Grade:    ne.Grade,
	}
	return svc.repo.CreateExam(ctx, exam)
}

func (svc *ExamService) Query(ctx context.Context, opts core.ListOptions) ([]Exam, error) {
	return svc.repo.QueryAllExams(ctx, opts)
}

func (svc *ExamService) GetByID(ctx context.Context, id string) (Exam, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Exam{}, ErrExamNotFound
	}
	return svc.repo.GetExamByID(ctx, oid)
}

func (svc *ExamService) Update(ctx context.Context, id string, ue UpdateExam) (Exam, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Exam{}, ErrExamNotFound
	}
	exam, err := svc.repo.GetExamByID(ctx, oid)
	if err != nil {
		return Exam{}, err
	}

	if err := core.Validate.Struct(&ue); err != nil {
		return Exam{}, err
	}
	if title := core.CleanString(ue.Title); title != "" {
		exam.Title = title
	}
	if subj := core.CleanString(ue.Subject); subj != "" {
		exam.Subject = subj
	}
	if ue.Date != nil {
		exam.Date = ue.Date.UTC()
	}
	if ue.Duration != nil {
		exam.Duration = *ue.Duration
	}
	if tch := core.CleanString(ue.Teacher); tch != "" {
		exam.Teacher = tch
	}
	if grade := core.CleanString(ue.Grade); grade != "" {
		exam.Grade = grade
	}
	return svc.repo.UpdateExam(ctx, exam)
}

func (svc *ExamService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrExamNotFound
	}
	return svc.repo.DeleteExam(ctx, oid)
}
