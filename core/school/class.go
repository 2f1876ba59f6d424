// Package school holds the flat school resources: classes, exams, library
// books, announcements, attendance records, events and teacher ratings.
// Each is an independent record set with no enforced cross-references.
package school

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
)

var ErrClassNotFound = core.NewNotFoundError("Class not found")

type Class struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Teacher  string             `json:"teacher" bson:"teacher"`
	Grade    string             `json:"grade" bson:"grade"`
	Schedule string             `json:"schedule" bson:"schedule"`
}

type NewClass struct {
	Name     string `json:"name" validate:"required"`
	Teacher  string `json:"teacher" validate:"required"`
	Grade    string `json:"grade" validate:"required"`
	Schedule string `json:"schedule" validate:"required"`
}

func (nc *NewClass) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Teacher = core.CleanString(nc.Teacher)
	nc.Grade = core.CleanString(nc.Grade)
	nc.Schedule = core.CleanString(nc.Schedule)
	return core.Validate.Struct(nc)
}

// UpdateClass merges over the stored record; omitted fields are kept.
type UpdateClass struct {
	Name     string `json:"name"`
	Teacher  string `json:"teacher"`
	Grade    string `json:"grade"`
	Schedule string `json:"schedule"`
}

type (
	ClassRepository interface {
		CreateClass(ctx context.Context, cls Class) (Class, error)
		QueryAllClasses(ctx context.Context, opts core.ListOptions) ([]Class, error)
		GetClassByID(ctx context.Context, id primitive.ObjectID) (Class, error)
		UpdateClass(ctx context.Context, cls Class) (Class, error)
		DeleteClass(ctx context.Context, id primitive.ObjectID) error
	}

	ClassService struct {
		repo ClassRepository
	}
)

func NewClassService(repo ClassRepository) *ClassService {
	return &ClassService{repo: repo}
}

func (svc *ClassService) Create(ctx context.Context, nc NewClass) (Class, error) {
	cls := Class{Name: nc.Name, Teacher: nc.Teacher, Grade: nc.Grade, Schedule: nc.Schedule}
	return svc.repo.CreateClass(ctx, cls)
}

func (svc *ClassService) Query(ctx context.Context, opts core.ListOptions) ([]Class, error) {
	return svc.repo.QueryAllClasses(ctx, opts)
}

func (svc *ClassService) GetByID(ctx context.Context, id string) (Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Class{}, ErrClassNotFound
	}
	return svc.repo.GetClassByID(ctx, oid)
}

func (svc *ClassService) Update(ctx context.Context, id string, uc UpdateClass) (Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Class{}, ErrClassNotFound
	}
	cls, err := svc.repo.GetClassByID(ctx, oid)
	if err != nil {
		return Class{}, err
	}

	if name := core.CleanString(uc.Name); name != "" {
		cls.Name = name
	}
	if tch := core.CleanString(uc.Teacher); tch != "" {
		cls.Teacher = tch
	}
	if grade := core.CleanString(uc.Grade); grade != "" {
		cls.Grade = grade
	}
	if sched := core.CleanString(uc.Schedule); sched != "" {
		cls.Schedule = sched
	}
	return svc.repo.UpdateClass(ctx, cls)
}

func (svc *ClassService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrClassNotFound
	}
	return svc.repo.DeleteClass(ctx, oid)
}
