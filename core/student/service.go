package student

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
)

var (
	ErrNotFound     = core.NewNotFoundError("Student not found")
	ErrEmailExists  = errors.New("a student with this email already exists")
	ErrRegNumExists = errors.New("a student with this registration number already exists")
)

type (
	Repository interface {
		// CheckStudentUniqueness returns ErrEmailExists/ErrRegNumExists when
		// another (non-excluded) student holds the email or registration number.
		CheckStudentUniqueness(ctx context.Context, email, regNum string, excluded ...Student) error
		CreateStudent(ctx context.Context, std Student) (Student, error)
		QueryAllStudents(ctx context.Context, opts core.ListOptions) ([]Student, error)
		GetStudentByID(ctx context.Context, id primitive.ObjectID) (Student, error)
		GetStudentByEmail(ctx context.Context, email string) (Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// asConflict translates the repository uniqueness sentinels into conflict
// errors carrying the offending field. Repo writes can surface them too, when
// a concurrent create slips past the pre-check and trips the unique index.
func asConflict(err error) error {
	switch errors.Cause(err) {
	case ErrEmailExists:
		return core.NewConflictError(ErrEmailExists, "email")
	case ErrRegNumExists:
		return core.NewConflictError(ErrRegNumExists, "registrationNumber")
	}
	return err
}

func (svc *Service) checkUniqueness(ctx context.Context, email, regNum string, excluded ...Student) error {
	return asConflict(svc.repo.CheckStudentUniqueness(ctx, email, regNum, excluded...))
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := svc.checkUniqueness(ctx, ns.Email, ns.RegistrationNumber); err != nil {
		return Student{}, err
	}

	std := Student{
		Name:               ns.Name,
		RegistrationNumber: ns.RegistrationNumber,
		Grade:              ns.Grade,
		Age:                *ns.Age,
		Gender:             ns.Gender,
		Email:              ns.Email,
		ProfileImage:       ns.ProfileImage,
	}
	if std.ProfileImage == "" {
		std.ProfileImage = DefaultProfileImage
	}
	std, err := svc.repo.CreateStudent(ctx, std)
	if err != nil {
		return Student{}, asConflict(err)
	}
	return std, nil
}

func (svc *Service) Query(ctx context.Context, opts core.ListOptions) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx, opts)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Student, error) {
	return svc.repo.GetStudentByEmail(ctx, core.CleanString(email, true /* lower */))
}

// Update merges the supplied fields into the stored profile, re-validating
// the uniqueness constraints.
func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Student{}, ErrNotFound
	}
	orig, err := svc.repo.GetStudentByID(ctx, oid)
	if err != nil {
		return Student{}, err
	}

	if err := us.Validate(orig); err != nil {
		return Student{}, err
	}
	if err := svc.checkUniqueness(ctx, us.Email, us.RegistrationNumber, orig); err != nil {
		return Student{}, err
	}

	std := Student{
		ID:                 oid,
		Name:               us.Name,
		RegistrationNumber: us.RegistrationNumber,
		Grade:              us.Grade,
		Age:                *us.Age,
		Gender:             us.Gender,
		Email:              us.Email,
		ProfileImage:       us.ProfileImage,
	}
	std, err = svc.repo.UpdateStudent(ctx, std)
	if err != nil {
		return Student{}, asConflict(err)
	}
	return std, nil
}
