package teacher

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
)

var (
	ErrNotFound    = core.NewNotFoundError("Teacher not found")
	ErrEmailExists = errors.New("a teacher with this email already exists")
)

type (
	Repository interface {
		// CheckTeacherUniqueness returns ErrEmailExists when another
		// (non-excluded) teacher holds the email.
		CheckTeacherUniqueness(ctx context.Context, email string, excluded ...Teacher) error
		CreateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		QueryAllTeachers(ctx context.Context, opts core.ListOptions) ([]Teacher, error)
		GetTeacherByID(ctx context.Context, id primitive.ObjectID) (Teacher, error)
		GetTeacherByEmail(ctx context.Context, email string) (Teacher, error)
		UpdateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		DeleteTeacher(ctx context.Context, id primitive.ObjectID) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// asConflict translates the repository uniqueness sentinel into a conflict
// error. Repo writes can surface it too, when a concurrent create slips past
// the pre-check and trips the unique index.
func asConflict(err error) error {
	if errors.Cause(err) == ErrEmailExists {
		return core.NewConflictError(ErrEmailExists, "email")
	}
	return err
}

func (svc *Service) checkUniqueness(ctx context.Context, email string, excluded ...Teacher) error {
	return asConflict(svc.repo.CheckTeacherUniqueness(ctx, email, excluded...))
}

func (svc *Service) Create(ctx context.Context, nt NewTeacher) (Teacher, error) {
	if err := svc.checkUniqueness(ctx, nt.Email); err != nil {
		return Teacher{}, err
	}

	tch := Teacher{
		Name:          nt.Name,
		Email:         nt.Email,
		Phone:         nt.Phone,
		Address:       nt.Address,
		Qualification: nt.Qualification,
		Gender:        nt.Gender,
		ProfileImage:  nt.ProfileImage,
		CreatedAt:     time.Now().UTC(),
	}
	if tch.ProfileImage == "" {
		tch.ProfileImage = DefaultProfileImage
	}
	tch, err := svc.repo.CreateTeacher(ctx, tch)
	if err != nil {
		return Teacher{}, asConflict(err)
	}
	return tch, nil
}

func (svc *Service) Query(ctx context.Context, opts core.ListOptions) ([]Teacher, error) {
	return svc.repo.QueryAllTeachers(ctx, opts)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Teacher, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Teacher{}, ErrNotFound
	}
	return svc.repo.GetTeacherByID(ctx, oid)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Teacher, error) {
	return svc.repo.GetTeacherByEmail(ctx, core.CleanString(email, true /* lower */))
}

// Update merges the supplied fields into the stored profile, re-validating
// the uniqueness constraint.
func (svc *Service) Update(ctx context.Context, id string, ut UpdateTeacher) (Teacher, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Teacher{}, ErrNotFound
	}
	orig, err := svc.repo.GetTeacherByID(ctx, oid)
	if err != nil {
		return Teacher{}, err
	}

	if err := ut.Validate(orig); err != nil {
		return Teacher{}, err
	}
	if err := svc.checkUniqueness(ctx, ut.Email, orig); err != nil {
		return Teacher{}, err
	}

	tch := Teacher{
		ID:            oid,
		Name:          ut.Name,
		Email:         ut.Email,
		Phone:         ut.Phone,
		Address:       ut.Address,
		Qualification: ut.Qualification,
		Gender:        ut.Gender,
		ProfileImage:  ut.ProfileImage,
		CreatedAt:     orig.CreatedAt,
	}
	tch, err = svc.repo.UpdateTeacher(ctx, tch)
	if err != nil {
		return Teacher{}, asConflict(err)
	}
	return tch, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	return svc.repo.DeleteTeacher(ctx, oid)
}
