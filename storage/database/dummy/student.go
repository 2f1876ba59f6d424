package dummydb

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) query() []student.Student {
	stds := make([]student.Student, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		stds = append(stds, *s)
	}
	sort.Slice(stds, func(i, j int) bool { return stds[i].ID.Hex() < stds[j].ID.Hex() })
	return stds
}

func isExcludedStudent(std student.Student, excluded []student.Student) bool {
	for _, ex := range excluded {
		if ex.ID == std.ID {
			return true
		}
	}
	return false
}

func (repo *studentRepository) CheckStudentUniqueness(ctx context.Context, email, regNum string, excluded ...student.Student) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, std := range repo.query() {
		if isExcludedStudent(std, excluded) {
			continue
		}
		if std.Email == email {
			return student.ErrEmailExists
		}
		if std.RegistrationNumber == regNum {
			return student.ErrRegNumExists
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	std.ID = primitive.NewObjectID()
	repo.db.table[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context, opts core.ListOptions) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	stds := repo.query()
	lo, hi := opts.Bounds(len(stds))
	return stds[lo:hi], nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id primitive.ObjectID) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if std, ok := repo.db.table[id]; ok {
		return *std, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) GetStudentByEmail(ctx context.Context, email string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, std := range repo.query() {
		if std.Email == email {
			return std, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[std.ID]; !ok {
		return student.Student{}, student.ErrNotFound
	}
	repo.db.table[std.ID] = &std
	return std, nil
}
