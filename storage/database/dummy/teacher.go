package dummydb

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/teacher"
)

type teacherRepository struct {
	db *teacherTable
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db.teacher}
}

func (repo *teacherRepository) query() []teacher.Teacher {
	tchs := make([]teacher.Teacher, 0, len(repo.db.table))
	for _, t := range repo.db.table {
		tchs = append(tchs, *t)
	}
	sort.Slice(tchs, func(i, j int) bool { return tchs[i].CreatedAt.Before(tchs[j].CreatedAt) })
	return tchs
}

func isExcludedTeacher(tch teacher.Teacher, excluded []teacher.Teacher) bool {
	for _, ex := range excluded {
		if ex.ID == tch.ID {
			return true
		}
	}
	return false
}

func (repo *teacherRepository) CheckTeacherUniqueness(ctx context.Context, email string, excluded ...teacher.Teacher) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, tch := range repo.query() {
		if tch.Email == email && !isExcludedTeacher(tch, excluded) {
			return teacher.ErrEmailExists
		}
	}
	return nil
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	tch.ID = primitive.NewObjectID()
	repo.db.table[tch.ID] = &tch
	return tch, nil
}

func (repo *teacherRepository) QueryAllTeachers(ctx context.Context, opts core.ListOptions) ([]teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tchs := repo.query()
	lo, hi := opts.Bounds(len(tchs))
	return tchs[lo:hi], nil
}

func (repo *teacherRepository) GetTeacherByID(ctx context.Context, id primitive.ObjectID) (teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tch, ok := repo.db.table[id]; ok {
		return *tch, nil
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) GetTeacherByEmail(ctx context.Context, email string) (teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, tch := range repo.query() {
		if tch.Email == email {
			return tch, nil
		}
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) UpdateTeacher(ctx context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[tch.ID]; !ok {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	repo.db.table[tch.ID] = &tch
	return tch, nil
}

func (repo *teacherRepository) DeleteTeacher(ctx context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return teacher.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
