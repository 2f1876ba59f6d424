package dummydb

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/assignment"
)

type assignmentRepository struct {
	db *assignmentTable
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db.assignment}
}

func (repo *assignmentRepository) query() []assignment.Assignment {
	asgmts := make([]assignment.Assignment, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		asgmts = append(asgmts, *a)
	}
	sort.Slice(asgmts, func(i, j int) bool { return asgmts[i].CreatedAt.Before(asgmts[j].CreatedAt) })
	return asgmts
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, asgmt assignment.Assignment) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	asgmt.ID = primitive.NewObjectID()
	repo.db.table[asgmt.ID] = &asgmt
	return asgmt, nil
}

func (repo *assignmentRepository) QueryAssignments(ctx context.Context, filter assignment.QueryFilter, opts core.ListOptions) ([]assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	asgmts := repo.query()
	if !filter.IsEmpty() {
		matched := asgmts[:0]
		for _, a := range asgmts {
			if a.TeacherID.Hex() == filter.TeacherID {
				matched = append(matched, a)
			}
		}
		asgmts = matched
	}
	lo, hi := opts.Bounds(len(asgmts))
	return asgmts[lo:hi], nil
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id primitive.ObjectID) (assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if asgmt, ok := repo.db.table[id]; ok {
		return *asgmt, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) AppendSubmission(ctx context.Context, id, submissionID primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	asgmt, ok := repo.db.table[id]
	if !ok {
		return assignment.ErrNotFound
	}
	asgmt.Submissions = append(asgmt.Submissions, submissionID)
	asgmt.UpdatedAt = time.Now().UTC()
	return nil
}

func (repo *assignmentRepository) RemoveSubmission(ctx context.Context, id, submissionID primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	asgmt, ok := repo.db.table[id]
	if !ok {
		return assignment.ErrNotFound
	}
	refs := asgmt.Submissions[:0]
	for _, sid := range asgmt.Submissions {
		if sid != submissionID {
			refs = append(refs, sid)
		}
	}
	asgmt.Submissions = refs
	asgmt.UpdatedAt = time.Now().UTC()
	return nil
}
