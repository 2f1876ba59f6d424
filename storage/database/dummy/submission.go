package dummydb

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/submission"
)

type submissionRepository struct {
	db *submissionTable
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *DB) submission.Repository {
	return &submissionRepository{db: db.submission}
}

func (repo *submissionRepository) query() []submission.Submission {
	subs := make([]submission.Submission, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		subs = append(subs, *s)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].CreatedAt.Before(subs[j].CreatedAt) })
	return subs
}

func (repo *submissionRepository) CreateSubmission(ctx context.Context, sub submission.Submission) (submission.Submission, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sub.ID = primitive.NewObjectID()
	repo.db.table[sub.ID] = &sub
	return sub, nil
}

func (repo *submissionRepository) QueryAllSubmissions(ctx context.Context, opts core.ListOptions) ([]submission.Submission, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subs := repo.query()
	lo, hi := opts.Bounds(len(subs))
	return subs[lo:hi], nil
}

func (repo *submissionRepository) QuerySubmissionsByAssignment(ctx context.Context, assignmentID primitive.ObjectID) ([]submission.Submission, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subs := make([]submission.Submission, 0)
	for _, sub := range repo.query() {
		if sub.AssignmentID == assignmentID {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (repo *submissionRepository) GetSubmissionByID(ctx context.Context, id primitive.ObjectID) (submission.Submission, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sub, ok := repo.db.table[id]; ok {
		return *sub, nil
	}
	return submission.Submission{}, submission.ErrNotFound
}

func (repo *submissionRepository) SetSubmissionGrade(ctx context.Context, id primitive.ObjectID, grade float64) (submission.Submission, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	sub, ok := repo.db.table[id]
	if !ok {
		return submission.Submission{}, submission.ErrNotFound
	}
	sub.Grade = &grade
	sub.Status = submission.StatusGraded
	sub.UpdatedAt = time.Now().UTC()
	return *sub, nil
}

func (repo *submissionRepository) DeleteSubmission(ctx context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return submission.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
