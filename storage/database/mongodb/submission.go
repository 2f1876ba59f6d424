package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/submission"
)

type submissionRepository struct {
	coll *mongo.Collection
}

var _ submission.Repository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(db *DB) submission.Repository {
	return &submissionRepository{coll: db.db.Collection(submissionsCollection)}
}

func (repo *submissionRepository) CreateSubmission(ctx context.Context, sub submission.Submission) (submission.Submission, error) {
	res, err := repo.coll.InsertOne(ctx, sub)
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "inserting submission")
	}
	sub.ID = res.InsertedID.(primitive.ObjectID)
	return sub, nil
}

func (repo *submissionRepository) QueryAllSubmissions(ctx context.Context, opts core.ListOptions) ([]submission.Submission, error) {
	fo := findOpts(opts).SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := repo.coll.Find(ctx, bson.M{}, fo)
	if err != nil {
		return nil, errors.Wrap(err, "querying submissions")
	}

	subs := make([]submission.Submission, 0)
	if err = cur.All(ctx, &subs); err != nil {
		return nil, errors.Wrap(err, "decoding submissions")
	}
	return subs, nil
}

func (repo *submissionRepository) QuerySubmissionsByAssignment(ctx context.Context, assignmentID primitive.ObjectID) ([]submission.Submission, error) {
	fo := findOpts(core.ListOptions{}).SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := repo.coll.Find(ctx, bson.M{"assignmentId": assignmentID}, fo)
	if err != nil {
		return nil, errors.Wrap(err, "querying submissions by assignment")
	}

	subs := make([]submission.Submission, 0)
	if err = cur.All(ctx, &subs); err != nil {
		return nil, errors.Wrap(err, "decoding submissions")
	}
	return subs, nil
}

func (repo *submissionRepository) GetSubmissionByID(ctx context.Context, id primitive.ObjectID) (submission.Submission, error) {
	var sub submission.Submission
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return submission.Submission{}, submission.ErrNotFound
		}
		return submission.Submission{}, errors.Wrap(err, "getting submission")
	}
	return sub, nil
}

func (repo *submissionRepository) SetSubmissionGrade(ctx context.Context, id primitive.ObjectID, grade float64) (submission.Submission, error) {
	update := bson.M{"$set": bson.M{
		"grade":     grade,
		"status":    submission.StatusGraded,
		"updatedAt": time.Now().UTC(),
	}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return submission.Submission{}, errors.Wrap(err, "grading submission")
	}
	if res.MatchedCount == 0 {
		return submission.Submission{}, submission.ErrNotFound
	}
	return repo.GetSubmissionByID(ctx, id)
}

func (repo *submissionRepository) DeleteSubmission(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting submission")
	}
	if res.DeletedCount == 0 {
		return submission.ErrNotFound
	}
	return nil
}
