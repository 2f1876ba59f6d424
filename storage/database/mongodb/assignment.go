package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/assignment"
)

type assignmentRepository struct {
	coll *mongo.Collection
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{coll: db.db.Collection(assignmentsCollection)}
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, asgmt assignment.Assignment) (assignment.Assignment, error) {
	res, err := repo.coll.InsertOne(ctx, asgmt)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	asgmt.ID = res.InsertedID.(primitive.ObjectID)
	return asgmt, nil
}

func (repo *assignmentRepository) QueryAssignments(ctx context.Context, filter assignment.QueryFilter, opts core.ListOptions) ([]assignment.Assignment, error) {
	query := bson.M{}
	if !filter.IsEmpty() {
		teacherID, err := primitive.ObjectIDFromHex(filter.TeacherID)
		if err != nil {
			return []assignment.Assignment{}, nil
		}
		query["teacherId"] = teacherID
	}

	fo := findOpts(opts).SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := repo.coll.Find(ctx, query, fo)
	if err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}

	asgmts := make([]assignment.Assignment, 0)
	if err = cur.All(ctx, &asgmts); err != nil {
		return nil, errors.Wrap(err, "decoding assignments")
	}
	return asgmts, nil
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id primitive.ObjectID) (assignment.Assignment, error) {
	var asgmt assignment.Assignment
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&asgmt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, errors.Wrap(err, "getting assignment")
	}
	return asgmt, nil
}

func (repo *assignmentRepository) AppendSubmission(ctx context.Context, id, submissionID primitive.ObjectID) error {
	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push":        bson.M{"submissions": submissionID},
			"$currentDate": bson.M{"updatedAt": true},
		},
	)
	if err != nil {
		return errors.Wrap(err, "appending submission reference")
	}
	if res.MatchedCount == 0 {
		return assignment.ErrNotFound
	}
	return nil
}

func (repo *assignmentRepository) RemoveSubmission(ctx context.Context, id, submissionID primitive.ObjectID) error {
	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$pull":        bson.M{"submissions": submissionID},
			"$currentDate": bson.M{"updatedAt": true},
		},
	)
	if err != nil {
		return errors.Wrap(err, "removing submission reference")
	}
	if res.MatchedCount == 0 {
		return assignment.ErrNotFound
	}
	return nil
}
