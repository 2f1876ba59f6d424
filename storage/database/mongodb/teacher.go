package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/teacher"
)

type teacherRepository struct {
	coll *mongo.Collection
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{coll: db.db.Collection(teachersCollection)}
}

func (repo *teacherRepository) CheckTeacherUniqueness(ctx context.Context, email string, excluded ...teacher.Teacher) error {
	query := bson.M{"email": email}
	if len(excluded) > 0 {
		ids := make([]primitive.ObjectID, 0, len(excluded))
		for _, tch := range excluded {
			ids = append(ids, tch.ID)
		}
		query["_id"] = bson.M{"$nin": ids}
	}

	n, err := repo.coll.CountDocuments(ctx, query)
	if err != nil {
		return errors.Wrap(err, "checking teacher email uniqueness")
	}
	if n > 0 {
		return teacher.ErrEmailExists
	}
	return nil
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	res, err := repo.coll.InsertOne(ctx, tch)
	if err != nil {
		if duplicateKeyOn(err, teacherEmailIndex) {
			return teacher.Teacher{}, teacher.ErrEmailExists
		}
		return teacher.Teacher{}, errors.Wrap(err, "inserting teacher")
	}
	tch.ID = res.InsertedID.(primitive.ObjectID)
	return tch, nil
}

func (repo *teacherRepository) QueryAllTeachers(ctx context.Context, opts core.ListOptions) ([]teacher.Teacher, error) {
	fo := findOpts(opts).SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := repo.coll.Find(ctx, bson.M{}, fo)
	if err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}

	tchs := make([]teacher.Teacher, 0)
	if err = cur.All(ctx, &tchs); err != nil {
		return nil, errors.Wrap(err, "decoding teachers")
	}
	return tchs, nil
}

func (repo *teacherRepository) GetTeacherByID(ctx context.Context, id primitive.ObjectID) (teacher.Teacher, error) {
	var tch teacher.Teacher
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&tch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "getting teacher")
	}
	return tch, nil
}

func (repo *teacherRepository) GetTeacherByEmail(ctx context.Context, email string) (teacher.Teacher, error) {
	var tch teacher.Teacher
	err := repo.coll.FindOne(ctx, bson.M{"email": email}).Decode(&tch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "getting teacher by email")
	}
	return tch, nil
}

func (repo *teacherRepository) UpdateTeacher(ctx context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": tch.ID}, tch)
	if err != nil {
		if duplicateKeyOn(err, teacherEmailIndex) {
			return teacher.Teacher{}, teacher.ErrEmailExists
		}
		return teacher.Teacher{}, errors.Wrap(err, "updating teacher")
	}
	if res.MatchedCount == 0 {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	return tch, nil
}

func (repo *teacherRepository) DeleteTeacher(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	if res.DeletedCount == 0 {
		return teacher.ErrNotFound
	}
	return nil
}
