package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/student"
)

type studentRepository struct {
	coll *mongo.Collection
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{coll: db.db.Collection(studentsCollection)}
}

func excludedStudentIDs(excluded []student.Student) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(excluded))
	for _, std := range excluded {
		ids = append(ids, std.ID)
	}
	return ids
}

func (repo *studentRepository) CheckStudentUniqueness(ctx context.Context, email, regNum string, excluded ...student.Student) error {
	base := bson.M{}
	if ids := excludedStudentIDs(excluded); len(ids) > 0 {
		base["_id"] = bson.M{"$nin": ids}
	}

	emailQuery := bson.M{"email": email}
	for k, v := range base {
		emailQuery[k] = v
	}
	n, err := repo.coll.CountDocuments(ctx, emailQuery)
	if err != nil {
		return errors.Wrap(err, "checking student email uniqueness")
	}
	if n > 0 {
		return student.ErrEmailExists
	}

	regNumQuery := bson.M{"registrationNumber": regNum}
	for k, v := range base {
		regNumQuery[k] = v
	}
	n, err = repo.coll.CountDocuments(ctx, regNumQuery)
	if err != nil {
		return errors.Wrap(err, "checking registration number uniqueness")
	}
	if n > 0 {
		return student.ErrRegNumExists
	}
	return nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	res, err := repo.coll.InsertOne(ctx, std)
	if err != nil {
		return student.Student{}, mapStudentWriteErr(err, "inserting student")
	}
	std.ID = res.InsertedID.(primitive.ObjectID)
	return std, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context, opts core.ListOptions) ([]student.Student, error) {
	fo := findOpts(opts).SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := repo.coll.Find(ctx, bson.M{}, fo)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	stds := make([]student.Student, 0)
	if err = cur.All(ctx, &stds); err != nil {
		return nil, errors.Wrap(err, "decoding students")
	}
	return stds, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id primitive.ObjectID) (student.Student, error) {
	var std student.Student
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&std)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return std, nil
}

func (repo *studentRepository) GetStudentByEmail(ctx context.Context, email string) (student.Student, error) {
	var std student.Student
	err := repo.coll.FindOne(ctx, bson.M{"email": email}).Decode(&std)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student by email")
	}
	return std, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": std.ID}, std)
	if err != nil {
		return student.Student{}, mapStudentWriteErr(err, "updating student")
	}
	if res.MatchedCount == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return std, nil
}

// mapStudentWriteErr translates unique index violations to the domain
// conflicts the service expects.
func mapStudentWriteErr(err error, msg string) error {
	switch {
	case duplicateKeyOn(err, studentEmailIndex):
		return student.ErrEmailExists
	case duplicateKeyOn(err, studentRegNumIndex):
		return student.ErrRegNumExists
	}
	return errors.Wrap(err, msg)
}
