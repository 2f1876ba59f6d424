// Package mongodb implements the repositories on top of the official
// MongoDB driver.
package mongodb

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/gradia/gradia/core"
)

// Collection names.
const (
	assignmentsCollection   = "assignments"
	submissionsCollection   = "submissions"
	studentsCollection      = "students"
	teachersCollection      = "teachers"
	classesCollection       = "classes"
	examsCollection         = "exams"
	booksCollection         = "books"
	announcementsCollection = "announcements"
	attendancesCollection   = "attendances"
	eventsCollection        = "events"
	ratingsCollection       = "ratings"
)

// Index names. The repositories match these on duplicate key errors to map
// them to the right conflict.
const (
	studentEmailIndex  = "student_email_unique"
	studentRegNumIndex = "student_registration_number_unique"
	teacherEmailIndex  = "teacher_email_unique"
)

type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to the MongoDB deployment at url and pings it to fail fast
// on bad configuration.
func Open(ctx context.Context, url, name string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "pinging database")
	}

	return &DB{client: client, db: client.Database(name)}, nil
}

// EnsureIndexes creates the unique indexes the repositories rely on.
// It is idempotent.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	students := db.db.Collection(studentsCollection)
	_, err := students.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(studentEmailIndex).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "registrationNumber", Value: 1}},
			Options: options.Index().SetName(studentRegNumIndex).SetUnique(true),
		},
	})
	if err != nil {
		return errors.Wrap(err, "creating student indexes")
	}

	teachers := db.db.Collection(teachersCollection)
	_, err = teachers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName(teacherEmailIndex).SetUnique(true),
	})
	return errors.Wrap(err, "creating teacher indexes")
}

func (db *DB) Close(ctx context.Context) error {
	return errors.Wrap(db.client.Disconnect(ctx), "disconnecting database")
}

// findOpts translates list options into driver options.
func findOpts(opts core.ListOptions) *options.FindOptions {
	fo := options.Find()
	if opts.Limit > 0 {
		fo.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		fo.SetSkip(int64(opts.Offset))
	}
	return fo
}

// duplicateKeyOn reports whether err is a duplicate key error raised by the
// named unique index.
func duplicateKeyOn(err error, index string) bool {
	if !mongo.IsDuplicateKeyError(err) {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if strings.Contains(e.Message, index) {
				return true
			}
		}
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if strings.Contains(e.Message, index) {
				return true
			}
		}
	}
	return false
}
