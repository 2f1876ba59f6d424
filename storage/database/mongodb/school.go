package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/school"
)

// Class

type classRepository struct {
	coll *mongo.Collection
}

var _ school.ClassRepository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *DB) school.ClassRepository {
	return &classRepository{coll: db.db.Collection(classesCollection)}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls school.Class) (school.Class, error) {
	res, err := repo.coll.InsertOne(ctx, cls)
	if err != nil {
		return school.Class{}, errors.Wrap(err, "inserting class")
	}
	cls.ID = res.InsertedID.(primitive.ObjectID)
	return cls, nil
}

func (repo *classRepository) QueryAllClasses(ctx context.Context, opts core.ListOptions) ([]school.Class, error) {
	fo := findOpts(opts).SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := repo.coll.Find(ctx, bson.M{}, fo)
	if err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}

	classes := make([]school.Class, 0)
	if err = cur.All(ctx, &classes); err != nil {
		return nil, errors.Wrap(err, "decoding classes")
	}
	return classes, nil
}

func (repo *classRepository) GetClassByID(ctx context.Context, id primitive.ObjectID) (school.Class, error) {
	var cls school.Class
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&cls)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return school.Class{}, school.ErrClassNotFound
		}
		return school.Class{}, errors.Wrap(err, "getting class")
	}
	return cls, nil
}

func (repo *classRepository) UpdateClass(ctx context.Context, cls school.Class) (school.Class, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": cls.ID}, cls)
	if err != nil {
		return school.Class{}, errors.Wrap(err, "updating class")
	}
	if res.MatchedCount == 0 {
		return school.Class{}, school.ErrClassNotFound
	}
	return cls, nil
}

func (repo *classRepository) DeleteClass(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting class")
	}
	if res.DeletedCount == 0 {
		return school.ErrClassNotFound
	}
	return nil
}

// Exam

type examRepository struct {
	coll *mongo.Collection
}

var _ school.ExamRepository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *DB) school.ExamRepository {
	return &examRepository{coll: db.db.Collection(examsCollection)}
}

func (repo *examRepository) CreateExam(ctx context.Context, exam school.Exam) (school.Exam, error) {
	res, err := repo.coll.InsertOne(ctx, exam)
	if err != nil {
		return school.Exam{}, errors.Wrap(err, "inserting exam")
	}
	exam.ID = res.InsertedID.(primitive.ObjectID)
	return exam, nil
}

func (repo *examRepository) QueryAllExams(ctx context.Context, opts core.ListOptions) ([]school.Exam, error) {
	fo := findOpts(opts).SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := repo.coll.Find(ctx, bson.M{}, fo)
	if err != nil {
		return nil, errors.Wrap(err, "querying exams")
	}

	exams := make([]school.Exam, 0)
	if err = cur.All(ctx, &exams); err != nil {
		return nil, errors.Wrap(err, "decoding exams")
	}
	return exams, nil
}

func (repo *examRepository) GetExamByID(ctx context.Context, id primitive.ObjectID) (school.Exam, error) {
	var exam school.Exam
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&exam)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return school.Exam{}, school.ErrExamNotFound
		}
		return school.Exam{}, errors.Wrap(err, "getting exam")
	}
	return exam, nil
}

func (repo *examRepository) UpdateExam(ctx context.Context, exam school.Exam) (school.Exam, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": exam.ID}, exam)
	if err != nil {
		return school.Exam{}, errors.Wrap(err, "updating exam")
	}
	if res.MatchedCount == 0 {
		return school.Exam{}, school.ErrExamNotFound
	}
	return exam, nil
}

func (repo *examRepository) DeleteExam(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting exam")
	}
	if res.DeletedCount == 0 {
		return school.ErrExamNotFound
	}
	return nil
}

// Library

type libraryRepository struct {
	coll *mongo.Collection
}

var _ school.LibraryRepository = (*libraryRepository)(nil) // interface compliance check

func NewLibraryRepository(db *DB) school.LibraryRepository {
	return &libraryRepository{coll: db.db.Collection(booksCollection)}
}

func (repo *libraryRepository) CreateBook(ctx context.Context, book school.Book) (school.Book, error) {
	res, err := repo.coll.InsertOne(ctx, book)
	if err != nil {
		return school.Book{}, errors.Wrap(err, "inserting book")
	}
	book.ID = res.InsertedID.(primitive.ObjectID)
	return book, nil
}

func (repo *libraryRepository) QueryAllBooks(ctx context.Context, opts core.ListOptions) ([]school.Book, error) {
	fo := findOpts(opts).SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := repo.coll.Find(ctx, bson.M{}, fo)
	if err != nil {
		return nil, errors.Wrap(err, "querying books")
	}

	books := make([]school.Book, 0)
	if err = cur.All(ctx, &books); err != nil {
		return nil, errors.Wrap(err, "decoding books")
	}
	return books, nil
}

func (repo *libraryRepository) GetBookByID(ctx context.Context, id primitive.ObjectID) (school.Book, error) {
	var book school.Book
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return school.Book{}, school.ErrBookNotFound
		}
		return school.Book{}, errors.Wrap(err, "getting book")
	}
	return book, nil
}

func (repo *libraryRepository) UpdateBook(ctx context.Context, book school.Book) (school.Book, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": book.ID}, book)
	if err != nil {
		return school.Book{}, errors.Wrap(err, "updating book")
	}
	if res.MatchedCount == 0 {
		return school.Book{}, school.ErrBookNotFound
	}
	return book, nil
}

func (repo *libraryRepository) DeleteBook(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting book")
	}
	if res.DeletedCount == 0 {
		return school.ErrBookNotFound
	}
	return nil
}

// Announcement

type announcementRepository struct {
	coll *mongo.Collection
}

var _ school.AnnouncementRepository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *DB) school.AnnouncementRepository {
	return &announcementRepository{coll: db.db.Collection(announcementsCollection)}
}

func (repo *announcementRepository) CreateAnnouncement(ctx context.Context, ann school.Announcement) (school.Announcement, error) {
	res, err := repo.coll.InsertOne(ctx, ann)
	if err != nil {
		return school.Announcement{}, errors.Wrap(err, "inserting announcement")
	}
	ann.ID = res.InsertedID.(primitive.ObjectID)
	return ann, nil
}

func (repo *announcementRepository) QueryAllAnnouncements(ctx context.Context, opts core.ListOptions) ([]school.Announcement, error) {
	fo := findOpts(opts).SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := repo.coll.Find(ctx, bson.M{}, fo)
	if err != nil {
		return nil, errors.Wrap(err, "querying announcements")
	}

	anns := make([]school.Announcement, 0)
	if err = cur.All(ctx, &anns); err != nil {
		return nil, errors.Wrap(err, "decoding announcements")
	}
	return anns, nil
}

func (repo *announcementRepository) GetAnnouncementByID(ctx context.Context, id primitive.ObjectID) (school.Announcement, error) {
	var ann school.Announcement
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ann)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return school.Announcement{}, school.ErrAnnouncementNotFound
		}
		return school.Announcement{}, errors.Wrap(err, "getting announcement")
	}
	return ann, nil
}

func (repo *announcementRepository) UpdateAnnouncement(ctx context.Context, ann school.Announcement) (school.Announcement, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": ann.ID}, ann)
	if err != nil {
		return school.Announcement{}, errors.Wrap(err, "updating announcement")
	}
	if res.MatchedCount == 0 {
		return school.Announcement{}, school.ErrAnnouncementNotFound
	}
	return ann, nil
}

func (repo *announcementRepository) DeleteAnnouncement(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	if res.DeletedCount == 0 {
		return school.ErrAnnouncementNotFound
	}
	return nil
}

// Attendance

type attendanceRepository struct {
	coll *mongo.Collection
}

var _ school.AttendanceRepository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) school.AttendanceRepository {
	return &attendanceRepository{coll: db.db.Collection(attendancesCollection)}
}

func (repo *attendanceRepository) CreateAttendances(ctx context.Context, records []school.Attendance) ([]school.Attendance, error) {
	docs := make([]interface{}, 0, len(records))
	for _, rec := range records {
		docs = append(docs, rec)
	}

	res, err := repo.coll.InsertMany(ctx, docs)
	if err != nil {
		// An ordered InsertMany stops at the first failure but keeps the
		// documents inserted before it. Roll those back so the batch is
		// all or nothing.
		if res != nil && len(res.InsertedIDs) > 0 {
			_, _ = repo.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": res.InsertedIDs}})
		}
		return nil, errors.Wrap(err, "inserting attendance records")
	}

	out := make([]school.Attendance, 0, len(records))
	for i, rec := range records {
		rec.ID = res.InsertedIDs[i].(primitive.ObjectID)
		out = append(out, rec)
	}
	return out, nil
}

func (repo *attendanceRepository) QueryAllAttendances(ctx context.Context, opts core.ListOptions) ([]school.Attendance, error) {
	fo := findOpts(opts).SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := repo.coll.Find(ctx, bson.M{}, fo)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance records")
	}

	recs := make([]school.Attendance, 0)
	if err = cur.All(ctx, &recs); err != nil {
		return nil, errors.Wrap(err, "decoding attendance records")
	}
	return recs, nil
}

// Event

type eventRepository struct {
	coll *mongo.Collection
}

var _ school.EventRepository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *DB) school.EventRepository {
	return &eventRepository{coll: db.db.Collection(eventsCollection)}
}

func (repo *eventRepository) CreateEvent(ctx context.Context, evt school.Event) (school.Event, error) {
	res, err := repo.coll.InsertOne(ctx, evt)
	if err != nil {
		return school.Event{}, errors.Wrap(err, "inserting event")
	}
	evt.ID = res.InsertedID.(primitive.ObjectID)
	return evt, nil
}

func (repo *eventRepository) QueryAllEvents(ctx context.Context, opts core.ListOptions) ([]school.Event, error) {
	fo := findOpts(opts).SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := repo.coll.Find(ctx, bson.M{}, fo)
	if err != nil {
		return nil, errors.Wrap(err, "querying events")
	}

	evts := make([]school.Event, 0)
	if err = cur.All(ctx, &evts); err != nil {
		return nil, errors.Wrap(err, "decoding events")
	}
	return evts, nil
}

// Rating

type ratingRepository struct {
	coll *mongo.Collection
}

var _ school.RatingRepository = (*ratingRepository)(nil) // interface compliance check

func NewRatingRepository(db *DB) school.RatingRepository {
	return &ratingRepository{coll: db.db.Collection(ratingsCollection)}
}

func (repo *ratingRepository) CreateRating(ctx context.Context, rtg school.Rating) (school.Rating, error) {
	res, err := repo.coll.InsertOne(ctx, rtg)
	if err != nil {
		return school.Rating{}, errors.Wrap(err, "inserting rating")
	}
	rtg.ID = res.InsertedID.(primitive.ObjectID)
	return rtg, nil
}

func (repo *ratingRepository) QueryAllRatings(ctx context.Context, opts core.ListOptions) ([]school.Rating, error) {
	fo := findOpts(opts).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := repo.coll.Find(ctx, bson.M{}, fo)
	if err != nil {
		return nil, errors.Wrap(err, "querying ratings")
	}

	rtgs := make([]school.Rating, 0)
	if err = cur.All(ctx, &rtgs); err != nil {
		return nil, errors.Wrap(err, "decoding ratings")
	}
	return rtgs, nil
}
