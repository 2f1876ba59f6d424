package dummydb

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/school"
)

// Class

type classRepository struct {
	db *classTable
}

var _ school.ClassRepository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *DB) school.ClassRepository {
	return &classRepository{db: db.class}
}

func (repo *classRepository) query() []school.Class {
	classes := make([]school.Class, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		classes = append(classes, *c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID.Hex() < classes[j].ID.Hex() })
	return classes
}

func (repo *classRepository) CreateClass(ctx context.Context, cls school.Class) (school.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cls.ID = primitive.NewObjectID()
	repo.db.table[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) QueryAllClasses(ctx context.Context, opts core.ListOptions) ([]school.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	classes := repo.query()
	lo, hi := opts.Bounds(len(classes))
	return classes[lo:hi], nil
}

func (repo *classRepository) GetClassByID(ctx context.Context, id primitive.ObjectID) (school.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cls, ok := repo.db.table[id]; ok {
		return *cls, nil
	}
	return school.Class{}, school.ErrClassNotFound
}

func (repo *classRepository) UpdateClass(ctx context.Context, cls school.Class) (school.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[cls.ID]; !ok {
		return school.Class{}, school.ErrClassNotFound
	}
	repo.db.table[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) DeleteClass(ctx context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return school.ErrClassNotFound
	}
	delete(repo.db.table, id)
	return nil
}

// Exam

type examRepository struct {
	db *examTable
}

var _ school.ExamRepository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *DB) school.ExamRepository {
	return &examRepository{db: db.exam}
}

func (repo *examRepository) query() []school.Exam {
	exams := make([]school.Exam, 0, len(repo.db.table))
	for _, e := range repo.db.table {
		exams = append(exams, *e)
	}
	sort.Slice(exams, func(i, j int) bool { return exams[i].Date.Before(exams[j].Date) })
	return exams
}

func (repo *examRepository) CreateExam(ctx context.Context, exam school.Exam) (school.Exam, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	exam.ID = primitive.NewObjectID()
	repo.db.table[exam.ID] = &exam
	return exam, nil
}

func (repo *examRepository) QueryAllExams(ctx context.Context, opts core.ListOptions) ([]school.Exam, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	exams := repo.query()
	lo, hi := opts.Bounds(len(exams))
	return exams[lo:hi], nil
}

func (repo *examRepository) GetExamByID(ctx context.Context, id primitive.ObjectID) (school.Exam, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if exam, ok := repo.db.table[id]; ok {
		return *exam, nil
	}
	return school.Exam{}, school.ErrExamNotFound
}

func (repo *examRepository) UpdateExam(ctx context.Context, exam school.Exam) (school.Exam, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[exam.ID]; !ok {
		return school.Exam{}, school.ErrExamNotFound
	}
	repo.db.table[exam.ID] = &exam
	return exam, nil
}

func (repo *examRepository) DeleteExam(ctx context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return school.ErrExamNotFound
	}
	delete(repo.db.table, id)
	return nil
}

// Library

type libraryRepository struct {
	db *libraryTable
}

var _ school.LibraryRepository = (*libraryRepository)(nil) // interface compliance check

func NewLibraryRepository(db *DB) school.LibraryRepository {
	return &libraryRepository{db: db.library}
}

func (repo *libraryRepository) query() []school.Book {
	books := make([]school.Book, 0, len(repo.db.table))
	for _, b := range repo.db.table {
		books = append(books, *b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID.Hex() < books[j].ID.Hex() })
	return books
}

func (repo *libraryRepository) CreateBook(ctx context.Context, book school.Book) (school.Book, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	book.ID = primitive.NewObjectID()
	repo.db.table[book.ID] = &book
	return book, nil
}

func (repo *libraryRepository) QueryAllBooks(ctx context.Context, opts core.ListOptions) ([]school.Book, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	books := repo.query()
	lo, hi := opts.Bounds(len(books))
	return books[lo:hi], nil
}

func (repo *libraryRepository) GetBookByID(ctx context.Context, id primitive.ObjectID) (school.Book, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if book, ok := repo.db.table[id]; ok {
		return *book, nil
	}
	return school.Book{}, school.ErrBookNotFound
}

func (repo *libraryRepository) UpdateBook(ctx context.Context, book school.Book) (school.Book, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[book.ID]; !ok {
		return school.Book{}, school.ErrBookNotFound
	}
	repo.db.table[book.ID] = &book
	return book, nil
}

func (repo *libraryRepository) DeleteBook(ctx context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return school.ErrBookNotFound
	}
	delete(repo.db.table, id)
	return nil
}

// Announcement

type announcementRepository struct {
	db *announcementTable
}

var _ school.AnnouncementRepository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *DB) school.AnnouncementRepository {
	return &announcementRepository{db: db.announcement}
}

func (repo *announcementRepository) query() []school.Announcement {
	anns := make([]school.Announcement, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		anns = append(anns, *a)
	}
	sort.Slice(anns, func(i, j int) bool { return anns[i].CreatedAt.Before(anns[j].CreatedAt) })
	return anns
}

func (repo *announcementRepository) CreateAnnouncement(ctx context.Context, ann school.Announcement) (school.Announcement, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	ann.ID = primitive.NewObjectID()
	repo.db.table[ann.ID] = &ann
	return ann, nil
}

func (repo *announcementRepository) QueryAllAnnouncements(ctx context.Context, opts core.ListOptions) ([]school.Announcement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	anns := repo.query()
	lo, hi := opts.Bounds(len(anns))
	return anns[lo:hi], nil
}

func (repo *announcementRepository) GetAnnouncementByID(ctx context.Context, id primitive.ObjectID) (school.Announcement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ann, ok := repo.db.table[id]; ok {
		return *ann, nil
	}
	return school.Announcement{}, school.ErrAnnouncementNotFound
}

func (repo *announcementRepository) UpdateAnnouncement(ctx context.Context, ann school.Announcement) (school.Announcement, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[ann.ID]; !ok {
		return school.Announcement{}, school.ErrAnnouncementNotFound
	}
	repo.db.table[ann.ID] = &ann
	return ann, nil
}

func (repo *announcementRepository) DeleteAnnouncement(ctx context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return school.ErrAnnouncementNotFound
	}
	delete(repo.db.table, id)
	return nil
}

// Attendance

type attendanceRepository struct {
	db *attendanceTable
}

var _ school.AttendanceRepository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) school.AttendanceRepository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) CreateAttendances(ctx context.Context, records []school.Attendance) ([]school.Attendance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	out := make([]school.Attendance, 0, len(records))
	for _, rec := range records {
		rec.ID = primitive.NewObjectID()
		repo.db.table[rec.ID] = &rec
		out = append(out, rec)
	}
	return out, nil
}

func (repo *attendanceRepository) QueryAllAttendances(ctx context.Context, opts core.ListOptions) ([]school.Attendance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	recs := make([]school.Attendance, 0, len(repo.db.table))
	for _, r := range repo.db.table {
		recs = append(recs, *r)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Date.Before(recs[j].Date) })
	lo, hi := opts.Bounds(len(recs))
	return recs[lo:hi], nil
}

// Event

type eventRepository struct {
	db *eventTable
}

var _ school.EventRepository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *DB) school.EventRepository {
	return &eventRepository{db: db.event}
}

func (repo *eventRepository) CreateEvent(ctx context.Context, evt school.Event) (school.Event, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	evt.ID = primitive.NewObjectID()
	repo.db.table[evt.ID] = &evt
	return evt, nil
}

func (repo *eventRepository) QueryAllEvents(ctx context.Context, opts core.ListOptions) ([]school.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	evts := make([]school.Event, 0, len(repo.db.table))
	for _, e := range repo.db.table {
		evts = append(evts, *e)
	}
	sort.Slice(evts, func(i, j int) bool { return evts[i].Date.Before(evts[j].Date) })
	lo, hi := opts.Bounds(len(evts))
	return evts[lo:hi], nil
}

// Rating

type ratingRepository struct {
	db *ratingTable
}

var _ school.RatingRepository = (*ratingRepository)(nil) // interface compliance check

func NewRatingRepository(db *DB) school.RatingRepository {
	return &ratingRepository{db: db.rating}
}

func (repo *ratingRepository) CreateRating(ctx context.Context, rtg school.Rating) (school.Rating, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rtg.ID = primitive.NewObjectID()
	repo.db.table[rtg.ID] = &rtg
	return rtg, nil
}

func (repo *ratingRepository) QueryAllRatings(ctx context.Context, opts core.ListOptions) ([]school.Rating, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rtgs := make([]school.Rating, 0, len(repo.db.table))
	for _, r := range repo.db.table {
		rtgs = append(rtgs, *r)
	}
	// newest first
	sort.Slice(rtgs, func(i, j int) bool { return rtgs[i].CreatedAt.After(rtgs[j].CreatedAt) })
	lo, hi := opts.Bounds(len(rtgs))
	return rtgs[lo:hi], nil
}
