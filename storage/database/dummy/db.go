// Package dummydb provides in-memory repositories for tests and local
// development.
package dummydb

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core/assignment"
	"github.com/gradia/gradia/core/school"
	"github.com/gradia/gradia/core/student"
	"github.com/gradia/gradia/core/submission"
	"github.com/gradia/gradia/core/teacher"
)

type (
	DB struct {
		assignment   *assignmentTable
		submission   *submissionTable
		student      *studentTable
		teacher      *teacherTable
		class        *classTable
		exam         *examTable
		library      *libraryTable
		announcement *announcementTable
		attendance   *attendanceTable
		event        *eventTable
		rating       *ratingTable
	}

	assignmentTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*assignment.Assignment
	}
	submissionTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*submission.Submission
	}
	studentTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*student.Student
	}
	teacherTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*teacher.Teacher
	}
	classTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*school.Class
	}
	examTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*school.Exam
	}
	libraryTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*school.Book
	}
	announcementTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*school.Announcement
	}
	attendanceTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*school.Attendance
	}
	eventTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*school.Event
	}
	ratingTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*school.Rating
	}
)

func Open() (*DB, error) {
	db := &DB{
		assignment:   &assignmentTable{table: make(map[primitive.ObjectID]*assignment.Assignment)},
		submission:   &submissionTable{table: make(map[primitive.ObjectID]*submission.Submission)},
		student:      &studentTable{table: make(map[primitive.ObjectID]*student.Student)},
		teacher:      &teacherTable{table: make(map[primitive.ObjectID]*teacher.Teacher)},
		class:        &classTable{table: make(map[primitive.ObjectID]*school.Class)},
		exam:         &examTable{table: make(map[primitive.ObjectID]*school.Exam)},
		library:      &libraryTable{table: make(map[primitive.ObjectID]*school.Book)},
		announcement: &announcementTable{table: make(map[primitive.ObjectID]*school.Announcement)},
		attendance:   &attendanceTable{table: make(map[primitive.ObjectID]*school.Attendance)},
		event:        &eventTable{table: make(map[primitive.ObjectID]*school.Event)},
		rating:       &ratingTable{table: make(map[primitive.ObjectID]*school.Rating)},
	}
	return db, nil
}
