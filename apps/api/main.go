package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	echoapi "github.com/gradia/gradia/apps/api/echo"
	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/assignment"
	"github.com/gradia/gradia/core/school"
	"github.com/gradia/gradia/core/student"
	"github.com/gradia/gradia/core/submission"
	"github.com/gradia/gradia/core/teacher"
	logsvc "github.com/gradia/gradia/services/logger"
	"github.com/gradia/gradia/storage/database/mongodb"
	"github.com/gradia/gradia/storage/files"
)

const shutdownTimeout = 20 * time.Second

func main() {
	conf := core.LoadConfig()

	std := log.New(os.Stdout, conf.AppName+" ", log.LstdFlags|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	ctx := context.Background()

	// set up DB
	db, err := mongodb.Open(ctx, conf.Database.URL, conf.Database.Name)
	errAndDie(err)
	defer db.Close(ctx)
	errAndDie(db.EnsureIndexes(ctx))

	// set up upload storage
	fileStore, err := files.NewStore(filepath.Join(conf.UploadDir, "assignments"), "/uploads/assignments")
	errAndDie(err)

	// set up repositories
	assignmentRepo := mongodb.NewAssignmentRepository(db)
	submissionRepo := mongodb.NewSubmissionRepository(db)
	studentRepo := mongodb.NewStudentRepository(db)
	teacherRepo := mongodb.NewTeacherRepository(db)

	// system principal; replaced per-request once authentication lands
	principal := core.Principal{
		ID:    primitive.NewObjectID(),
		Name:  "System Teacher",
		Roles: []string{core.RoleTeacher},
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Conf:           conf,
			Logger:         logger,
			Principal:      principal,
			SignalShutdown: func() { shutdown <- syscall.SIGTERM },

			AssignmentSvc:   assignment.NewService(assignmentRepo),
			SubmissionSvc:   submission.NewService(submissionRepo, assignmentRepo, studentRepo, fileStore),
			StudentSvc:      student.NewService(studentRepo),
			TeacherSvc:      teacher.NewService(teacherRepo),
			ClassSvc:        school.NewClassService(mongodb.NewClassRepository(db)),
			ExamSvc:         school.NewExamService(mongodb.NewExamRepository(db)),
			LibrarySvc:      school.NewLibraryService(mongodb.NewLibraryRepository(db)),
			AnnouncementSvc: school.NewAnnouncementService(mongodb.NewAnnouncementRepository(db)),
			AttendanceSvc:   school.NewAttendanceService(mongodb.NewAttendanceRepository(db)),
			EventSvc:        school.NewEventService(mongodb.NewEventRepository(db)),
			RatingSvc:       school.NewRatingService(mongodb.NewRatingRepository(db)),
		},
	)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening on " + conf.Address)
		serverErrors <- app.Start()
	}()

	select {
	case err := <-serverErrors:
		logger.Fatal("server error", err)
	case sig := <-shutdown:
		logger.Info("shutting down", sig)

		stopCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			logger.Fatal("graceful shutdown failed", err)
		}
	}
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
