package echoapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/assignment"
	"github.com/gradia/gradia/core/school"
	"github.com/gradia/gradia/core/student"
	"github.com/gradia/gradia/core/submission"
	"github.com/gradia/gradia/core/teacher"
)

type (
	Options struct {
		Conf   *core.Config
		Logger core.Logger

		// Principal is injected on every request. It stands in for the
		// authenticated caller until real authentication lands.
		Principal core.Principal

		// SignalShutdown triggers a graceful shutdown when an unrecoverable
		// error bubbles up to the error handler.
		SignalShutdown func()

		AssignmentSvc   *assignment.Service
		SubmissionSvc   *submission.Service
		StudentSvc      *student.Service
		TeacherSvc      *teacher.Service
		ClassSvc        *school.ClassService
		ExamSvc         *school.ExamService
		LibrarySvc      *school.LibraryService
		AnnouncementSvc *school.AnnouncementService
		AttendanceSvc   *school.AttendanceService
		EventSvc        *school.EventService
		RatingSvc       *school.RatingService
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{conf.FrontendOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
	}))
	if !conf.TestMode {
		s.app.Use(middleware.RateLimiterWithConfig(rateLimiterConfig(conf)))
	}
	s.app.Use(principalMiddleware(s.opts.Principal))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.SignalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/health", health)
	s.app.GET("/test-cors", testCORS)
	s.app.Static("/uploads", conf.UploadDir)

	v1 := s.app.Group("/api/v1")
	registerAssignmentAPI(v1, s.opts.AssignmentSvc)
	registerSubmissionAPI(v1, s.opts.SubmissionSvc)
	registerStudentAPI(v1, s.opts.StudentSvc)
	registerTeacherAPI(v1, s.opts.TeacherSvc)
	registerClassAPI(v1, s.opts.ClassSvc)
	registerExamAPI(v1, s.opts.ExamSvc)
	registerLibraryAPI(v1, s.opts.LibrarySvc)
	registerAnnouncementAPI(v1, s.opts.AnnouncementSvc)
	registerAttendanceAPI(v1, s.opts.AttendanceSvc)
	registerEventAPI(v1, s.opts.EventSvc)
	registerRatingAPI(v1, s.opts.RatingSvc)
}

func rateLimiterConfig(conf *core.Config) middleware.RateLimiterConfig {
	window := conf.RateLimit.Window
	if window <= 0 {
		window = 15 * time.Minute
	}
	return middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(conf.RateLimit.Requests) / window.Seconds()),
			Burst:     conf.RateLimit.Requests,
			ExpiresIn: window,
		}),
	}
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Conf.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func testCORS(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"message": "CORS is working!"})
}
