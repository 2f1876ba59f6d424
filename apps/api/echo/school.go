package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/school"
)

// Class

type classApi struct {
	svc *school.ClassService
}

func registerClassAPI(g *echo.Group, svc *school.ClassService) {
	api := classApi{svc: svc}

	cg := g.Group("/class")
	cg.POST("", api.create)
	cg.GET("/getall", api.query)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
}

func (api *classApi) create(ctx echo.Context) error {
	var data school.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cls, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"class":   cls,
		"message": "Class created successfully",
	})
}

func (api *classApi) query(ctx echo.Context) error {
	var opts core.ListOptions
	if err := ctx.Bind(&opts); err != nil {
		return errors.Wrap(err, "binding to ListOptions")
	}

	classes, err := api.svc.Query(ctx.Request().Context(), opts)
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"classes": classes,
	})
}

func (api *classApi) retrieve(ctx echo.Context) error {
	cls, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting class")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"class":   cls,
	})
}

func (api *classApi) update(ctx echo.Context) error {
	var data school.UpdateClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClass")
	}

	cls, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating class")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"class":   cls,
		"message": "Class updated successfully",
	})
}

func (api *classApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting class")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Class deleted successfully",
	})
}

// Exam

type examApi struct {
	svc *school.ExamService
}

func registerExamAPI(g *echo.Group, svc *school.ExamService) {
	api := examApi{svc: svc}

	eg := g.Group("/exams")
	eg.POST("", api.create)
	eg.GET("/getall", api.query)
	eg.GET("/:id", api.retrieve)
	eg.PUT("/:id", api.update)
	eg.DELETE("/:id", api.destroy)
}

func (api *examApi) create(ctx echo.Context) error {
	var data school.NewExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExam")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	exam, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating exam")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"exam":    exam,
		"message": "Exam created successfully",
	})
}

func (api *examApi) query(ctx echo.Context) error {
	var opts core.ListOptions
	if err := ctx.Bind(&opts); err != nil {
		return errors.Wrap(err, "binding to ListOptions")
	}

	exams, err := api.svc.Query(ctx.Request().Context(), opts)
	if err != nil {
		return errors.Wrap(err, "querying exams")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"exams":   exams,
	})
}

func (api *examApi) retrieve(ctx echo.Context) error {
	exam, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting exam")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"exam":    exam,
	})
}

func (api *examApi) update(ctx echo.Context) error {
	var data school.UpdateExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateExam")
	}

	exam, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating exam")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"exam":    exam,
		"message": "Exam updated successfully",
	})
}

func (api *examApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting exam")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Exam deleted successfully",
	})
}

// Library

type libraryApi struct {
	svc *school.LibraryService
}

func registerLibraryAPI(g *echo.Group, svc *school.LibraryService) {
	api := libraryApi{svc: svc}

	lg := g.Group("/library")
	lg.POST("", api.create)
	lg.GET("/getall", api.query)
	lg.GET("/:id", api.retrieve)
	lg.PUT("/:id", api.update)
	lg.DELETE("/:id", api.destroy)
}

func (api *libraryApi) create(ctx echo.Context) error {
	var data school.NewBook
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBook")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	book, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating book")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"book":    book,
		"message": "Book added successfully",
	})
}

func (api *libraryApi) query(ctx echo.Context) error {
	var opts core.ListOptions
	if err := ctx.Bind(&opts); err != nil {
		return errors.Wrap(err, "binding to ListOptions")
	}

	books, err := api.svc.Query(ctx.Request().Context(), opts)
	if err != nil {
		return errors.Wrap(err, "querying books")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"books":   books,
	})
}

func (api *libraryApi) retrieve(ctx echo.Context) error {
	book, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting book")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"book":    book,
	})
}

func (api *libraryApi) update(ctx echo.Context) error {
	var data school.UpdateBook
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateBook")
	}

	book, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating book")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"book":    book,
		"message": "Book updated successfully",
	})
}

func (api *libraryApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting book")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Book deleted successfully",
	})
}

// Announcement

type announcementApi struct {
	svc *school.AnnouncementService
}

func registerAnnouncementAPI(g *echo.Group, svc *school.AnnouncementService) {
	api := announcementApi{svc: svc}

	ag := g.Group("/announcements")
	ag.POST("", api.create)
	ag.GET("/getall", api.query)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
	ag.PATCH("/markasread/:id", api.markAsRead)
}

func (api *announcementApi) create(ctx echo.Context) error {
	var data school.NewAnnouncement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAnnouncement")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ann, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating announcement")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"success":      true,
		"announcement": ann,
		"message":      "Announcement created successfully",
	})
}

func (api *announcementApi) query(ctx echo.Context) error {
	var opts core.ListOptions
	if err := ctx.Bind(&opts); err != nil {
		return errors.Wrap(err, "binding to ListOptions")
	}

	anns, err := api.svc.Query(ctx.Request().Context(), opts)
	if err != nil {
		return errors.Wrap(err, "querying announcements")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success":       true,
		"announcements": anns,
	})
}

func (api *announcementApi) update(ctx echo.Context) error {
	var data school.UpdateAnnouncement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAnnouncement")
	}

	ann, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating announcement")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"announcement": ann,
		"message":      "Announcement updated successfully",
	})
}

func (api *announcementApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting announcement")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Announcement deleted successfully",
	})
}

func (api *announcementApi) markAsRead(ctx echo.Context) error {
	ann, err := api.svc.MarkAsRead(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "marking announcement as read")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"announcement": ann,
	})
}

// Attendance

type attendanceApi struct {
	svc *school.AttendanceService
}

type bulkAttendanceRequest struct {
	AttendanceData []school.NewAttendance `json:"attendanceData"`
}

func registerAttendanceAPI(g *echo.Group, svc *school.AttendanceService) {
	api := attendanceApi{svc: svc}

	ag := g.Group("/attendance")
	ag.POST("", api.bulkCreate)
	ag.GET("/getall", api.query)
}

func (api *attendanceApi) bulkCreate(ctx echo.Context) error {
	var data bulkAttendanceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to bulkAttendanceRequest")
	}

	recs, err := api.svc.BulkCreate(ctx.Request().Context(), data.AttendanceData)
	if err != nil {
		return errors.Wrap(err, "recording attendance")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"success":    true,
		"attendance": recs,
		"message":    "Attendance recorded successfully",
	})
}

func (api *attendanceApi) query(ctx echo.Context) error {
	var opts core.ListOptions
	if err := ctx.Bind(&opts); err != nil {
		return errors.Wrap(err, "binding to ListOptions")
	}

	recs, err := api.svc.Query(ctx.Request().Context(), opts)
	if err != nil {
		return errors.Wrap(err, "querying attendance records")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"attendance": recs,
	})
}

// Event

type eventApi struct {
	svc *school.EventService
}

func registerEventAPI(g *echo.Group, svc *school.EventService) {
	api := eventApi{svc: svc}

	eg := g.Group("/events")
	eg.POST("", api.create)
	eg.GET("/getall", api.query)
}

func (api *eventApi) create(ctx echo.Context) error {
	var data school.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	evt, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"event":   evt,
		"message": "Event created successfully",
	})
}

func (api *eventApi) query(ctx echo.Context) error {
	var opts core.ListOptions
	if err := ctx.Bind(&opts); err != nil {
		return errors.Wrap(err, "binding to ListOptions")
	}

	evts, err := api.svc.Query(ctx.Request().Context(), opts)
	if err != nil {
		return errors.Wrap(err, "querying events")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"events":  evts,
	})
}

// Rating

type ratingApi struct {
	svc *school.RatingService
}

func registerRatingAPI(g *echo.Group, svc *school.RatingService) {
	api := ratingApi{svc: svc}

	rg := g.Group("/ratings")
	rg.POST("", api.create)
	rg.GET("/getall", api.query)
}

func (api *ratingApi) create(ctx echo.Context) error {
	var data school.NewRating
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRating")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	rtg, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating rating")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"rating":  rtg,
		"message": "Rating submitted successfully",
	})
}

func (api *ratingApi) query(ctx echo.Context) error {
	var opts core.ListOptions
	if err := ctx.Bind(&opts); err != nil {
		return errors.Wrap(err, "binding to ListOptions")
	}

	rtgs, err := api.svc.Query(ctx.Request().Context(), opts)
	if err != nil {
		return errors.Wrap(err, "querying ratings")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"ratings": rtgs,
	})
}
