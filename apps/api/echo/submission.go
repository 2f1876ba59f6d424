package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/submission"
)

// uploadFieldName is the multipart form field carrying the attachment.
const uploadFieldName = "submissionFile"

type submissionApi struct {
	svc *submission.Service
}

func registerSubmissionAPI(g *echo.Group, svc *submission.Service) {
	api := submissionApi{svc: svc}

	sg := g.Group("/submissions")
	sg.POST("/assignments/:assignmentId/submit", api.submit)
	sg.GET("/assignment/:assignmentId", api.queryByAssignment)
	sg.GET("/getall", api.queryAll)
	sg.POST("/grade/:id", api.grade)
}

func (api *submissionApi) submit(ctx echo.Context) error {
	var data submission.NewSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}

	fh, err := ctx.FormFile(uploadFieldName)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			fh = nil
		} else {
			return errors.Wrap(err, "reading upload")
		}
	}

	sub, err := api.svc.Submit(ctx.Request().Context(), ctx.Param("assignmentId"), data, fh)
	if err != nil {
		return errors.Wrap(err, "submitting assignment")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"success":    true,
		"submission": sub,
		"message":    "Assignment submitted successfully",
	})
}

func (api *submissionApi) queryByAssignment(ctx echo.Context) error {
	subs, err := api.svc.QueryByAssignment(ctx.Request().Context(), ctx.Param("assignmentId"))
	if err != nil {
		return errors.Wrap(err, "querying submissions by assignment")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"submissions": subs,
	})
}

func (api *submissionApi) queryAll(ctx echo.Context) error {
	var opts core.ListOptions
	if err := ctx.Bind(&opts); err != nil {
		return errors.Wrap(err, "binding to ListOptions")
	}

	subs, err := api.svc.QueryAll(ctx.Request().Context(), opts)
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"submissions": subs,
	})
}

func (api *submissionApi) grade(ctx echo.Context) error {
	var data submission.GradeSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GradeSubmission")
	}

	sub, err := api.svc.SetGrade(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "grading submission")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"submission": sub,
		"message":    "Submission graded successfully",
	})
}
