package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/student"
)

type studentApi struct {
	svc *student.Service
}

func registerStudentAPI(g *echo.Group, svc *student.Service) {
	api := studentApi{svc: svc}

	sg := g.Group("/students")
	sg.POST("", api.create)
	sg.GET("/getall", api.query)
	sg.PUT("/:id", api.update)
	sg.GET("/:email", api.retrieveByEmail)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	std, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"student": std,
		"message": "Student created successfully",
	})
}

func (api *studentApi) query(ctx echo.Context) error {
	var opts core.ListOptions
	if err := ctx.Bind(&opts); err != nil {
		return errors.Wrap(err, "binding to ListOptions")
	}

	stds, err := api.svc.Query(ctx.Request().Context(), opts)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"students": stds,
	})
}

func (api *studentApi) update(ctx echo.Context) error {
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}

	std, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"student": std,
		"message": "Student updated successfully",
	})
}

func (api *studentApi) retrieveByEmail(ctx echo.Context) error {
	std, err := api.svc.GetByEmail(ctx.Request().Context(), ctx.Param("email"))
	if err != nil {
		return errors.Wrap(err, "getting student by email")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"student": std,
	})
}
