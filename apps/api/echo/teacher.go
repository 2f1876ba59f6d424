package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/teacher"
)

type teacherApi struct {
	svc *teacher.Service
}

func registerTeacherAPI(g *echo.Group, svc *teacher.Service) {
	api := teacherApi{svc: svc}

	tg := g.Group("/teachers")
	tg.POST("", api.create)
	tg.GET("/getall", api.query)
	tg.PUT("/:id", api.update)
	tg.DELETE("/:id", api.destroy)
	tg.GET("/:email", api.retrieveByEmail)
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tch, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"teacher": tch,
		"message": "Teacher created successfully",
	})
}

func (api *teacherApi) query(ctx echo.Context) error {
	var opts core.ListOptions
	if err := ctx.Bind(&opts); err != nil {
		return errors.Wrap(err, "binding to ListOptions")
	}

	tchs, err := api.svc.Query(ctx.Request().Context(), opts)
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"teachers": tchs,
	})
}

func (api *teacherApi) update(ctx echo.Context) error {
	var data teacher.UpdateTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}

	tch, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"teacher": tch,
		"message": "Teacher updated successfully",
	})
}

func (api *teacherApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Teacher deleted successfully",
	})
}

func (api *teacherApi) retrieveByEmail(ctx echo.Context) error {
	tch, err := api.svc.GetByEmail(ctx.Request().Context(), ctx.Param("email"))
	if err != nil {
		return errors.Wrap(err, "getting teacher by email")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"teacher": tch,
	})
}
