package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/assignment"
)

type assignmentApi struct {
	svc *assignment.Service
}

func registerAssignmentAPI(g *echo.Group, svc *assignment.Service) {
	api := assignmentApi{svc: svc}

	ag := g.Group("/assignments")
	ag.POST("/create", api.create)
	ag.GET("/getall", api.query)
	ag.GET("/:id", api.retrieve)
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	principal, err := getContextPrincipal(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context principal")
	}

	asgmt, err := api.svc.Create(ctx.Request().Context(), data, principal)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"success":    true,
		"assignment": asgmt,
		"message":    "Assignment created successfully",
	})
}

func (api *assignmentApi) query(ctx echo.Context) error {
	var filter assignment.QueryFilter
	var opts core.ListOptions
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	if err := ctx.Bind(&opts); err != nil {
		return errors.Wrap(err, "binding to ListOptions")
	}

	asgmts, err := api.svc.Query(ctx.Request().Context(), filter, opts)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"assignments": asgmts,
	})
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	asgmt, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting assignment")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"assignment": asgmt,
	})
}
