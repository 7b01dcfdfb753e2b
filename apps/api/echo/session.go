package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/katalog/core"
	"github.com/trezcool/katalog/core/catalog"
	"github.com/trezcool/katalog/core/session"
)

type (
	sessionApi struct {
		sess *session.Session
	}

	roleRequest struct {
		Role string `json:"role"`
	}

	roleResponse struct {
		Role session.Role `json:"role"`
	}

	authorsResponse struct {
		PendingAuthors []string `json:"pending_authors"`
	}
)

func registerSessionAPI(g *echo.Group, deps ServerDeps) {
	api := sessionApi{sess: deps.Session}

	sg := g.Group("/session")
	sg.GET("/role", api.retrieveRole)
	sg.PUT("/role", api.updateRole)
	sg.GET("/view", api.retrieveView)
	sg.PUT("/filter", api.updateFilter)
	sg.DELETE("/filter", api.resetFilter)

	lecturer := roleMiddleware(api.sess, session.RoleLecturer)
	sg.PUT("/authors/:id", api.toggleAuthor, lecturer)

	student := roleMiddleware(api.sess, session.RoleStudent)
	sg.GET("/draft", api.retrieveDraft, student)
	sg.PUT("/draft", api.updateDraft, student)
	sg.POST("/draft/submit", api.submitDraft, student)
	sg.GET("/feedback/sent", api.querySentFeedback, student)
	sg.GET("/feedback/received", api.queryReceivedFeedback, student)
}

// Handlers

func (api *sessionApi) retrieveRole(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, roleResponse{Role: api.sess.Role()})
}

func (api *sessionApi) updateRole(ctx echo.Context) error {
	var data roleRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to roleRequest")
	}
	role, err := session.ParseRole(data.Role)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "role", Error: err.Error()})
	}

	api.sess.SelectRole(role)
	return ctx.JSON(http.StatusOK, roleResponse{Role: role})
}

func (api *sessionApi) retrieveView(ctx echo.Context) error {
	view, err := api.sess.View()
	if err != nil {
		return errors.Wrap(err, "computing view")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *sessionApi) updateFilter(ctx echo.Context) error {
	var data catalog.ProjectFilter
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProjectFilter")
	}
	return ctx.JSON(http.StatusOK, api.sess.SetFilter(data))
}

func (api *sessionApi) resetFilter(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.sess.ResetFilter())
}

func (api *sessionApi) toggleAuthor(ctx echo.Context) error {
	authors, err := api.sess.ToggleAuthor(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "toggling author")
	}
	return ctx.JSON(http.StatusOK, authorsResponse{PendingAuthors: authors})
}

func (api *sessionApi) retrieveDraft(ctx echo.Context) error {
	draft, err := api.sess.Draft()
	if err != nil {
		return errors.Wrap(err, "getting draft")
	}
	return ctx.JSON(http.StatusOK, draft)
}

func (api *sessionApi) updateDraft(ctx echo.Context) error {
	var data session.DraftUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DraftUpdate")
	}

	draft, err := api.sess.UpdateDraft(data)
	if err != nil {
		return errors.Wrap(err, "updating draft")
	}
	return ctx.JSON(http.StatusOK, draft)
}

func (api *sessionApi) submitDraft(ctx echo.Context) error {
	fb, err := api.sess.SubmitFeedback()
	if err != nil {
		return errors.Wrap(err, "submitting feedback")
	}
	return ctx.JSON(http.StatusCreated, fb)
}

func (api *sessionApi) querySentFeedback(ctx echo.Context) error {
	entries, err := api.sess.SentFeedback()
	if err != nil {
		return errors.Wrap(err, "querying sent feedback")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *sessionApi) queryReceivedFeedback(ctx echo.Context) error {
	entries, err := api.sess.ReceivedFeedback()
	if err != nil {
		return errors.Wrap(err, "querying received feedback")
	}
	return ctx.JSON(http.StatusOK, entries)
}
