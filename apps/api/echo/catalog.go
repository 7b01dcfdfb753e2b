package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/katalog/core/catalog"
	"github.com/trezcool/katalog/core/session"
)

type catalogApi struct {
	svc  *catalog.Service
	sess *session.Session
}

func registerCatalogAPI(g *echo.Group, deps ServerDeps) {
	api := catalogApi{
		svc:  deps.CatalogSvc,
		sess: deps.Session,
	}
	lecturer := roleMiddleware(api.sess, session.RoleLecturer)

	g.GET("/projects", api.queryProjects)
	g.GET("/projects/:id", api.retrieveProject)
	g.POST("/projects", api.createProject, lecturer)

	g.GET("/years", api.queryYears)

	g.GET("/subjects", api.querySubjects)
	g.POST("/subjects", api.createSubject, lecturer)

	g.GET("/students", api.queryStudents)
	g.POST("/students", api.createStudent, lecturer)

	g.GET("/feedback", api.queryFeedback, lecturer)
}

// Handlers

func (api *catalogApi) queryProjects(ctx echo.Context) error {
	var filter catalog.ProjectFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to ProjectFilter")
	}
	filter.Clean()

	snap, err := api.svc.Snapshot()
	if err != nil {
		return errors.Wrap(err, "taking catalog snapshot")
	}
	return ctx.JSON(http.StatusOK, session.BuildPublicView(snap, filter).Projects)
}

func (api *catalogApi) retrieveProject(ctx echo.Context) error {
	snap, err := api.svc.Snapshot()
	if err != nil {
		return errors.Wrap(err, "taking catalog snapshot")
	}
	proj, ok := catalog.ProjectByID(snap.Projects, ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, session.NewProjectCard(proj, snap))
}

func (api *catalogApi) createProject(ctx echo.Context) error {
	var data catalog.NewProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProject")
	}

	proj, err := api.sess.AddProject(data)
	if err != nil {
		return errors.Wrap(err, "creating project")
	}
	return ctx.JSON(http.StatusCreated, proj)
}

func (api *catalogApi) queryYears(ctx echo.Context) error {
	projects, err := api.svc.Projects()
	if err != nil {
		return errors.Wrap(err, "querying projects")
	}
	return ctx.JSON(http.StatusOK, catalog.DistinctAcademicYears(projects))
}

func (api *catalogApi) querySubjects(ctx echo.Context) error {
	subjects, err := api.svc.Subjects()
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *catalogApi) createSubject(ctx echo.Context) error {
	var data catalog.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}

	subj, err := api.sess.AddSubject(data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, subj)
}

func (api *catalogApi) queryStudents(ctx echo.Context) error {
	students, err := api.svc.Students()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *catalogApi) createStudent(ctx echo.Context) error {
	var data catalog.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}

	std, err := api.sess.AddStudent(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, std)
}

func (api *catalogApi) queryFeedback(ctx echo.Context) error {
	groups, err := api.sess.AllFeedback()
	if err != nil {
		return errors.Wrap(err, "querying feedback")
	}
	return ctx.JSON(http.StatusOK, groups)
}
