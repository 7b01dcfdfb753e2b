package catalog

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/katalog/core"
)

var (
	// errors
	ErrNotFound    = errors.New("not found")
	ErrIDExists    = errors.New("an entry with this id already exists")
	ErrSelfReview  = errors.New("a student cannot review themselves")
	ErrNotTeammate = errors.New("not a teammate on this project")
)

type (
	// Repository holds the four collections. Projects are stored newest first,
	// everything else in insertion order. Returned slices must not be modified.
	Repository interface {
		CreateSubject(subj Subject) (Subject, error)
		CreateStudent(std Student) (Student, error)
		CreateProject(proj Project) (Project, error) // prepends
		CreateFeedback(fb Feedback) (Feedback, error)
		QueryAllSubjects() ([]Subject, error)
		QueryAllStudents() ([]Student, error)
		QueryAllProjects() ([]Project, error)
		QueryAllFeedback() ([]Feedback, error)
		GetProjectByID(id string) (Project, error)
		GetStudentByID(id string) (Student, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
		conf     *core.Config
	}
)

func NewService(repo Repository, validate *validator.Validate, conf *core.Config) *Service {
	return &Service{repo: repo, validate: validate, conf: conf}
}

func (svc *Service) AddSubject(ns NewSubject) (Subject, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Subject{}, err
	}
	id, err := NewID(subjectPrefix)
	if err != nil {
		return Subject{}, err
	}
	return svc.repo.CreateSubject(Subject{ID: id, Code: ns.Code, Name: ns.Name})
}

func (svc *Service) AddStudent(ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Student{}, err
	}
	id, err := NewID(studentPrefix)
	if err != nil {
		return Student{}, err
	}
	return svc.repo.CreateStudent(Student{ID: id, Name: ns.Name, Email: ns.Email})
}

// AddProject validates np and puts the new project in front of the others.
func (svc *Service) AddProject(np NewProject) (Project, error) {
	if err := np.Validate(svc.validate); err != nil {
		return Project{}, err
	}
	id, err := NewID(projectPrefix)
	if err != nil {
		return Project{}, err
	}

	proj := Project{
		ID:              id,
		Title:           np.Title,
		Description:     np.Description,
		FullDescription: np.FullDescription,
		AcademicYear:    np.AcademicYear,
		SubjectID:       np.SubjectID,
		Tags:            np.Tags,
		AuthorIDs:       np.AuthorIDs,
		GithubURL:       np.GithubURL,
		LiveURL:         np.LiveURL,
		ImageURL:        np.ImageURL,
	}
	if proj.AcademicYear == "" {
		proj.AcademicYear = svc.conf.DefaultAcademicYear
	}
	if !proj.ImageURL.Valid && svc.conf.DefaultImageURL != "" {
		proj.ImageURL = null.StringFrom(svc.conf.DefaultImageURL)
	}
	if proj.AuthorIDs == nil {
		proj.AuthorIDs = []string{}
	}
	return svc.repo.CreateProject(proj)
}

// AddFeedback records a peer review dated today.
// Both students must be authors of the project and must differ.
func (svc *Service) AddFeedback(nf NewFeedback) (Feedback, error) {
	if err := nf.Validate(svc.validate); err != nil {
		return Feedback{}, err
	}
	if nf.FromStudentID == nf.ToStudentID {
		return Feedback{}, core.NewValidationError(
			ErrSelfReview,
			core.FieldError{Field: "to_student_id", Error: ErrSelfReview.Error()},
		)
	}

	proj, err := svc.repo.GetProjectByID(nf.ProjectID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Feedback{}, core.NewValidationError(
				err,
				core.FieldError{Field: "project_id", Error: "project not found"},
			)
		}
		return Feedback{}, err
	}
	if !proj.HasAuthor(nf.FromStudentID) {
		return Feedback{}, core.NewValidationError(
			ErrNotTeammate,
			core.FieldError{Field: "from_student_id", Error: ErrNotTeammate.Error()},
		)
	}
	if !proj.HasAuthor(nf.ToStudentID) {
		return Feedback{}, core.NewValidationError(
			ErrNotTeammate,
			core.FieldError{Field: "to_student_id", Error: ErrNotTeammate.Error()},
		)
	}

	id, err := NewID(feedbackPrefix)
	if err != nil {
		return Feedback{}, err
	}
	return svc.repo.CreateFeedback(Feedback{
		ID:            id,
		ProjectID:     nf.ProjectID,
		FromStudentID: nf.FromStudentID,
		ToStudentID:   nf.ToStudentID,
		Strengths:     nf.Strengths,
		Improvements:  nf.Improvements,
		CreatedAt:     Today(),
	})
}

// Snapshot returns the current state of all collections.
func (svc *Service) Snapshot() (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Subjects, err = svc.repo.QueryAllSubjects(); err != nil {
		return Snapshot{}, err
	}
	if snap.Students, err = svc.repo.QueryAllStudents(); err != nil {
		return Snapshot{}, err
	}
	if snap.Projects, err = svc.repo.QueryAllProjects(); err != nil {
		return Snapshot{}, err
	}
	if snap.Feedback, err = svc.repo.QueryAllFeedback(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (svc *Service) Subjects() ([]Subject, error) {
	return svc.repo.QueryAllSubjects()
}

func (svc *Service) Students() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) Projects() ([]Project, error) {
	return svc.repo.QueryAllProjects()
}

func (svc *Service) Feedback() ([]Feedback, error) {
	return svc.repo.QueryAllFeedback()
}

// QueryProjects returns the stored projects matching filter.
func (svc *Service) QueryProjects(filter ProjectFilter) ([]Project, error) {
	projects, err := svc.repo.QueryAllProjects()
	if err != nil {
		return nil, err
	}
	filter.Clean()
	return FilterProjects(projects, filter), nil
}

func (svc *Service) GetProject(id string) (Project, error) {
	return svc.repo.GetProjectByID(core.CleanString(id))
}

func (svc *Service) GetStudent(id string) (Student, error) {
	return svc.repo.GetStudentByID(core.CleanString(id))
}
