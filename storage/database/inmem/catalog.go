package inmemdb

import (
	"github.com/pkg/errors"

	"github.com/trezcool/katalog/core/catalog"
)

type catalogRepository struct {
	db *DB
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *DB) catalog.Repository {
	return &catalogRepository{db: db}
}

func (repo *catalogRepository) CreateSubject(subj catalog.Subject) (catalog.Subject, error) {
	err := repo.db.subject.insert(subj, false, func(s catalog.Subject) bool { return s.ID == subj.ID })
	if err != nil {
		return catalog.Subject{}, errors.Wrapf(err, "creating subject %q", subj.ID)
	}
	return subj, nil
}

func (repo *catalogRepository) CreateStudent(std catalog.Student) (catalog.Student, error) {
	err := repo.db.student.insert(std, false, func(s catalog.Student) bool { return s.ID == std.ID })
	if err != nil {
		return catalog.Student{}, errors.Wrapf(err, "creating student %q", std.ID)
	}
	return std, nil
}

func (repo *catalogRepository) CreateProject(proj catalog.Project) (catalog.Project, error) {
	err := repo.db.project.insert(proj, true /* prepend */, func(p catalog.Project) bool { return p.ID == proj.ID })
	if err != nil {
		return catalog.Project{}, errors.Wrapf(err, "creating project %q", proj.ID)
	}
	return proj, nil
}

func (repo *catalogRepository) CreateFeedback(fb catalog.Feedback) (catalog.Feedback, error) {
	err := repo.db.feedback.insert(fb, false, func(f catalog.Feedback) bool { return f.ID == fb.ID })
	if err != nil {
		return catalog.Feedback{}, errors.Wrapf(err, "creating feedback %q", fb.ID)
	}
	return fb, nil
}

func (repo *catalogRepository) QueryAllSubjects() ([]catalog.Subject, error) {
	return repo.db.subject.all(), nil
}

func (repo *catalogRepository) QueryAllStudents() ([]catalog.Student, error) {
	return repo.db.student.all(), nil
}

func (repo *catalogRepository) QueryAllProjects() ([]catalog.Project, error) {
	return repo.db.project.all(), nil
}

func (repo *catalogRepository) QueryAllFeedback() ([]catalog.Feedback, error) {
	return repo.db.feedback.all(), nil
}

func (repo *catalogRepository) GetProjectByID(id string) (catalog.Project, error) {
	if proj, ok := repo.db.project.find(func(p catalog.Project) bool { return p.ID == id }); ok {
		return proj, nil
	}
	return catalog.Project{}, catalog.ErrNotFound
}

func (repo *catalogRepository) GetStudentByID(id string) (catalog.Student, error) {
	if std, ok := repo.db.student.find(func(s catalog.Student) bool { return s.ID == id }); ok {
		return std, nil
	}
	return catalog.Student{}, catalog.ErrNotFound
}
