package testutil

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/katalog/core"
	"github.com/trezcool/katalog/core/catalog"
	inmemdb "github.com/trezcool/katalog/storage/database/inmem"
	"github.com/trezcool/katalog/storage/seed"
)

func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func NewValidate() *validator.Validate {
	return core.NewValidate(NewTranslator())
}

// NewRepository returns an empty catalog repository.
func NewRepository() catalog.Repository {
	return inmemdb.NewCatalogRepository(inmemdb.Open())
}

// NewSeededRepository returns a catalog repository holding the demo catalog.
func NewSeededRepository(t *testing.T) catalog.Repository {
	snap, err := seed.Load(core.NewTestConfig())
	if err != nil {
		t.Fatalf("seed.Load() failed: %v", err)
	}
	repo := NewRepository()
	if err = seed.Apply(repo, snap); err != nil {
		t.Fatalf("seed.Apply() failed: %v", err)
	}
	return repo
}

func NewCatalogService(repo catalog.Repository) *catalog.Service {
	return catalog.NewService(repo, NewValidate(), core.NewTestConfig())
}

func CreateSubject(t *testing.T, repo catalog.Repository, id, code, name string) catalog.Subject {
	subj, err := repo.CreateSubject(catalog.Subject{ID: id, Code: code, Name: name})
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}
	return subj
}

func CreateStudent(t *testing.T, repo catalog.Repository, id, name, email string) catalog.Student {
	std, err := repo.CreateStudent(catalog.Student{ID: id, Name: name, Email: email})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func CreateProject(
	t *testing.T,
	repo catalog.Repository,
	id, title, subjectID, year string,
	tags []string,
	authorIDs ...string,
) catalog.Project {
	if tags == nil {
		tags = []string{}
	}
	if authorIDs == nil {
		authorIDs = []string{}
	}
	proj, err := repo.CreateProject(catalog.Project{
		ID:           id,
		Title:        title,
		AcademicYear: year,
		SubjectID:    subjectID,
		Tags:         tags,
		AuthorIDs:    authorIDs,
		ImageURL:     null.StringFrom("https://picsum.photos/400/300"),
	})
	if err != nil {
		t.Fatalf("CreateProject() failed: %v", err)
	}
	return proj
}

func CreateFeedback(t *testing.T, repo catalog.Repository, id, projectID, from, to string) catalog.Feedback {
	fb, err := repo.CreateFeedback(catalog.Feedback{
		ID:            id,
		ProjectID:     projectID,
		FromStudentID: from,
		ToStudentID:   to,
		Strengths:     "strengths of " + to,
		Improvements:  "improvements for " + to,
		CreatedAt:     "2024-05-20",
	})
	if err != nil {
		t.Fatalf("CreateFeedback() failed: %v", err)
	}
	return fb
}
