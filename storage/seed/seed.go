// Package seed fills a catalog repository with the demo catalog.
package seed

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/katalog/core"
	"github.com/trezcool/katalog/core/catalog"
	appfs "github.com/trezcool/katalog/fs"
)

type (
	document struct {
		Subjects []subject  `yaml:"subjects"`
		Students []student  `yaml:"students"`
		Projects []project  `yaml:"projects"` // newest first
		Feedback []feedback `yaml:"feedback"`
	}

	subject struct {
		ID   string `yaml:"id"`
		Code string `yaml:"code"`
		Name string `yaml:"name"`
	}

	student struct {
		ID    string `yaml:"id"`
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
	}

	project struct {
		ID              string   `yaml:"id"`
		Title           string   `yaml:"title"`
		Description     string   `yaml:"description"`
		FullDescription string   `yaml:"full_description"`
		AcademicYear    string   `yaml:"academic_year"`
		SubjectID       string   `yaml:"subject_id"`
		Tags            []string `yaml:"tags"`
		AuthorIDs       []string `yaml:"author_ids"`
		GithubURL       *string  `yaml:"github_url"`
		LiveURL         *string  `yaml:"live_url"`
		ImageURL        *string  `yaml:"image_url"`
	}

	feedback struct {
		ID            string `yaml:"id"`
		ProjectID     string `yaml:"project_id"`
		FromStudentID string `yaml:"from_student_id"`
		ToStudentID   string `yaml:"to_student_id"`
		Strengths     string `yaml:"strengths"`
		Improvements  string `yaml:"improvements"`
		CreatedAt     string `yaml:"created_at"`
	}
)

// Read parses a YAML seed document into a catalog snapshot.
func Read(r io.Reader) (catalog.Snapshot, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return catalog.Snapshot{}, errors.Wrap(err, "decoding seed")
	}

	snap := catalog.Snapshot{
		Subjects: make([]catalog.Subject, 0, len(doc.Subjects)),
		Students: make([]catalog.Student, 0, len(doc.Students)),
		Projects: make([]catalog.Project, 0, len(doc.Projects)),
		Feedback: make([]catalog.Feedback, 0, len(doc.Feedback)),
	}
	for _, s := range doc.Subjects {
		snap.Subjects = append(snap.Subjects, catalog.Subject(s))
	}
	for _, s := range doc.Students {
		snap.Students = append(snap.Students, catalog.Student(s))
	}
	for _, p := range doc.Projects {
		snap.Projects = append(snap.Projects, catalog.Project{
			ID:              p.ID,
			Title:           p.Title,
			Description:     p.Description,
			FullDescription: p.FullDescription,
			AcademicYear:    p.AcademicYear,
			SubjectID:       p.SubjectID,
			Tags:            nonNil(p.Tags),
			AuthorIDs:       nonNil(p.AuthorIDs),
			GithubURL:       null.StringFromPtr(p.GithubURL),
			LiveURL:         null.StringFromPtr(p.LiveURL),
			ImageURL:        null.StringFromPtr(p.ImageURL),
		})
	}
	for _, f := range doc.Feedback {
		snap.Feedback = append(snap.Feedback, catalog.Feedback(f))
	}
	return snap, nil
}

// Load reads conf.SeedFile, or the embedded demo catalog when it is not set.
func Load(conf *core.Config) (catalog.Snapshot, error) {
	var (
		rdr io.ReadCloser
		err error
	)
	if conf.SeedFile != "" {
		rdr, err = os.Open(conf.SeedFile)
	} else {
		rdr, err = appfs.FS.Open(appfs.SeedFile)
	}
	if err != nil {
		return catalog.Snapshot{}, errors.Wrap(err, "opening seed")
	}
	//goland:noinspection GoUnhandledErrorResult
	defer rdr.Close()

	return Read(rdr)
}

// Apply stores snap in repo, keeping the ids and the order of every collection.
func Apply(repo catalog.Repository, snap catalog.Snapshot) error {
	for _, s := range snap.Subjects {
		if _, err := repo.CreateSubject(s); err != nil {
			return errors.Wrap(err, "seeding subjects")
		}
	}
	for _, s := range snap.Students {
		if _, err := repo.CreateStudent(s); err != nil {
			return errors.Wrap(err, "seeding students")
		}
	}
	// projects are prepended: insert the oldest first
	for i := len(snap.Projects) - 1; i >= 0; i-- {
		if _, err := repo.CreateProject(snap.Projects[i]); err != nil {
			return errors.Wrap(err, "seeding projects")
		}
	}
	for _, f := range snap.Feedback {
		if _, err := repo.CreateFeedback(f); err != nil {
			return errors.Wrap(err, "seeding feedback")
		}
	}
	return nil
}

func nonNil(vals []string) []string {
	if vals == nil {
		return []string{}
	}
	return vals
}
