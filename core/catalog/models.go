package catalog

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/katalog/core"
)

// All matches every subject or every academic year in a ProjectFilter.
const All = "all"

// DateLayout is the date-only format of Feedback.CreatedAt.
const DateLayout = "2006-01-02"

// ID prefixes
const (
	subjectPrefix  = "s"
	studentPrefix  = "u"
	projectPrefix  = "p"
	feedbackPrefix = "f"
)

// Subject is an academic course that projects are categorized under.
type Subject struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Project is a student team's submitted work.
// SubjectID and AuthorIDs are weak references: they may point to nothing.
type Project struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	FullDescription string      `json:"full_description"`
	AcademicYear    string      `json:"academic_year"`
	SubjectID       string      `json:"subject_id"`
	Tags            []string    `json:"tags"`
	AuthorIDs       []string    `json:"author_ids"`
	GithubURL       null.String `json:"github_url"`
	LiveURL         null.String `json:"live_url"`
	ImageURL        null.String `json:"image_url"`
}

// HasAuthor reports whether studentID is one of the project's authors.
func (p Project) HasAuthor(studentID string) bool {
	for _, id := range p.AuthorIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// Feedback is a directed peer review: FromStudentID evaluates ToStudentID within ProjectID.
type Feedback struct {
	ID            string `json:"id"`
	ProjectID     string `json:"project_id"`
	FromStudentID string `json:"from_student_id"`
	ToStudentID   string `json:"to_student_id"`
	Strengths     string `json:"strengths"`
	Improvements  string `json:"improvements"`
	CreatedAt     string `json:"created_at"` // YYYY-MM-DD
}

// Snapshot is a read-only view of the four collections.
// Projects are newest first, everything else in insertion order.
type Snapshot struct {
	Subjects []Subject
	Students []Student
	Projects []Project
	Feedback []Feedback
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Code string `json:"code" validate:"notblank"`
	Name string `json:"name" validate:"notblank"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Code = strings.ToUpper(core.CleanString(ns.Code))
	ns.Name = core.CleanString(ns.Name)
	return validate.Struct(ns)
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"notblank,email"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return validate.Struct(ns)
}

// NewProject contains information needed to create a new Project.
// TagInput is the comma separated alternative to Tags.
type NewProject struct {
	Title           string      `json:"title" validate:"notblank"`
	Description     string      `json:"description" validate:"max=150"`
	FullDescription string      `json:"full_description"`
	AcademicYear    string      `json:"academic_year" validate:"omitempty,academic_year"`
	SubjectID       string      `json:"subject_id" validate:"notblank"`
	Tags            []string    `json:"tags"`
	TagInput        string      `json:"tag_input"`
	AuthorIDs       []string    `json:"author_ids"`
	GithubURL       null.String `json:"github_url" validate:"omitempty,url"`
	LiveURL         null.String `json:"live_url" validate:"omitempty,url"`
	ImageURL        null.String `json:"image_url" validate:"omitempty,url"`
}

func (np *NewProject) Validate(validate *validator.Validate) error {
	np.Title = core.CleanString(np.Title)
	np.Description = core.CleanString(np.Description)
	np.FullDescription = core.CleanString(np.FullDescription)
	np.AcademicYear = core.CleanString(np.AcademicYear)
	np.SubjectID = core.CleanString(np.SubjectID)

	tags := make([]string, 0, len(np.Tags))
	for _, tag := range np.Tags {
		if tag = core.CleanString(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	np.Tags = append(tags, core.SplitList(np.TagInput)...)
	np.TagInput = ""
	np.AuthorIDs = core.UniqueStrings(np.AuthorIDs)

	return validate.Struct(np)
}

// NewFeedback contains information needed to create a new Feedback.
type NewFeedback struct {
	ProjectID     string `json:"project_id" validate:"notblank"`
	FromStudentID string `json:"from_student_id" validate:"notblank"`
	ToStudentID   string `json:"to_student_id" validate:"notblank"`
	Strengths     string `json:"strengths" validate:"notblank"`
	Improvements  string `json:"improvements" validate:"notblank"`
}

func (nf *NewFeedback) Validate(validate *validator.Validate) error {
	nf.Strengths = core.CleanString(nf.Strengths)
	nf.Improvements = core.CleanString(nf.Improvements)
	return validate.Struct(nf)
}

// ProjectFilter holds the browser's filter state. Empty Subject/Year behave like All.
type ProjectFilter struct {
	Subject string `json:"subject" query:"subject"`
	Year    string `json:"year" query:"year"`
	Search  string `json:"search" query:"search"`
}

// DefaultFilter matches every project.
func DefaultFilter() ProjectFilter {
	return ProjectFilter{Subject: All, Year: All}
}

func (f *ProjectFilter) Clean() {
	f.Subject = core.CleanString(f.Subject)
	f.Year = core.CleanString(f.Year)
	f.Search = core.CleanString(f.Search)
	if f.Subject == "" {
		f.Subject = All
	}
	if f.Year == "" {
		f.Year = All
	}
}
