package catalog

import (
	"sort"

	"github.com/trezcool/katalog/core"
)

// ProjectFeedback groups the feedback given within one project.
type ProjectFeedback struct {
	Project  Project    `json:"project"`
	Feedback []Feedback `json:"feedback"`
}

// DistinctAcademicYears returns the academic years of projects, deduplicated and newest first.
func DistinctAcademicYears(projects []Project) []string {
	seen := make(map[string]struct{}, len(projects))
	years := make([]string, 0, len(projects))
	for _, p := range projects {
		if _, ok := seen[p.AcademicYear]; ok {
			continue
		}
		seen[p.AcademicYear] = struct{}{}
		years = append(years, p.AcademicYear)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}

// FilterProjects applies AND operation on the ProjectFilter fields.
// ProjectFilter.Search does a case-insensitive match on the title or one of the tags.
// The order of projects is kept.
func FilterProjects(projects []Project, filter ProjectFilter) []Project {
	filtered := make([]Project, 0, len(projects))
	for _, p := range projects {
		if filter.Subject != "" && filter.Subject != All && p.SubjectID != filter.Subject {
			continue
		}
		if filter.Year != "" && filter.Year != All && p.AcademicYear != filter.Year {
			continue
		}
		if filter.Search != "" && !matchesSearch(p, filter.Search) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesSearch(p Project, search string) bool {
	if core.ContainsFold(p.Title, search) {
		return true
	}
	for _, tag := range p.Tags {
		if core.ContainsFold(tag, search) {
			return true
		}
	}
	return false
}

// AuthorsOf returns the authors of project in the order students are stored.
func AuthorsOf(project Project, students []Student) []Student {
	authors := make([]Student, 0, len(project.AuthorIDs))
	for _, s := range students {
		if project.HasAuthor(s.ID) {
			authors = append(authors, s)
		}
	}
	return authors
}

func SubjectOf(project Project, subjects []Subject) (Subject, bool) {
	for _, s := range subjects {
		if s.ID == project.SubjectID {
			return s, true
		}
	}
	return Subject{}, false
}

func StudentByID(students []Student, id string) (Student, bool) {
	for _, s := range students {
		if s.ID == id {
			return s, true
		}
	}
	return Student{}, false
}

func ProjectByID(projects []Project, id string) (Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// ProjectsOf returns the projects studentID is an author of.
func ProjectsOf(studentID string, projects []Project) []Project {
	own := make([]Project, 0)
	for _, p := range projects {
		if p.HasAuthor(studentID) {
			own = append(own, p)
		}
	}
	return own
}

// TeammatesOf returns the authors of project other than studentID.
func TeammatesOf(project Project, studentID string, students []Student) []Student {
	mates := make([]Student, 0, len(project.AuthorIDs))
	for _, s := range AuthorsOf(project, students) {
		if s.ID != studentID {
			mates = append(mates, s)
		}
	}
	return mates
}

func FeedbackForProject(feedbacks []Feedback, projectID string) []Feedback {
	return filterFeedback(feedbacks, func(f Feedback) bool { return f.ProjectID == projectID })
}

// FeedbackFrom returns the feedback written by studentID.
func FeedbackFrom(feedbacks []Feedback, studentID string) []Feedback {
	return filterFeedback(feedbacks, func(f Feedback) bool { return f.FromStudentID == studentID })
}

// FeedbackTo returns the feedback addressed to studentID.
func FeedbackTo(feedbacks []Feedback, studentID string) []Feedback {
	return filterFeedback(feedbacks, func(f Feedback) bool { return f.ToStudentID == studentID })
}

func filterFeedback(feedbacks []Feedback, keep func(Feedback) bool) []Feedback {
	filtered := make([]Feedback, 0)
	for _, f := range feedbacks {
		if keep(f) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// FeedbackByProject groups feedbacks per project, skipping projects without any.
// Groups follow the order of projects.
func FeedbackByProject(projects []Project, feedbacks []Feedback) []ProjectFeedback {
	groups := make([]ProjectFeedback, 0)
	for _, p := range projects {
		if fbs := FeedbackForProject(feedbacks, p.ID); len(fbs) > 0 {
			groups = append(groups, ProjectFeedback{Project: p, Feedback: fbs})
		}
	}
	return groups
}
