package session

import (
	"github.com/trezcool/katalog/core/catalog"
	"github.com/trezcool/katalog/core/peerreview"
)

type (
	// ProjectCard is a project with its references resolved. Subject is nil when unknown.
	ProjectCard struct {
		catalog.Project
		Subject *catalog.Subject  `json:"subject"`
		Authors []catalog.Student `json:"authors"`
	}

	PublicView struct {
		Filter   catalog.ProjectFilter `json:"filter"`
		Years    []string              `json:"years"`
		Subjects []catalog.Subject     `json:"subjects"`
		Projects []ProjectCard         `json:"projects"`
	}

	// FeedbackEntry is a feedback with its students resolved. From and To are nil when unknown.
	FeedbackEntry struct {
		catalog.Feedback
		From *catalog.Student `json:"from"`
		To   *catalog.Student `json:"to"`
	}

	FeedbackGroup struct {
		Project  catalog.Project `json:"project"`
		Count    int             `json:"count"`
		Feedback []FeedbackEntry `json:"feedback"`
	}

	LecturerView struct {
		Subjects       []catalog.Subject `json:"subjects"`
		Students       []catalog.Student `json:"students"`
		PendingAuthors []string          `json:"pending_authors"` // author selection of the project form
		Feedback       []FeedbackGroup   `json:"feedback"`
	}

	// StudentView is the peer feedback zone. Draft, Teammates and Sent are only set when HasProjects.
	StudentView struct {
		Student     *catalog.Student  `json:"student"`
		HasProjects bool              `json:"has_projects"`
		Projects    []catalog.Project `json:"projects"`
		Draft       *peerreview.Draft `json:"draft,omitempty"`
		Teammates   []catalog.Student `json:"teammates,omitempty"`
		Sent        []FeedbackEntry   `json:"sent,omitempty"`
		Public      PublicView        `json:"public"`
	}

	// View is what the current role sees: exactly one of Public, Lecturer or Student is set.
	View struct {
		Role     Role          `json:"role"`
		Public   *PublicView   `json:"public,omitempty"`
		Lecturer *LecturerView `json:"lecturer,omitempty"`
		Student  *StudentView  `json:"student,omitempty"`
	}
)

func NewProjectCard(p catalog.Project, snap catalog.Snapshot) ProjectCard {
	card := ProjectCard{Project: p, Authors: catalog.AuthorsOf(p, snap.Students)}
	if subj, ok := catalog.SubjectOf(p, snap.Subjects); ok {
		card.Subject = &subj
	}
	return card
}

func NewFeedbackEntry(f catalog.Feedback, students []catalog.Student) FeedbackEntry {
	entry := FeedbackEntry{Feedback: f}
	if from, ok := catalog.StudentByID(students, f.FromStudentID); ok {
		entry.From = &from
	}
	if to, ok := catalog.StudentByID(students, f.ToStudentID); ok {
		entry.To = &to
	}
	return entry
}

func newFeedbackEntries(fbs []catalog.Feedback, students []catalog.Student) []FeedbackEntry {
	entries := make([]FeedbackEntry, 0, len(fbs))
	for _, f := range fbs {
		entries = append(entries, NewFeedbackEntry(f, students))
	}
	return entries
}

// BuildPublicView lists the projects of snap matching filter.
func BuildPublicView(snap catalog.Snapshot, filter catalog.ProjectFilter) PublicView {
	projects := catalog.FilterProjects(snap.Projects, filter)
	cards := make([]ProjectCard, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, NewProjectCard(p, snap))
	}
	return PublicView{
		Filter:   filter,
		Years:    catalog.DistinctAcademicYears(snap.Projects),
		Subjects: snap.Subjects,
		Projects: cards,
	}
}

// BuildLecturerView gathers the lecturer forms data and the feedback review, grouped per project.
func BuildLecturerView(snap catalog.Snapshot, pendingAuthors []string) LecturerView {
	groups := catalog.FeedbackByProject(snap.Projects, snap.Feedback)
	review := make([]FeedbackGroup, 0, len(groups))
	for _, g := range groups {
		review = append(review, FeedbackGroup{
			Project:  g.Project,
			Count:    len(g.Feedback),
			Feedback: newFeedbackEntries(g.Feedback, snap.Students),
		})
	}
	if pendingAuthors == nil {
		pendingAuthors = []string{}
	}
	return LecturerView{
		Subjects:       snap.Subjects,
		Students:       snap.Students,
		PendingAuthors: pendingAuthors,
		Feedback:       review,
	}
}

// BuildStudentView gathers the feedback zone of studentID. The public view is always appended.
func BuildStudentView(snap catalog.Snapshot, studentID string, draft *peerreview.Draft, filter catalog.ProjectFilter) StudentView {
	view := StudentView{
		Projects: catalog.ProjectsOf(studentID, snap.Projects),
		Public:   BuildPublicView(snap, filter),
	}
	if std, ok := catalog.StudentByID(snap.Students, studentID); ok {
		view.Student = &std
	}
	view.HasProjects = len(view.Projects) > 0
	if !view.HasProjects {
		return view
	}

	view.Draft = draft
	view.Teammates = []catalog.Student{}
	if active, ok := catalog.ProjectByID(view.Projects, draft.ProjectID); ok {
		view.Teammates = catalog.TeammatesOf(active, studentID, snap.Students)
	}
	view.Sent = newFeedbackEntries(catalog.FeedbackFrom(snap.Feedback, studentID), snap.Students)
	return view
}
