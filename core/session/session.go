// Package session holds the state of the catalog UI: the active role, the browser filter,
// the lecturer's pending author selection and the student's feedback draft.
// All mutations go through named commands.
package session

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/katalog/core"
	"github.com/trezcool/katalog/core/catalog"
	"github.com/trezcool/katalog/core/peerreview"
)

type (
	// DraftUpdate holds the draft slots to change; nil fields are left as is.
	DraftUpdate struct {
		ProjectID    *string `json:"project_id"`
		TargetID     *string `json:"target_id"`
		Strengths    *string `json:"strengths"`
		Improvements *string `json:"improvements"`
	}

	Session struct {
		mu sync.Mutex

		catalogSvc *catalog.Service
		reviewSvc  *peerreview.Service
		studentID  string // stands in for the logged in student

		role           Role
		filter         catalog.ProjectFilter
		pendingAuthors []string
		draft          *peerreview.Draft
	}
)

// New returns a public session acting as studentID in the student zone.
func New(catalogSvc *catalog.Service, reviewSvc *peerreview.Service, studentID string) *Session {
	return &Session{
		catalogSvc:     catalogSvc,
		reviewSvc:      reviewSvc,
		studentID:      studentID,
		role:           RolePublic,
		filter:         catalog.DefaultFilter(),
		pendingAuthors: []string{},
	}
}

func (s *Session) require(roles ...Role) error {
	for _, r := range roles {
		if s.role == r {
			return nil
		}
	}
	return &RoleError{Role: s.role}
}

func (s *Session) StudentID() string {
	return s.studentID
}

func (s *Session) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

func (s *Session) SelectRole(role Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = role
}

func (s *Session) Filter() catalog.ProjectFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *Session) SetFilter(filter catalog.ProjectFilter) catalog.ProjectFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	filter.Clean()
	s.filter = filter
	return s.filter
}

func (s *Session) ResetFilter() catalog.ProjectFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = catalog.DefaultFilter()
	return s.filter
}

// Lecturer commands

func (s *Session) AddSubject(ns catalog.NewSubject) (catalog.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(RoleLecturer); err != nil {
		return catalog.Subject{}, err
	}
	return s.catalogSvc.AddSubject(ns)
}

// AddStudent adds a student and selects them as author of the pending project.
func (s *Session) AddStudent(ns catalog.NewStudent) (catalog.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(RoleLecturer); err != nil {
		return catalog.Student{}, err
	}
	std, err := s.catalogSvc.AddStudent(ns)
	if err != nil {
		return catalog.Student{}, err
	}
	s.pendingAuthors = append(s.pendingAuthors, std.ID)
	return std, nil
}

// ToggleAuthor adds studentID to the pending author selection, or removes it when already there.
func (s *Session) ToggleAuthor(studentID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(RoleLecturer); err != nil {
		return nil, err
	}
	if _, err := s.catalogSvc.GetStudent(studentID); err != nil {
		return nil, err
	}

	authors := make([]string, 0, len(s.pendingAuthors)+1)
	var removed bool
	for _, id := range s.pendingAuthors {
		if id == studentID {
			removed = true
			continue
		}
		authors = append(authors, id)
	}
	if !removed {
		authors = append(authors, studentID)
	}
	s.pendingAuthors = authors
	return authors, nil
}

func (s *Session) PendingAuthors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.pendingAuthors...)
}

// AddProject saves the project form. Without explicit authors the pending selection is used,
// and cleared on success.
func (s *Session) AddProject(np catalog.NewProject) (catalog.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(RoleLecturer); err != nil {
		return catalog.Project{}, err
	}
	usePending := np.AuthorIDs == nil
	if usePending {
		np.AuthorIDs = append([]string{}, s.pendingAuthors...)
	}
	proj, err := s.catalogSvc.AddProject(np)
	if err != nil {
		return catalog.Project{}, err
	}
	if usePending {
		s.pendingAuthors = []string{}
	}
	return proj, nil
}

// AllFeedback returns every feedback, for review.
func (s *Session) AllFeedback() ([]FeedbackGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(RoleLecturer); err != nil {
		return nil, err
	}
	snap, err := s.catalogSvc.Snapshot()
	if err != nil {
		return nil, err
	}
	return BuildLecturerView(snap, nil).Feedback, nil
}

// Student commands

// syncDraft creates or refreshes the draft against the current student projects.
func (s *Session) syncDraft(snap catalog.Snapshot) {
	own := catalog.ProjectsOf(s.studentID, snap.Projects)
	if s.draft == nil {
		s.draft = peerreview.NewDraft(s.studentID, own)
		return
	}
	s.draft.Sync(own)
}

func (s *Session) refreshDraft() error {
	snap, err := s.catalogSvc.Snapshot()
	if err != nil {
		return err
	}
	s.syncDraft(snap)
	return nil
}

func (s *Session) Draft() (peerreview.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(RoleStudent); err != nil {
		return peerreview.Draft{}, err
	}
	if err := s.refreshDraft(); err != nil {
		return peerreview.Draft{}, err
	}
	return *s.draft, nil
}

// UpdateDraft applies upd to the draft. A project change clears the selected teammate.
func (s *Session) UpdateDraft(upd DraftUpdate) (peerreview.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(RoleStudent); err != nil {
		return peerreview.Draft{}, err
	}
	if err := s.refreshDraft(); err != nil {
		return peerreview.Draft{}, err
	}

	if upd.ProjectID != nil && *upd.ProjectID != s.draft.ProjectID {
		if err := s.draft.SelectProject(*upd.ProjectID); err != nil {
			return peerreview.Draft{}, core.NewValidationError(
				err,
				core.FieldError{Field: "project_id", Error: err.Error()},
			)
		}
	}
	if upd.TargetID != nil {
		s.draft.SelectTarget(*upd.TargetID)
	}
	if upd.Strengths != nil {
		s.draft.SetStrengths(*upd.Strengths)
	}
	if upd.Improvements != nil {
		s.draft.SetImprovements(*upd.Improvements)
	}
	return *s.draft, nil
}

// SubmitFeedback turns the draft into a Feedback record.
func (s *Session) SubmitFeedback() (catalog.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(RoleStudent); err != nil {
		return catalog.Feedback{}, err
	}
	if err := s.refreshDraft(); err != nil {
		return catalog.Feedback{}, err
	}
	return s.reviewSvc.Submit(s.draft)
}

// SentFeedback returns the feedback written by the current student.
func (s *Session) SentFeedback() ([]FeedbackEntry, error) {
	return s.studentFeedback(catalog.FeedbackFrom)
}

// ReceivedFeedback returns the feedback addressed to the current student.
func (s *Session) ReceivedFeedback() ([]FeedbackEntry, error) {
	return s.studentFeedback(catalog.FeedbackTo)
}

func (s *Session) studentFeedback(query func([]catalog.Feedback, string) []catalog.Feedback) ([]FeedbackEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require(RoleStudent); err != nil {
		return nil, err
	}
	snap, err := s.catalogSvc.Snapshot()
	if err != nil {
		return nil, err
	}
	return newFeedbackEntries(query(snap.Feedback, s.studentID), snap.Students), nil
}

// View computes what the current role sees from the current catalog.
func (s *Session) View() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.catalogSvc.Snapshot()
	if err != nil {
		return View{}, errors.Wrap(err, "taking catalog snapshot")
	}

	view := View{Role: s.role}
	switch s.role {
	case RoleLecturer:
		lv := BuildLecturerView(snap, append([]string{}, s.pendingAuthors...))
		view.Lecturer = &lv
	case RoleStudent:
		s.syncDraft(snap)
		draft := *s.draft
		sv := BuildStudentView(snap, s.studentID, &draft, s.filter)
		view.Student = &sv
	default:
		pv := BuildPublicView(snap, s.filter)
		view.Public = &pv
	}
	return view, nil
}
