// Package peerreview implements the feedback a student writes about a teammate.
package peerreview

import (
	"errors"
	"strings"

	"github.com/trezcool/katalog/core/catalog"
)

var (
	// errors
	ErrIncompleteDraft = errors.New("project, teammate, strengths and improvements are all required")
	ErrNotOwnProject   = errors.New("not one of your projects")
)

// Draft is the feedback form of one student.
type Draft struct {
	StudentID    string `json:"student_id"`
	ProjectID    string `json:"project_id"` // selected own project
	TargetID     string `json:"target_id"`  // selected teammate
	Strengths    string `json:"strengths"`
	Improvements string `json:"improvements"`

	ownProjectIDs []string
}

// NewDraft returns an empty draft for studentID with the first of ownProjects selected.
func NewDraft(studentID string, ownProjects []catalog.Project) *Draft {
	d := &Draft{StudentID: studentID}
	d.Sync(ownProjects)
	return d
}

// Sync refreshes the projects the student may review within.
// The selection falls back to the first project when the selected one is gone.
func (d *Draft) Sync(ownProjects []catalog.Project) {
	d.ownProjectIDs = make([]string, 0, len(ownProjects))
	for _, p := range ownProjects {
		d.ownProjectIDs = append(d.ownProjectIDs, p.ID)
	}
	if d.ProjectID != "" && d.isOwn(d.ProjectID) {
		return
	}
	d.ProjectID = ""
	if len(d.ownProjectIDs) > 0 {
		d.ProjectID = d.ownProjectIDs[0]
	}
	d.TargetID = ""
}

func (d *Draft) isOwn(projectID string) bool {
	for _, id := range d.ownProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}

// SelectProject switches the draft to another own project and clears the selected teammate.
func (d *Draft) SelectProject(projectID string) error {
	if !d.isOwn(projectID) {
		return ErrNotOwnProject
	}
	d.ProjectID = projectID
	d.TargetID = ""
	return nil
}

func (d *Draft) SelectTarget(studentID string) { d.TargetID = strings.TrimSpace(studentID) }
func (d *Draft) SetStrengths(text string)      { d.Strengths = text }
func (d *Draft) SetImprovements(text string)   { d.Improvements = text }

// CanSubmit reports whether all four slots are filled.
func (d *Draft) CanSubmit() bool {
	return d.ProjectID != "" &&
		d.TargetID != "" &&
		strings.TrimSpace(d.Strengths) != "" &&
		strings.TrimSpace(d.Improvements) != ""
}

// reset clears the form after a submission. The project stays selected.
func (d *Draft) reset() {
	d.TargetID = ""
	d.Strengths = ""
	d.Improvements = ""
}
