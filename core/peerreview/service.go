package peerreview

import (
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/trezcool/katalog/core"
	"github.com/trezcool/katalog/core/catalog"
)

const feedbackReceivedTmpl = "feedback_received"

type (
	Service struct {
		catalogSvc *catalog.Service
		mailSvc    core.EmailService
		logger     core.Logger
		subject    string
	}

	feedbackMailData struct {
		RecipientName string
		ProjectTitle  string
		Strengths     string
		Improvements  string
	}
)

// NewService returns a Service notifying recipients with mailSubject as email subject.
func NewService(catalogSvc *catalog.Service, mailSvc core.EmailService, logger core.Logger, mailSubject string) *Service {
	return &Service{
		catalogSvc: catalogSvc,
		mailSvc:    mailSvc,
		logger:     logger,
		subject:    mailSubject,
	}
}

// Submit turns d into a Feedback record dated today and clears the form.
// An incomplete or rejected draft is left as is and no record is produced.
func (svc *Service) Submit(d *Draft) (catalog.Feedback, error) {
	if !d.CanSubmit() {
		return catalog.Feedback{}, core.NewValidationError(ErrIncompleteDraft)
	}

	fb, err := svc.catalogSvc.AddFeedback(catalog.NewFeedback{
		ProjectID:     d.ProjectID,
		FromStudentID: d.StudentID,
		ToStudentID:   d.TargetID,
		Strengths:     d.Strengths,
		Improvements:  d.Improvements,
	})
	if err != nil {
		return catalog.Feedback{}, errors.Wrap(err, "adding feedback")
	}
	d.reset()

	svc.notifyRecipient(fb)
	return fb, nil
}

func (svc *Service) notifyRecipient(fb catalog.Feedback) {
	to, err := svc.catalogSvc.GetStudent(fb.ToStudentID)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("peerreview: no recipient for feedback %s: %v", fb.ID, err))
		return
	}
	proj, err := svc.catalogSvc.GetProject(fb.ProjectID)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("peerreview: no project for feedback %s: %v", fb.ID, err))
		return
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: to.Name, Address: to.Email}},
		Subject:      svc.subject,
		TemplateName: feedbackReceivedTmpl,
		TemplateData: feedbackMailData{
			RecipientName: to.Name,
			ProjectTitle:  proj.Title,
			Strengths:     fb.Strengths,
			Improvements:  fb.Improvements,
		},
	})
}
