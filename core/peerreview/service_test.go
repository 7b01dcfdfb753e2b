package peerreview_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/katalog/core"
	"github.com/trezcool/katalog/core/catalog"
	"github.com/trezcool/katalog/core/peerreview"
	appfs "github.com/trezcool/katalog/fs"
	emailsvc "github.com/trezcool/katalog/services/email"
	logsvc "github.com/trezcool/katalog/services/logger"
	"github.com/trezcool/katalog/tests"
)

func setup(t *testing.T) (*catalog.Service, *peerreview.Service) {
	conf := core.NewTestConfig()
	logger := logsvc.NewDiscardLogger(conf)
	core.ParseEmailTemplates(appfs.FS, appfs.EmailTmplDir, conf, logger)
	emailsvc.ResetSentMessages()

	catalogSvc := testutil.NewCatalogService(testutil.NewSeededRepository(t))
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	return catalogSvc, peerreview.NewService(catalogSvc, mailSvc, logger, "Nové hodnocení od spolužáka")
}

func newDraft(t *testing.T, catalogSvc *catalog.Service, studentID string) *peerreview.Draft {
	projects, err := catalogSvc.Projects()
	require.NoError(t, err)
	return peerreview.NewDraft(studentID, catalog.ProjectsOf(studentID, projects))
}

func TestService_Submit(t *testing.T) {
	catalog.NowFunc = func() time.Time { return time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC) }
	defer func() { catalog.NowFunc = time.Now }()

	catalogSvc, svc := setup(t)
	d := newDraft(t, catalogSvc, "u1")
	require.NoError(t, d.SelectProject("p3"))
	d.SelectTarget("u5")
	d.SetStrengths("Výborný model.")
	d.SetImprovements("Lepší dokumentace dat.")

	fb, err := svc.Submit(d)
	require.NoError(t, err)
	assert.Equal(t, catalog.Feedback{
		ID:            fb.ID,
		ProjectID:     "p3",
		FromStudentID: "u1",
		ToStudentID:   "u5",
		Strengths:     "Výborný model.",
		Improvements:  "Lepší dokumentace dat.",
		CreatedAt:     "2024-06-03",
	}, fb)

	// form is reset, project kept
	assert.Equal(t, "p3", d.ProjectID)
	assert.Equal(t, "", d.TargetID)
	assert.Equal(t, "", d.Strengths)
	assert.Equal(t, "", d.Improvements)

	fbs, _ := catalogSvc.Feedback()
	sent := catalog.FeedbackFrom(fbs, "u1")
	require.Len(t, sent, 2)
	assert.Equal(t, fb.ID, sent[1].ID, "new feedback is appended")

	msgs := emailsvc.GetSentMessages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "tomas.kucera@tul.cz", msgs[0].To[0].Address)
	assert.Contains(t, msgs[0].TextContent, "Analýza sentimentu v recenzích")
}

func TestService_Submit_incomplete(t *testing.T) {
	catalogSvc, svc := setup(t)
	d := newDraft(t, catalogSvc, "u1")
	d.SelectTarget("u2")
	d.SetStrengths("")
	d.SetImprovements("Více testů.")

	_, err := svc.Submit(d)
	assert.ErrorIs(t, err, peerreview.ErrIncompleteDraft)
	assert.Equal(t, "u2", d.TargetID, "draft is kept")
	assert.Equal(t, "Více testů.", d.Improvements)

	fbs, _ := catalogSvc.Feedback()
	assert.Len(t, fbs, 1, "no record is produced")
	assert.Empty(t, emailsvc.GetSentMessages())
}

func TestService_Submit_notTeammate(t *testing.T) {
	catalogSvc, svc := setup(t)
	d := newDraft(t, catalogSvc, "u1")
	d.SelectTarget("u3")
	d.SetStrengths("a")
	d.SetImprovements("b")

	_, err := svc.Submit(d)
	assert.ErrorIs(t, err, catalog.ErrNotTeammate)
	assert.Equal(t, "u3", d.TargetID)

	fbs, _ := catalogSvc.Feedback()
	assert.Len(t, fbs, 1)
}
