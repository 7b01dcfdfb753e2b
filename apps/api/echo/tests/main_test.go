package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/katalog/apps/api/echo"
	"github.com/trezcool/katalog/core"
	"github.com/trezcool/katalog/core/catalog"
	"github.com/trezcool/katalog/core/peerreview"
	"github.com/trezcool/katalog/core/session"
	appfs "github.com/trezcool/katalog/fs"
	emailsvc "github.com/trezcool/katalog/services/email"
	logsvc "github.com/trezcool/katalog/services/logger"
	"github.com/trezcool/katalog/tests"
)

type testApp struct {
	*Server
	repo catalog.Repository
	sess *session.Session
}

func setup(t *testing.T) testApp {
	conf := core.NewTestConfig()
	logger := logsvc.NewDiscardLogger(conf)
	core.ParseEmailTemplates(appfs.FS, appfs.EmailTmplDir, conf, logger)
	emailsvc.ResetSentMessages()

	tables, err := core.LoadTranslations(appfs.FS, appfs.I18nDir)
	if err != nil {
		t.Fatalf("LoadTranslations() failed: %v", err)
	}
	i18n, err := core.NewI18n(conf.DefaultLanguage, tables)
	if err != nil {
		t.Fatalf("NewI18n() failed: %v", err)
	}

	// set up services
	translator := testutil.NewTranslator()
	repo := testutil.NewSeededRepository(t)
	catalogSvc := catalog.NewService(repo, core.NewValidate(translator), conf)
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	reviewSvc := peerreview.NewService(catalogSvc, mailSvc, logger, i18n.T(conf.DefaultLanguage, "email.feedback_subject"))
	sess := session.New(catalogSvc, reviewSvc, conf.CurrentStudentID)

	// set up server
	srv := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		CatalogSvc: catalogSvc,
		Session:    sess,
		I18n:       i18n,
		Translator: translator,
	})
	return testApp{Server: srv, repo: repo, sess: sess}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	role     session.Role
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

// do runs a request against app and returns the recorder.
func do(app http.Handler, method, path string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, data...)
	app.ServeHTTP(rec, req)
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func unmarshall(t *testing.T, rec *httptest.ResponseRecorder, obj interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), obj); err != nil {
		t.Fatalf("unmarshall() failed: %v; body %s", err, rec.Body.String())
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setup(t)
			if tt.role != "" {
				app.sess.SelectRole(tt.role)
			}
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			rec := do(app, method, tt.path, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}
