package tests

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/katalog/core/catalog"
	"github.com/trezcool/katalog/core/session"
)

func Test_home(t *testing.T) {
	rec := do(setup(t), http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Katalog API!", rec.Body.String())
}

func Test_catalogApi_queryProjects(t *testing.T) {
	path := func(subject, year, search string) string {
		v := make(url.Values)
		if subject != "" {
			v.Add("subject", subject)
		}
		if year != "" {
			v.Add("year", year)
		}
		if search != "" {
			v.Add("search", search)
		}
		return "/v1/projects?" + v.Encode()
	}
	ids := func(t *testing.T, path string) []string {
		rec := do(setup(t), http.MethodGet, path)
		require.Equal(t, http.StatusOK, rec.Code)
		var cards []session.ProjectCard
		unmarshall(t, rec, &cards)
		out := make([]string, 0, len(cards))
		for _, c := range cards {
			out = append(out, c.ID)
		}
		return out
	}

	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "all", path: "/v1/projects", want: []string{"p1", "p2", "p3"}},
		{name: "subject=all", path: path("all", "all", ""), want: []string{"p1", "p2", "p3"}},
		{name: "subject", path: path("s1", "", ""), want: []string{"p3"}},
		{name: "year", path: path("", "2023/2024", ""), want: []string{"p1", "p2"}},
		{name: "search title", path: path("", "", "KATALOG"), want: []string{"p2"}},
		{name: "search tag", path: path("", "", "python"), want: []string{"p3"}},
		{name: "no match", path: path("s2", "2022/2023", ""), want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(t, tt.path))
		})
	}
}

func Test_catalogApi_retrieveProject(t *testing.T) {
	app := setup(t)

	rec := do(app, http.MethodGet, "/v1/projects/p3")
	require.Equal(t, http.StatusOK, rec.Code)
	var card session.ProjectCard
	unmarshall(t, rec, &card)
	assert.Equal(t, "Analýza sentimentu v recenzích", card.Title)
	require.NotNil(t, card.Subject)
	assert.Equal(t, "TIP", card.Subject.Code)
	assert.Len(t, card.Authors, 2)
	assert.False(t, card.LiveURL.Valid)
	assert.Contains(t, rec.Body.String(), `"live_url":null`)

	rec = do(app, http.MethodGet, "/v1/projects/p9")
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
}

func Test_catalogApi_queryYears(t *testing.T) {
	rec := do(setup(t), http.MethodGet, "/v1/years")
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: []byte(`["2023/2024","2022/2023"]`),
	}, rec)
}

func Test_catalogApi_lecturerOnly(t *testing.T) {
	forbidden := func(role session.Role) []byte {
		return marchallObj(t, httpErr{Error: "not available for role " + string(role)})
	}

	runHTTPTests(t, []httpTest{
		{
			name: "public cannot add subjects", method: http.MethodPost, path: "/v1/subjects",
			body: []byte(`{"code":"AI","name":"Umělá inteligence"}`), wantCode: http.StatusForbidden, wantData: forbidden(session.RolePublic),
		},
		{
			name: "student cannot add projects", method: http.MethodPost, path: "/v1/projects", role: session.RoleStudent,
			body: []byte(`{"title":"X","subject_id":"s1"}`), wantCode: http.StatusForbidden, wantData: forbidden(session.RoleStudent),
		},
		{
			name: "student cannot review feedback", path: "/v1/feedback", role: session.RoleStudent,
			wantCode: http.StatusForbidden, wantData: forbidden(session.RoleStudent),
		},
		{
			name: "public cannot add students", method: http.MethodPost, path: "/v1/students",
			body: []byte(`{"name":"Karel","email":"karel@tul.cz"}`), wantCode: http.StatusForbidden, wantData: forbidden(session.RolePublic),
		},
		{name: "anyone lists subjects", path: "/v1/subjects", wantCode: http.StatusOK},
		{name: "anyone lists students", path: "/v1/students", role: session.RoleStudent, wantCode: http.StatusOK},
	})
}

func Test_catalogApi_createSubject(t *testing.T) {
	runHTTPTests(t, []httpTest{
		{
			name: "blank fields", method: http.MethodPost, path: "/v1/subjects", role: session.RoleLecturer,
			body:     []byte(`{"code":" ","name":""}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"code": "this field cannot be blank", "name": "this field cannot be blank"}),
		},
	})

	app := setup(t)
	app.sess.SelectRole(session.RoleLecturer)
	rec := do(app, http.MethodPost, "/v1/subjects", []byte(`{"code":"ai","name":"Umělá inteligence"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	var subj catalog.Subject
	unmarshall(t, rec, &subj)
	assert.Equal(t, "AI", subj.Code)

	subjects, _ := app.repo.QueryAllSubjects()
	assert.Len(t, subjects, 5)
	assert.Equal(t, subj, subjects[4])
}

func Test_catalogApi_createProject(t *testing.T) {
	app := setup(t)
	app.sess.SelectRole(session.RoleLecturer)

	// manual student add selects them for the project
	rec := do(app, http.MethodPost, "/v1/students", []byte(`{"name":"Karel Dvořák","email":"karel.dvorak@tul.cz"}`))
	require.Equal(t, http.StatusCreated, rec.Code)
	var std catalog.Student
	unmarshall(t, rec, &std)

	rec = do(app, http.MethodPut, "/v1/session/authors/u3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pending_authors":["`+std.ID+`","u3"]}`, rec.Body.String())

	rec = do(app, http.MethodPost, "/v1/projects", []byte(`{
		"title": "Chatbot pro studijní oddělení",
		"description": "Odpovídá na časté dotazy.",
		"subject_id": "s1",
		"tag_input": "AI, LLM",
		"github_url": "https://github.com/example/chatbot"
	}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var proj catalog.Project
	unmarshall(t, rec, &proj)
	assert.Equal(t, []string{std.ID, "u3"}, proj.AuthorIDs)
	assert.Equal(t, []string{"AI", "LLM"}, proj.Tags)
	assert.Equal(t, "2023/2024", proj.AcademicYear)
	assert.Equal(t, "https://picsum.photos/400/300", proj.ImageURL.String)

	// newest first
	rec = do(app, http.MethodGet, "/v1/projects")
	var cards []session.ProjectCard
	unmarshall(t, rec, &cards)
	require.Len(t, cards, 4)
	assert.Equal(t, proj.ID, cards[0].ID)

	rec = do(app, http.MethodPost, "/v1/projects", []byte(`{"title":"X","subject_id":"s1","academic_year":"2024"}`))
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, map[string]string{"academic_year": "academic year must look like 2023/2024"}),
	}, rec)

	rec = do(app, http.MethodPut, "/v1/session/authors/u9")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_catalogApi_queryFeedback(t *testing.T) {
	app := setup(t)
	app.sess.SelectRole(session.RoleLecturer)

	rec := do(app, http.MethodGet, "/v1/feedback")
	require.Equal(t, http.StatusOK, rec.Code)
	var groups []session.FeedbackGroup
	unmarshall(t, rec, &groups)
	require.Len(t, groups, 1)
	assert.Equal(t, "p1", groups[0].Project.ID)
	assert.Equal(t, 1, groups[0].Count)
	assert.Equal(t, "Petr Svoboda", groups[0].Feedback[0].To.Name)
}
