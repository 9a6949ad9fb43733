package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func staticToken(token string) TokenSource {
	return TokenSourceFunc(func(context.Context) string { return token })
}

func TestClient_AttachesBearerTokenAndHeaders(t *testing.T) {
	var seen http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Clone()
		require.Equal(t, "/api/teams", r.URL.Path)
		_, _ = w.Write([]byte(`[{"_id":"t1","team_name":"Platform"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", WithTokenSource(staticToken("abc")), WithHeader("X-Client", "test"))
	teams, err := c.Teams(context.Background())
	require.NoError(t, err)
	require.Equal(t, []project.Team{{ID: "t1", Name: "Platform"}}, teams)

	require.Equal(t, "Bearer abc", seen.Get("Authorization"))
	require.Equal(t, "application/json", seen.Get("Accept"))
	require.Equal(t, "test", seen.Get("X-Client"))
}

func TestClient_OmitsAuthorizationWithoutToken(t *testing.T) {
	var auth string
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticToken("")))
	_, err := c.Managers(context.Background())
	require.NoError(t, err)
	require.False(t, present)
	require.Empty(t, auth)
}

func TestClient_UnauthorizedNotifiesListenersAndPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	var calls atomic.Int32
	c := New(srv.URL, WithTokenSource(staticToken("stale")))
	c.OnUnauthorized(func(context.Context) { calls.Add(1) })
	c.OnUnauthorized(func(context.Context) { calls.Add(1) })

	_, err := c.Projects(context.Background(), project.Filter{}, 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnauthorized))
	require.Equal(t, http.StatusUnauthorized, StatusCode(err))
	require.Equal(t, int32(2), calls.Load())
}

func TestClient_OtherErrorsDoNotNotify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	notified := false
	c := New(srv.URL)
	c.OnUnauthorized(func(context.Context) { notified = true })

	err := c.DeleteProject(context.Background(), "p1")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrUnauthorized))
	require.Equal(t, http.StatusInternalServerError, StatusCode(err))

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, "boom", httpErr.Body)
	require.False(t, notified)
}

func TestClient_ProjectsEncodesFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "12", q.Get("limit"))
		require.Equal(t, "apollo", q.Get("search"))
		require.Equal(t, "Completed", q.Get("status"))
		require.False(t, q.Has("team"))
		require.False(t, q.Has("from"))
		_, _ = w.Write([]byte(`{"projects":[{"_id":"p1","project_name":"Apollo","team_id":"t1","manager_id":{"_id":"m1","name":"Grace"},"status":"Completed"}],"summary":{"total":1,"completed":1,"inProgress":0,"onHold":0}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	page, err := c.Projects(context.Background(), project.Filter{Search: "apollo", Status: project.StatusCompleted}, 2)
	require.NoError(t, err)
	require.Len(t, page.Projects, 1)
	require.Equal(t, &project.Team{ID: "t1"}, page.Projects[0].Team)
	require.Equal(t, "Grace", page.Projects[0].Manager.Name)
	require.Equal(t, project.Summary{Total: 1, Completed: 1}, page.Summary)
}

func TestClient_CreateProjectSendsJSON(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"p9","project_name":"Apollo","status":"In Progress"}`))
	}))
	defer srv.Close()

	req, err := project.Draft{Name: " Apollo ", ManagerID: "m1", Deadline: "2025-03-01"}.Request()
	require.NoError(t, err)

	created, err := New(srv.URL).CreateProject(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "p9", created.ID)

	require.Equal(t, "Apollo", body["project_name"])
	require.Equal(t, "m1", body["manager_id"])
	require.Nil(t, body["team_id"])
	require.Equal(t, "2025-03-01T00:00:00Z", body["deadline"])
	require.Equal(t, "In Progress", body["status"])
}

func TestClient_DeleteToleratesEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/projects/p%201", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).DeleteProject(context.Background(), "p 1"))
}

func TestClient_LoginDecodesCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		var in loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "ada@example.com", in.Email)
		_, _ = w.Write([]byte(`{"token":"t0k","username":"ada","role":"admin"}`))
	}))
	defer srv.Close()

	creds, err := New(srv.URL).Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "t0k", creds.Token)
	require.Equal(t, "admin", creds.Role)
}

func TestClient_SendsBackServerCookies(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "s1", Path: "/"})
			_, _ = w.Write([]byte(`{"token":"t0k","username":"ada","role":"admin"}`))
			return
		}
		if c, err := r.Cookie("sid"); err == nil {
			got = append(got, c.Value)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	_, err = c.Teams(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"s1"}, got)

	got = nil
	bare := New(srv.URL, WithCookieJar(nil))
	_, err = bare.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	_, err = bare.Teams(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}
