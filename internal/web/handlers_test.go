package web

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/taskboard/internal/auth"
	"github.com/eleven-am/taskboard/internal/store"
)

// newTestServer boots the full handler stack over sqlmock with in-memory
// sessions and a cookie-carrying client.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sessions := scs.New()
	server, err := NewServer(store.New(sqlx.NewDb(db, "postgres")), sessions)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	client := &http.Client{Jar: jar}
	return ts, client, mock
}

func postForm(t *testing.T, client *http.Client, url string, values url.Values) *http.Response {
	t.Helper()
	resp, err := client.Post(url, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestHomePage(t *testing.T) {
	ts, client, mock := newTestServer(t)

	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Taskboard")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnonymousRedirectedToLogin(t *testing.T) {
	ts, _, mock := newTestServer(t)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	for _, path := range []string{"/add-task", "/new-board", "/dashboard/alice", "/done/1"} {
		resp, err := client.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterFlow(t *testing.T) {
	ts, client, mock := newTestServer(t)
	now := time.Now()

	// Registration inserts the user...
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "a@x.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	// ...and the redirect to the dashboard resolves the fresh session.
	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at FROM users WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(int64(1), "alice", "a@x.com", "hash", now))
	mock.ExpectQuery(`SELECT .* FROM tasks WHERE creator_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "due_date", "progress", "date_created", "creator_id", "tag_id"}))
	mock.ExpectQuery(`SELECT t.id, t.name FROM tags t JOIN subscriptions s`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	resp := postForm(t, client, ts.URL+"/register", url.Values{
		"username": {"alice"},
		"email":    {"a@x.com"},
		"password": {"longenough"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "alice")
	assert.Contains(t, page, "No boards yet")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterValidationErrors(t *testing.T) {
	ts, client, mock := newTestServer(t)

	resp := postForm(t, client, ts.URL+"/register", url.Values{
		"username": {"alice"},
		"email":    {"not-an-email"},
		"password": {"short"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "Enter a valid email address.")
	assert.Contains(t, page, "Must be at least 8 characters.")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	ts, client, mock := newTestServer(t)
	now := time.Now()

	hash, err := auth.HashPassword("the-real-password")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at FROM users WHERE email = \$1`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(int64(1), "alice", "a@x.com", hash, now))

	// The redirect lands back on the login page with a flash message.
	resp := postForm(t, client, ts.URL+"/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Your password is incorrect. Please try again.")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownEmailRedirectsToRegister(t *testing.T) {
	ts, client, mock := newTestServer(t)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, created_at FROM users WHERE email = \$1`).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	resp := postForm(t, client, ts.URL+"/login", url.Values{
		"email":    {"nobody@x.com"},
		"password": {"whatever"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/register", resp.Request.URL.Path)
	assert.Contains(t, body(t, resp), "This email has not been registered yet, please register first.")

	require.NoError(t, mock.ExpectationsWereMet())
}
