package api

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efs/todoapp/internal/repository"
	"github.com/efs/todoapp/internal/service"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func testRouter() http.Handler {
	todoService := service.NewToDoService(
		repository.NewMemoryUserRepository(),
		repository.NewMemoryTaskRepository(),
	)
	return SetupRouter(todoService, log.New(io.Discard))
}

func send(t *testing.T, router http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if auth != "" {
		req.Header.Set("auth", auth)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func authFor(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username)) + ":" +
		base64.StdEncoding.EncodeToString([]byte(password))
}

func register(t *testing.T, router http.Handler, username, password string) {
	t.Helper()
	rec := send(t, router, http.MethodPost, "/todo/user", "",
		`{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func createTask(t *testing.T, router http.Handler, auth, body string) string {
	t.Helper()
	rec := send(t, router, http.MethodPost, "/todo/task", auth, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Id string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Regexp(t, uuidPattern, created.Id)
	return created.Id
}

func TestRegisterUser(t *testing.T) {
	router := testRouter()

	rec := send(t, router, http.MethodPost, "/todo/user", "", `{"username":"bob","password":"pw"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = send(t, router, http.MethodPost, "/todo/user", "", `{"username":"bob","password":"pw"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterUser_BadPayloads(t *testing.T) {
	router := testRouter()

	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json"},
		{"missing password", `{"username":"bob"}`},
		{"empty username", `{"username":"","password":"pw"}`},
		{"wrong type", `{"username":1,"password":"pw"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := send(t, router, http.MethodPost, "/todo/user", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegisterUser_MethodNotRecognized(t *testing.T) {
	router := testRouter()

	rec := send(t, router, http.MethodGet, "/todo/user", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTask(t *testing.T) {
	router := testRouter()
	register(t, router, "alice", "secret")

	id := createTask(t, router, authFor("alice", "secret"),
		`{"description":"Buy milk","due":"2021-06-30"}`)
	assert.Regexp(t, uuidPattern, id)
}

func TestCreateTask_AuthOutcomes(t *testing.T) {
	router := testRouter()
	register(t, router, "alice", "secret")

	body := `{"description":"Buy milk"}`

	// No header and malformed headers are the client's fault.
	for _, auth := range []string{
		"",
		"onlyonesegment",
		authFor("alice", "secret") + ":" + base64.StdEncoding.EncodeToString([]byte("extra")),
		"null:" + base64.StdEncoding.EncodeToString([]byte("secret")),
		"not-base64!:c2VjcmV0",
	} {
		rec := send(t, router, http.MethodPost, "/todo/task", auth, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "auth %q", auth)
	}

	// A well-formed header with a wrong identity is unauthorized.
	rec := send(t, router, http.MethodPost, "/todo/task", authFor("alice", "wrong"), body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = send(t, router, http.MethodPost, "/todo/task", authFor("nobody", "secret"), body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateTask_InvalidPayloadBeatsBadCredential(t *testing.T) {
	router := testRouter()

	// Empty description is 400 even though the credential is also bad.
	rec := send(t, router, http.MethodPost, "/todo/task", authFor("nobody", "pw"),
		`{"description":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(t, router, http.MethodPost, "/todo/task", authFor("nobody", "pw"),
		`{"description":"x","due":"2021-13-40"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTasks(t *testing.T) {
	router := testRouter()
	register(t, router, "alice", "secret")
	register(t, router, "bob", "pw")

	rec := send(t, router, http.MethodGet, "/todo/task", authFor("alice", "secret"), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	createTask(t, router, authFor("alice", "secret"), `{"description":"mine"}`)
	createTask(t, router, authFor("bob", "pw"), `{"description":"theirs"}`)

	rec = send(t, router, http.MethodGet, "/todo/task", authFor("alice", "secret"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0]["description"])
	assert.NotContains(t, tasks[0], "owner")
}

func TestRoundTrip(t *testing.T) {
	router := testRouter()
	register(t, router, "alice", "secret")

	id := createTask(t, router, authFor("alice", "secret"),
		`{"description":"Buy milk","due":"2021-06-30"}`)

	rec := send(t, router, http.MethodGet, "/todo/task/"+id, authFor("alice", "secret"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"id":"`+id+`","description":"Buy milk","due":"2021-06-30"}`,
		rec.Body.String())
}

func TestGetTask_OmitsAbsentDue(t *testing.T) {
	router := testRouter()
	register(t, router, "alice", "secret")

	id := createTask(t, router, authFor("alice", "secret"), `{"description":"no deadline"}`)

	rec := send(t, router, http.MethodGet, "/todo/task/"+id, authFor("alice", "secret"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "due")
}

func TestItemStatuses(t *testing.T) {
	router := testRouter()
	register(t, router, "alice", "secret")
	register(t, router, "bob", "pw")

	id := createTask(t, router, authFor("alice", "secret"), `{"description":"private"}`)
	missing := "3d188f9b-33d9-457a-9f8f-ca62e1b4b1d7"

	// Existence is checked before ownership.
	rec := send(t, router, http.MethodGet, "/todo/task/"+missing, authFor("bob", "pw"), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = send(t, router, http.MethodGet, "/todo/task/"+id, authFor("bob", "pw"), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = send(t, router, http.MethodPut, "/todo/task/"+id, authFor("bob", "pw"),
		`{"description":"hijack"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = send(t, router, http.MethodDelete, "/todo/task/"+id, authFor("bob", "pw"), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = send(t, router, http.MethodGet, "/todo/task/"+id, "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(t, router, http.MethodGet, "/todo/task/"+id, authFor("alice", "wrong"), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateAndDelete(t *testing.T) {
	router := testRouter()
	register(t, router, "alice", "secret")

	id := createTask(t, router, authFor("alice", "secret"),
		`{"description":"old","due":"2021-06-30"}`)

	rec := send(t, router, http.MethodPut, "/todo/task/"+id, authFor("alice", "secret"),
		`{"description":"new"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+id+`","description":"new"}`, rec.Body.String())

	rec = send(t, router, http.MethodDelete, "/todo/task/"+id, authFor("alice", "secret"), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = send(t, router, http.MethodGet, "/todo/task/"+id, authFor("alice", "secret"), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouting_EverythingElseIsBadRequest(t *testing.T) {
	router := testRouter()
	register(t, router, "alice", "secret")
	auth := authFor("alice", "secret")

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"unknown path", http.MethodGet, "/todo/other"},
		{"root", http.MethodGet, "/"},
		{"task subpath", http.MethodGet, "/todo/task/not-a-uuid"},
		{"uuid with bad version", http.MethodGet, "/todo/task/3d188f9b-33d9-057a-9f8f-ca62e1b4b1d7"},
		{"uuid with bad variant", http.MethodGet, "/todo/task/3d188f9b-33d9-457a-1f8f-ca62e1b4b1d7"},
		{"uppercase uuid", http.MethodGet, "/todo/task/3D188F9B-33D9-457A-9F8F-CA62E1B4B1D7"},
		{"patch on collection", http.MethodPatch, "/todo/task"},
		{"post on item", http.MethodPost, "/todo/task/3d188f9b-33d9-457a-9f8f-ca62e1b4b1d7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := send(t, router, tt.method, tt.path, auth, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHealthz(t *testing.T) {
	router := testRouter()

	rec := send(t, router, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
