package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bearinmind/backend/cache"
	"bearinmind/backend/config"
	"bearinmind/backend/filestorage"
	"bearinmind/backend/models"
	"bearinmind/backend/repositories/repotest"
	"bearinmind/backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testApp struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	store, db := repotest.Store(t)
	cfg := &config.Config{
		CORSAllowOrigins:   "*",
		ApplicationLocale:  "en",
		JWTSecret:          "test-secret",
		JWTLifetimeMinutes: 30,
		JWTCookieName:      "BIM_TOKEN",
		JWTHeaderPrefix:    "Bearer ",
		FileStorageDir:     t.TempDir(),
		FileStorageBaseURL: "/files",
	}
	logger := zap.NewNop()
	files := filestorage.NewLocalClient(cfg.FileStorageDir, cfg.FileStorageBaseURL)
	svc := services.New(store, cache.Noop{}, files, cfg, services.SystemClock, logger)
	return &testApp{t: t, app: NewApp(svc, cfg, logger), db: db, cfg: cfg}
}

func (a *testApp) do(method, path, token string, body any) *http.Response {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	return resp
}

func (a *testApp) signUp(email string) string {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/auth/signup", "", map[string]any{
		"email":     email,
		"password":  "s3cret",
		"firstName": "Ada",
		"lastName":  "Lovelace",
	})
	require.Equal(a.t, fiber.StatusOK, resp.StatusCode)
	return bearer(a.t, resp)
}

func (a *testApp) login(username string) string {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/auth/login", "", map[string]string{"username": username, "password": "s3cret"})
	require.Equal(a.t, fiber.StatusOK, resp.StatusCode)
	return bearer(a.t, resp)
}

// teacher signs up an account and promotes it before logging in again, so the
// token carries the teacher authority.
func (a *testApp) teacher(email string) string {
	a.t.Helper()
	a.signUp(email)
	require.NoError(a.t, a.db.Model(&models.UserCredentials{}).
		Where("username = ?", email).
		Update("role", models.UserRoleTeacher).Error)
	return a.login(email)
}

func bearer(t *testing.T, resp *http.Response) string {
	t.Helper()
	token, ok := strings.CutPrefix(resp.Header.Get("Authorization"), "Bearer ")
	require.True(t, ok, "missing bearer token")
	require.NotEmpty(t, token)
	return token
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type errorBody struct {
	Code      string   `json:"code"`
	Arguments []string `json:"arguments"`
}

func TestSignUpAndLogin_API(t *testing.T) {
	a := newTestApp(t)
	a.signUp("ada@example.com")

	resp := a.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "ada@example.com", "password": "s3cret"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, bearer(t, resp))

	body := decode[map[string]any](t, resp)
	assert.Equal(t, "Ada Lovelace", body["userFullName"])
	assert.Equal(t, []any{"ROLE_STUDENT"}, body["authorities"])
}

func TestLogin_IncorrectCredentials(t *testing.T) {
	a := newTestApp(t)
	a.signUp("ada@example.com")

	resp := a.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "ada@example.com", "password": "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INCORRECT_CREDENTIALS", decode[errorBody](t, resp).Code)
}

func TestSignUp_DuplicateAndBlank(t *testing.T) {
	a := newTestApp(t)
	a.signUp("ada@example.com")

	resp := a.do(http.MethodPost, "/auth/signup", "", map[string]any{
		"email": "ada@example.com", "password": "s3cret", "firstName": "Ada", "lastName": "Lovelace",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errorBody{Code: "USER_EXISTS", Arguments: []string{"email"}}, decode[errorBody](t, resp))

	resp = a.do(http.MethodPost, "/auth/signup", "", map[string]any{
		"email": "bob@example.com", "password": "s3cret", "firstName": "  ", "lastName": "Lovelace",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "REQUEST_ARGUMENT_INVALID", decode[errorBody](t, resp).Code)
}

func TestWebClient_CookieSession(t *testing.T) {
	a := newTestApp(t)
	a.signUp("ada@example.com")

	req := httptest.NewRequest(http.MethodPost, "/auth/login?client=WEB",
		strings.NewReader(`{"username":"ada@example.com","password":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Authorization"))

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == a.cfg.JWTCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	req = httptest.NewRequest(http.MethodGet, "/course/main-view?listLength=3", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	resp, err = a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/auth/logout?client=WEB", nil)
	resp, err = a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	require.NotEmpty(t, resp.Cookies())
	assert.Empty(t, resp.Cookies()[0].Value)
}

func TestUnknownClient(t *testing.T) {
	a := newTestApp(t)
	resp := a.do(http.MethodPost, "/auth/logout?client=DESKTOP", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"client"}, decode[errorBody](t, resp).Arguments)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	a := newTestApp(t)

	resp := a.do(http.MethodGet, "/course/main-view?listLength=3", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = a.do(http.MethodGet, "/course/main-view?listLength=3", "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCourseRoutes_TeacherOnly(t *testing.T) {
	a := newTestApp(t)
	student := a.signUp("student@example.com")
	course := map[string]any{"translations": map[string]any{"en": map[string]string{"name": "Go"}}}

	resp := a.do(http.MethodPost, "/course", student, course)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode[errorBody](t, resp).Code)

	teacher := a.teacher("teacher@example.com")
	resp = a.do(http.MethodPost, "/course", teacher, course)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := int64(decode[map[string]any](t, resp)["id"].(float64))

	resp = a.do(http.MethodGet, fmt.Sprintf("/course/%d", id), teacher, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	view := decode[map[string]any](t, resp)
	assert.Equal(t, "Go", view["name"])
	assert.Contains(t, view, "conducted")

	resp = a.do(http.MethodGet, fmt.Sprintf("/course/%d/role", id), teacher, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "OWNER", decode[string](t, resp))

	lesson := map[string]any{"translations": map[string]any{"en": map[string]string{"topic": "Basics"}}}
	resp = a.do(http.MethodPost, fmt.Sprintf("/course/%d/lesson", id), teacher, lesson)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	lessonID := int64(decode[map[string]any](t, resp)["id"].(float64))

	resp = a.do(http.MethodGet, fmt.Sprintf("/course/lesson/%d/role", lessonID), teacher, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "OWNER", decode[string](t, resp))

	resp = a.do(http.MethodGet, fmt.Sprintf("/course/%d/role", id), student, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = a.do(http.MethodDelete, fmt.Sprintf("/course/%d", id), teacher, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = a.do(http.MethodPut, fmt.Sprintf("/course/%d", id), teacher, course)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, resp).Code)
}

func TestCourseRoutes_ParameterValidation(t *testing.T) {
	a := newTestApp(t)
	token := a.signUp("ada@example.com")

	tests := []struct {
		name string
		path string
		arg  string
	}{
		{"non-numeric id", "/course/abc", "id"},
		{"zero id", "/course/0", "id"},
		{"missing list length", "/course/main-view", "listLength"},
		{"list length too large", "/course/main-view?listLength=11", "listLength"},
		{"unknown list kind", "/course/list/archived", "kind"},
		{"negative page", "/course/list/active?pageNumber=-1", "pageNumber"},
		{"page size too large", "/course/list/active?pageSize=101", "pageSize"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := a.do(http.MethodGet, tt.path, token, nil)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, errorBody{Code: "REQUEST_ARGUMENT_INVALID", Arguments: []string{tt.arg}}, decode[errorBody](t, resp))
		})
	}
}

func TestCoursePage_Defaults(t *testing.T) {
	a := newTestApp(t)
	token := a.signUp("ada@example.com")

	resp := a.do(http.MethodGet, "/course/list/available", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page := decode[map[string]any](t, resp)
	assert.Equal(t, float64(0), page["number"])
	assert.Equal(t, float64(10), page["size"])
	assert.Equal(t, float64(0), page["totalElements"])
}

func TestMalformedBody(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "REQUEST_ARGUMENT_INVALID", decode[errorBody](t, resp).Code)
}

func TestUnknownRoute(t *testing.T) {
	a := newTestApp(t)
	resp := a.do(http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGroupRoutes(t *testing.T) {
	a := newTestApp(t)
	owner := a.signUp("owner@example.com")
	member := a.signUp("member@example.com")

	resp := a.do(http.MethodPost, "/user/group", owner, map[string]any{"name": map[string]string{"en": "Readers"}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := int64(decode[map[string]any](t, resp)["id"].(float64))

	resp = a.do(http.MethodGet, "/user/group/list/available", member, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), decode[map[string]any](t, resp)["totalElements"])

	resp = a.do(http.MethodPost, fmt.Sprintf("/user/group/join/%d", id), member, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = a.do(http.MethodPost, fmt.Sprintf("/user/group/join/%d", id), member, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CANNOT_JOIN_GROUP", decode[errorBody](t, resp).Code)

	resp = a.do(http.MethodPut, fmt.Sprintf("/user/group/%d", id), member, map[string]any{"name": map[string]string{"en": "Mine"}})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = a.do(http.MethodPut, "/user/group/999", owner, map[string]any{"name": map[string]string{"en": "Mine"}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
