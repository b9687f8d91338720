// Package integration provides end-to-end tests for the blog platform API
// running against a real PostgreSQL database.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/blogs/internal/app"
	blogDTO "github.com/allisson/blogs/internal/blog/http/dto"
	commentDTO "github.com/allisson/blogs/internal/comment/http/dto"
	"github.com/allisson/blogs/internal/config"
	identityDomain "github.com/allisson/blogs/internal/identity/domain"
	"github.com/allisson/blogs/internal/testutil"
	userDTO "github.com/allisson/blogs/internal/user/http/dto"
)

// apiTestContext holds all dependencies and state for integration testing.
type apiTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
}

// makeRequest performs an HTTP request and returns the response and body.
// An empty token sends the request unauthenticated.
func (ctx *apiTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	token string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// registerUser creates an account through the public registration endpoint.
func (ctx *apiTestContext) registerUser(t *testing.T, name, email, password string) userDTO.UserResponse {
	t.Helper()

	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/users", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, "registration failed: %s", body)

	var user userDTO.UserResponse
	require.NoError(t, json.Unmarshal(body, &user))
	return user
}

// login exchanges credentials for a session token.
func (ctx *apiTestContext) login(t *testing.T, email, password string) string {
	t.Helper()

	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, "login failed: %s", body)

	var output struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &output))
	require.NotEmpty(t, output.Token)
	return output.Token
}

// promoteToAdmin elevates a registered user directly in the database.
// Bootstrapping the first administrator has no API surface by design.
func (ctx *apiTestContext) promoteToAdmin(t *testing.T, userID string) {
	t.Helper()

	repo, err := ctx.container.UserRepository()
	require.NoError(t, err, "failed to get user repository")

	id, err := uuid.Parse(userID)
	require.NoError(t, err)

	err = repo.UpdateRole(context.Background(), id, identityDomain.RoleAdmin)
	require.NoError(t, err, "failed to promote user to admin")
}

// setupAPITest initializes all components for integration testing.
func setupAPITest(t *testing.T) *apiTestContext {
	t.Helper()

	testutil.SkipIfNoPostgres(t)

	gin.SetMode(gin.TestMode)

	db := testutil.SetupPostgresDB(t)

	cfg := &config.Config{
		DBDriver:                 "postgres",
		DBConnectionString:       testutil.GetPostgresTestDSN(),
		DBMaxOpenConnections:     10,
		DBMaxIdleConnections:     5,
		DBConnMaxLifetime:        time.Hour,
		ServerHost:               "localhost",
		ServerPort:               8080,
		LogLevel:                 "error",
		AuthTokenSecret:          "integration-test-secret",
		AuthTokenExpiration:      time.Hour,
		LoginRateLimitEnabled:    false,
		BlogTitleMinLength:       1,
		BlogDescriptionMinLength: 1,
		ImageBucketURL:           "mem://",
		ImageBaseURL:             "http://localhost:8080/images",
		MetricsEnabled:           false,
	}

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	testServer := httptest.NewServer(handler)

	return &apiTestContext{
		container: container,
		db:        db,
		server:    testServer,
	}
}

// teardownAPITest cleans up all resources.
func teardownAPITest(t *testing.T, ctx *apiTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.CleanupPostgresDB(t, ctx.db)
		testutil.TeardownDB(t, ctx.db)
	}
}

func TestAPI_RegistrationAndLogin(t *testing.T) {
	ctx := setupAPITest(t)
	defer teardownAPITest(t, ctx)

	user := ctx.registerUser(t, "Alice", "alice@example.com", "Password123")
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "USER", user.Role)
	assert.Empty(t, user.Permissions)

	// Login with the right credentials
	token := ctx.login(t, "alice@example.com", "Password123")
	assert.NotEmpty(t, token)

	// Wrong password is rejected without revealing which field was wrong
	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "WrongPassword1",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "unauthorized")

	// Duplicate registration conflicts
	resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/users", map[string]string{
		"name":     "Alice Again",
		"email":    "alice@example.com",
		"password": "Password123",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_PermissionGrantFlow(t *testing.T) {
	ctx := setupAPITest(t)
	defer teardownAPITest(t, ctx)

	admin := ctx.registerUser(t, "Admin", "admin@example.com", "Password123")
	ctx.promoteToAdmin(t, admin.ID)
	adminToken := ctx.login(t, "admin@example.com", "Password123")

	writer := ctx.registerUser(t, "Writer", "writer@example.com", "Password123")
	writerToken := ctx.login(t, "writer@example.com", "Password123")

	blogInput := map[string]interface{}{
		"title":       "My first post",
		"description": "A description long enough",
		"category":    "tech",
		"tags":        []string{"go"},
	}

	// Without a grant the writer cannot create blogs
	resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/blogs", blogInput, writerToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Non-admins cannot grant capabilities
	grantPath := fmt.Sprintf("/v1/users/%s/permissions", writer.ID)
	resp, _ = ctx.makeRequest(t, http.MethodPost, grantPath,
		map[string]string{"capability": "CREATE_BLOG"}, writerToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The admin grants CREATE_BLOG
	resp, body := ctx.makeRequest(t, http.MethodPost, grantPath,
		map[string]string{"capability": "CREATE_BLOG"}, adminToken)
	require.Equal(t, http.StatusOK, resp.StatusCode, "grant failed: %s", body)

	var updated userDTO.UserResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Contains(t, updated.Permissions, "CREATE_BLOG")

	// Now the writer can create blogs
	resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/blogs", blogInput, writerToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create blog failed: %s", body)

	var blog blogDTO.BlogResponse
	require.NoError(t, json.Unmarshal(body, &blog))
	assert.Equal(t, "My first post", blog.Title)
	assert.Equal(t, writer.ID, blog.AuthorID)
}

func TestAPI_BlogReadsArePublic(t *testing.T) {
	ctx := setupAPITest(t)
	defer teardownAPITest(t, ctx)

	admin := ctx.registerUser(t, "Admin", "admin@example.com", "Password123")
	ctx.promoteToAdmin(t, admin.ID)
	adminToken := ctx.login(t, "admin@example.com", "Password123")

	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/blogs", map[string]interface{}{
		"title":       "Public post",
		"description": "Readable by anyone",
		"category":    "general",
	}, adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create blog failed: %s", body)

	var blog blogDTO.BlogResponse
	require.NoError(t, json.Unmarshal(body, &blog))

	// List without authentication
	resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/blogs", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Data []blogDTO.BlogResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, blog.ID, list.Data[0].ID)

	// Fetch a single blog without authentication, view counter moves
	resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/blogs/"+blog.ID, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched blogDTO.BlogResponse
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, int64(1), fetched.Views)

	// Search by category
	resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/blogs?search=general", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Data, 1)

	resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/blogs?search=nomatch", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Data, 0)

	// Mutations still require authentication
	resp, _ = ctx.makeRequest(t, http.MethodPut, "/v1/blogs/"+blog.ID, map[string]interface{}{
		"title":       "Hijacked",
		"description": "Should not happen",
		"category":    "general",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_CommentLifecycle(t *testing.T) {
	ctx := setupAPITest(t)
	defer teardownAPITest(t, ctx)

	admin := ctx.registerUser(t, "Admin", "admin@example.com", "Password123")
	ctx.promoteToAdmin(t, admin.ID)
	adminToken := ctx.login(t, "admin@example.com", "Password123")

	ctx.registerUser(t, "Commenter", "commenter@example.com", "Password123")
	commenterToken := ctx.login(t, "commenter@example.com", "Password123")

	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/blogs", map[string]interface{}{
		"title":       "Commented post",
		"description": "Has comments",
		"category":    "general",
	}, adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create blog failed: %s", body)

	var blog blogDTO.BlogResponse
	require.NoError(t, json.Unmarshal(body, &blog))

	commentsPath := "/v1/blogs/" + blog.ID + "/comments"

	// Any authenticated user can comment
	resp, body = ctx.makeRequest(t, http.MethodPost, commentsPath,
		map[string]string{"content": "Great read!"}, commenterToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "add comment failed: %s", body)

	var comment commentDTO.CommentResponse
	require.NoError(t, json.Unmarshal(body, &comment))
	assert.Equal(t, "Great read!", comment.Content)

	// Anonymous users cannot comment
	resp, _ = ctx.makeRequest(t, http.MethodPost, commentsPath,
		map[string]string{"content": "drive-by"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Comment listing is public
	resp, body = ctx.makeRequest(t, http.MethodGet, commentsPath, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Data []commentDTO.CommentResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Data, 1)

	// The admin cannot delete someone else's comment, ownership is strict
	resp, _ = ctx.makeRequest(t, http.MethodDelete, "/v1/comments/"+comment.ID, nil, adminToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// The author can
	resp, _ = ctx.makeRequest(t, http.MethodDelete, "/v1/comments/"+comment.ID, nil, commenterToken)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = ctx.makeRequest(t, http.MethodGet, commentsPath, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Data, 0)
}

func TestAPI_BlogDeleteCascadesComments(t *testing.T) {
	ctx := setupAPITest(t)
	defer teardownAPITest(t, ctx)

	admin := ctx.registerUser(t, "Admin", "admin@example.com", "Password123")
	ctx.promoteToAdmin(t, admin.ID)
	adminToken := ctx.login(t, "admin@example.com", "Password123")

	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/blogs", map[string]interface{}{
		"title":       "Doomed post",
		"description": "Will be removed",
		"category":    "general",
	}, adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create blog failed: %s", body)

	var blog blogDTO.BlogResponse
	require.NoError(t, json.Unmarshal(body, &blog))

	resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/blogs/"+blog.ID+"/comments",
		map[string]string{"content": "soon gone"}, adminToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = ctx.makeRequest(t, http.MethodDelete, "/v1/blogs/"+blog.ID, nil, adminToken)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/blogs/"+blog.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// No orphan comments remain
	var count int
	err := ctx.db.QueryRow("SELECT COUNT(*) FROM comments").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
