package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/firmdex/firmdex-api/internal/auth"
	"github.com/firmdex/firmdex-api/internal/dashboard"
	"github.com/firmdex/firmdex-api/internal/models"
	"github.com/firmdex/firmdex-api/internal/store"
	"github.com/firmdex/firmdex-api/pkg/middleware"
)

const testSecret = "handler-test-secret-32-bytes-long"

// newTestRouter wires the full API against in-memory stores, mirroring the
// production route setup in main.go.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	g := gin.New()

	companies := store.NewMemory[models.Company]("legalNumber")
	products := store.NewMemory[models.Product]()
	users := store.NewMemory[models.User]("email")
	authSvc := auth.NewService(users, testSecret)
	protect := middleware.Auth(authSvc)

	api := g.Group("/api")
	NewAuthHandler(authSvc).Register(api)
	NewCompanyHandler(companies).Register(api, protect)
	NewProductHandler(products, companies).Register(api, protect)
	NewDashboardHandler(dashboard.NewStoreReader(companies, products)).Register(api)
	return g
}

func doRequest(t *testing.T, g *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

// loginToken registers a user and logs in, returning a valid bearer token.
func loginToken(t *testing.T, g *gin.Engine) string {
	t.Helper()
	w := doRequest(t, g, http.MethodPost, "/api/auth/register", "",
		gin.H{"name": "Admin", "email": "admin@x.com", "password": "secret"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, g, http.MethodPost, "/api/auth/login", "",
		gin.H{"email": "admin@x.com", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}
