package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/firmdex/firmdex-api/internal/auth"
)

func TestAuth_RegisterThenLogin(t *testing.T) {
	g := newTestRouter(t)

	w := doRequest(t, g, http.MethodPost, "/api/auth/register", "",
		gin.H{"name": "A", "email": "a@x.com", "password": "secret"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.JSONEq(t, `{"message":"User registered successfully"}`, w.Body.String())

	w = doRequest(t, g, http.MethodPost, "/api/auth/login", "",
		gin.H{"email": "a@x.com", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)

	var session struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
		Name   string `json:"name"`
	}
	decodeBody(t, w, &session)
	require.NotEmpty(t, session.Token)
	require.NotEmpty(t, session.UserID)
	require.Equal(t, "A", session.Name)

	// registration alone must not grant access; the login token must
	w = doRequest(t, g, http.MethodGet, "/api/companies", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	g := newTestRouter(t)

	w := doRequest(t, g, http.MethodPost, "/api/auth/register", "",
		gin.H{"name": "A", "email": "a@x.com", "password": "secret"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, g, http.MethodPost, "/api/auth/register", "",
		gin.H{"name": "B", "email": "a@x.com", "password": "other"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"message":"User already exists"}`, w.Body.String())
}

func TestAuth_LoginFailuresAreIdentical(t *testing.T) {
	g := newTestRouter(t)

	w := doRequest(t, g, http.MethodPost, "/api/auth/register", "",
		gin.H{"name": "A", "email": "a@x.com", "password": "secret"})
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPassword := doRequest(t, g, http.MethodPost, "/api/auth/login", "",
		gin.H{"email": "a@x.com", "password": "wrong"})
	unknownEmail := doRequest(t, g, http.MethodPost, "/api/auth/login", "",
		gin.H{"email": "nobody@x.com", "password": "anything"})

	require.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	require.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	require.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestAuth_RegisterValidation(t *testing.T) {
	g := newTestRouter(t)

	w := doRequest(t, g, http.MethodPost, "/api/auth/register", "", gin.H{"email": "a@x.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuth_ExpiredTokenRejected(t *testing.T) {
	g := newTestRouter(t)

	// a token signed with the right secret but already past its expiry
	expired, err := auth.SignToken(testSecret, "507f1f77bcf86cd799439011", -time.Minute)
	require.NoError(t, err)

	w := doRequest(t, g, http.MethodGet, "/api/companies", expired, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"message":"Unauthorized - Invalid token"}`, w.Body.String())
}
