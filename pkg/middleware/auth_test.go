package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeVerifier struct {
	userID string
	err    error
}

func (f *fakeVerifier) Verify(raw string) (string, error) {
	return f.userID, f.err
}

func newAuthRouter(ver TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.GET("/protected", Auth(ver), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString(UserIDKey)})
	})
	return g
}

func TestAuth_MissingHeader(t *testing.T) {
	g := newAuthRouter(&fakeVerifier{userID: "u1"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	g.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuth_WrongScheme(t *testing.T) {
	g := newAuthRouter(&fakeVerifier{userID: "u1"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	g.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	g := newAuthRouter(&fakeVerifier{err: errors.New("bad token")})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	g.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuth_ValidTokenInjectsUserID(t *testing.T) {
	g := newAuthRouter(&fakeVerifier{userID: "user-42"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	g.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != `{"userID":"user-42"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}
