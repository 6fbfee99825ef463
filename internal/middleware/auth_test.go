package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/notemind/notemind/internal/constants"
	"github.com/notemind/notemind/internal/model"
	"github.com/notemind/notemind/internal/repository"
	"github.com/notemind/notemind/internal/service"
	"github.com/notemind/notemind/pkg/logger"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.InitTestLogger()
}

func newAuthTestRig(t *testing.T) (*gin.Engine, *service.TokenService, *model.User) {
	t.Helper()

	users := repository.NewMemoryUserRepository()
	user := &model.User{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "irrelevant-hash",
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	tokens := service.NewTokenService("middleware-test-secret", time.Hour)
	session := NewSessionMiddleware(tokens, users)

	router := gin.New()
	router.GET("/protected", session.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUserID(c)})
	})

	return router, tokens, user
}

func doRequest(router *gin.Engine, decorate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthBearerHeader(t *testing.T) {
	router, tokens, user := newAuthTestRig(t)

	token, err := tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	rec := doRequest(router, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if uint(body["user_id"].(float64)) != user.ID {
		t.Errorf("user_id = %v, want %d", body["user_id"], user.ID)
	}
}

func TestRequireAuthCookieFallback(t *testing.T) {
	router, tokens, user := newAuthTestRig(t)

	token, err := tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	rec := doRequest(router, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: constants.CookieToken, Value: token})
	})
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireAuthHeaderWinsOverCookie(t *testing.T) {
	router, tokens, user := newAuthTestRig(t)

	good, err := tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// A valid cookie does not rescue a garbage header.
	rec := doRequest(router, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not-a-token")
		req.AddCookie(&http.Cookie{Name: constants.CookieToken, Value: good})
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

// Every rejection path returns the identical status and body.
func TestRequireAuthUniformRejection(t *testing.T) {
	router, tokens, user := newAuthTestRig(t)

	expired := service.NewTokenService("middleware-test-secret", -time.Hour)
	expiredToken, err := expired.Issue(user.ID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	wrongSecret := service.NewTokenService("some-other-secret", time.Hour)
	forgedToken, err := wrongSecret.Issue(user.ID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	ghostToken, err := tokens.Issue(9999)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	cases := []struct {
		name     string
		decorate func(*http.Request)
	}{
		{"no credentials", nil},
		{"malformed header", func(req *http.Request) {
			req.Header.Set("Authorization", "Token abc")
		}},
		{"garbage token", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer garbage")
		}},
		{"expired token", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+expiredToken)
		}},
		{"wrong secret", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+forgedToken)
		}},
		{"deleted user", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+ghostToken)
		}},
	}

	var firstBody string
	for _, tc := range cases {
		rec := doRequest(router, tc.decorate)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, http.StatusUnauthorized)
		}
		if firstBody == "" {
			firstBody = rec.Body.String()
			continue
		}
		if rec.Body.String() != firstBody {
			t.Errorf("%s: body %q differs from %q", tc.name, rec.Body.String(), firstBody)
		}
	}
}
