package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crimewatch-be/models"
	"crimewatch-be/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(tokens *utils.TokenService, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claims missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "role": claims.Role})
	})
	r.GET("/protected", handlers...)
	return r
}

func issueToken(t *testing.T, tokens *utils.TokenService, role string) (string, string) {
	t.Helper()
	user := &models.User{ID: primitive.NewObjectID(), Email: "t@example.com", Role: role}
	signed, err := tokens.Issue(user)
	require.NoError(t, err)
	return signed, user.ID.Hex()
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	tokens := utils.NewTokenService("secret", time.Hour)
	r := newAuthRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No authorization token provided")
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	tokens := utils.NewTokenService("secret", time.Hour)
	r := newAuthRouter(tokens)
	signed, userID := issueToken(t, tokens, models.RoleCitizen)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID)
	assert.Contains(t, w.Body.String(), models.RoleCitizen)
}

func TestAuthMiddlewareBareTokenWithoutBearerPrefix(t *testing.T) {
	tokens := utils.NewTokenService("secret", time.Hour)
	r := newAuthRouter(tokens)
	signed, _ := issueToken(t, tokens, models.RoleCitizen)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	tokens := utils.NewTokenService("secret", -time.Minute)
	r := newAuthRouter(utils.NewTokenService("secret", time.Hour))
	signed, _ := issueToken(t, tokens, models.RoleCitizen)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := newAuthRouter(utils.NewTokenService("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization token")
}

func TestRequireRoleAllowsMatch(t *testing.T) {
	tokens := utils.NewTokenService("secret", time.Hour)
	r := newAuthRouter(tokens, RequireRole(models.RoleOfficer, models.RoleAdmin))
	signed, _ := issueToken(t, tokens, models.RoleOfficer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRejectsMismatch(t *testing.T) {
	tokens := utils.NewTokenService("secret", time.Hour)
	r := newAuthRouter(tokens, RequireRole(models.RoleAdmin))
	signed, _ := issueToken(t, tokens, models.RoleCitizen)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied")
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/admin", RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
