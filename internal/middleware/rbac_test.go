package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sgpa-dev/sgpa-api/internal/authz"
	"github.com/sgpa-dev/sgpa-api/internal/models"
)

func routerWithClaims(claims *models.JWTClaims, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(ContextUserKey, claims)
		}
		c.Next()
	})
	router.GET("/", guard, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestRequireOperation(t *testing.T) {
	tests := []struct {
		name   string
		claims *models.JWTClaims
		op     authz.Operation
		want   int
	}{
		{"director may submit", &models.JWTClaims{UserID: "u1", Role: models.RoleDirector}, authz.OpSubmitRequest, http.StatusNoContent},
		{"reviewer may not submit", &models.JWTClaims{UserID: "u2", Role: models.RoleReviewer}, authz.OpSubmitRequest, http.StatusForbidden},
		{"reviewer may approve forms", &models.JWTClaims{UserID: "u2", Role: models.RoleReviewer}, authz.OpApproveForm, http.StatusNoContent},
		{"missing claims", nil, authz.OpSubmitRequest, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router := routerWithClaims(tt.claims, RequireOperation(tt.op))
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
			if recorder.Code != tt.want {
				t.Fatalf("unexpected status: got %d want %d", recorder.Code, tt.want)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	recorder := httptest.NewRecorder()
	router := routerWithClaims(&models.JWTClaims{UserID: "u1", Role: models.RolePlain}, RequireRoles(models.RoleDirector, models.RoleReviewer))
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
}
