package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sgpa-dev/sgpa-api/internal/authz"
	"github.com/sgpa-dev/sgpa-api/internal/middleware"
	"github.com/sgpa-dev/sgpa-api/internal/models"
	"github.com/sgpa-dev/sgpa-api/internal/service"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Projects      *ProjectHandler
	Forms         *FormHandler
	Requests      *RequestHandler
	Notifications *NotificationHandler
	Workflow      *WorkflowHandler
	Exports       *ExportHandler
	Metrics       *MetricsHandler
}

// RouterOptions tunes optional route groups.
type RouterOptions struct {
	AuthService *service.AuthService
	MetricsSvc  *service.MetricsService
	EnableDocs  bool
}

// RegisterRoutes mounts all endpoints on the router. Every route under the
// API groups requires a valid token; role checks mirror the authorization
// rules the services enforce.
func RegisterRoutes(r *gin.Engine, h Handlers, opts RouterOptions) {
	r.Use(middleware.Metrics(opts.MetricsSvc))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/auth/login", h.Auth.Login)

	auth := middleware.JWT(opts.AuthService)

	authGroup := r.Group("/auth", auth)
	{
		authGroup.GET("/me", h.Auth.Me)
	}

	users := r.Group("/users", auth, middleware.RequireOperation(authz.OpManageUsers))
	{
		users.GET("", h.Users.List)
		users.POST("", h.Users.Create)
		users.GET("/:id", h.Users.Get)
		users.PUT("/:id", h.Users.Update)
		users.DELETE("/:id", h.Users.Delete)
	}

	projects := r.Group("/projects", auth)
	{
		projects.GET("", h.Projects.List)
		projects.GET("/:id", h.Projects.Get)
		projects.POST("", middleware.RequireOperation(authz.OpCreateProject), h.Projects.Create)
		projects.PUT("/:id", middleware.RequireOperation(authz.OpUpdateProject), h.Projects.Update)
		projects.POST("/extract-helper-count", middleware.RequireOperation(authz.OpCreateProject), h.Projects.ExtractHelperCount)
	}

	forms := r.Group("/forms", auth)
	{
		forms.GET("", h.Forms.List)
		forms.POST("", middleware.RequireOperation(authz.OpRegisterForm), h.Forms.Register)
		forms.POST("/:id/approve", middleware.RequireOperation(authz.OpApproveForm), h.Forms.Approve)
		forms.POST("/:id/reject", middleware.RequireOperation(authz.OpRejectForm), h.Forms.Reject)
	}

	requests := r.Group("/requests", auth)
	{
		requests.GET("", h.Requests.List)
		requests.GET("/:id", h.Requests.Get)
		requests.POST("", middleware.RequireOperation(authz.OpSubmitRequest), h.Requests.Submit)
		requests.POST("/:id/approve", middleware.RequireOperation(authz.OpSetRequestStatus), h.Requests.Approve)
		requests.POST("/:id/reject", middleware.RequireOperation(authz.OpSetRequestStatus), h.Requests.Reject)
		requests.POST("/:id/advise", middleware.RequireOperation(authz.OpSetRequestStatus), h.Requests.Advise)
	}

	notifications := r.Group("/notifications", auth)
	{
		notifications.GET("", h.Notifications.List)
		notifications.POST("", middleware.RequireOperation(authz.OpPushNotification), h.Notifications.Push)
		notifications.POST("/:id/read", h.Notifications.MarkRead)
		notifications.POST("/:id/unread", h.Notifications.MarkUnread)
	}

	workflow := r.Group("/workflow", auth)
	{
		workflow.GET("/summary", h.Workflow.Summary)
	}

	r.POST("/quota/evaluate", auth, middleware.RequireOperation(authz.OpEvaluateQuota), h.Workflow.EvaluateQuotas)

	exports := r.Group("/exports", auth, middleware.RequireRoles(models.RoleReviewer))
	{
		exports.GET("/forms", h.Exports.Forms)
		exports.GET("/requests", h.Exports.Requests)
	}
}
