package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/summer-school-api/internal/handler"
	"github.com/noah-isme/summer-school-api/internal/middleware"
	"github.com/noah-isme/summer-school-api/internal/models"
	"github.com/noah-isme/summer-school-api/internal/repository"
	"github.com/noah-isme/summer-school-api/internal/service"
	"github.com/noah-isme/summer-school-api/pkg/config"
	"github.com/noah-isme/summer-school-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/summer-school-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/summer-school-api/pkg/middleware/requestid"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Class      *handler.ClassHandler
	Enrollment *handler.EnrollmentHandler
	Payment    *handler.PaymentHandler
	Metrics    *handler.MetricsHandler
}

// Deps carries the cross-cutting pieces the route guards need.
type Deps struct {
	Auth    *service.AuthService
	Users   *repository.UserRepository
	Audit   *service.AuditService
	Metrics *service.MetricsService
	Logger  *zap.Logger
}

// Setup wires the full route surface onto a fresh engine.
func Setup(cfg *config.Config, handlers *Handlers, deps *Deps) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.GET("/", handlers.Metrics.Root)
	r.GET("/health", handlers.Metrics.Health)
	r.GET("/metrics", handlers.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Public surface: catalog reads, registration, token issuance.
	r.POST("/jwt", handlers.Auth.CreateToken)
	r.POST("/newUser", handlers.User.Register)
	r.GET("/allClasses", handlers.Class.All)
	r.GET("/popularClasses", handlers.Class.Popular)
	r.GET("/instructors", handlers.User.Instructors)
	r.GET("/popularInstructors", handlers.User.PopularInstructors)
	r.GET("/selectedClass/:id", handlers.Enrollment.SelectedByID)

	jwt := middleware.JWT(deps.Auth)
	self := middleware.SelfMatch()
	admin := middleware.RequireRole(deps.Users, models.RoleAdmin)

	// Token holder only: the payer identity comes from the claims.
	authed := r.Group("/", jwt)
	{
		authed.POST("/studentsClass/:id", handlers.Enrollment.Select)
		authed.POST("/create-payment-intent", handlers.Payment.CreateIntent)
		authed.POST("/payments", handlers.Payment.Settle)
	}

	// Self-matched: the :email segment must equal the token subject.
	owned := r.Group("/", jwt, self)
	{
		owned.GET("/allUsers/admin/:email", handlers.User.IsAdmin)
		owned.GET("/allUsers/instructor/:email", handlers.User.IsInstructor)
		owned.GET("/allUsers/student/:email", handlers.User.IsStudent)
		owned.GET("/pendingClasses/:email", handlers.Enrollment.Pending)
		owned.GET("/getPaidClasses/:email", handlers.Enrollment.Paid)
		owned.GET("/sortedPaidClasses/:email", handlers.Payment.History)
		owned.GET("/sortedPaidClasses/:email/export", handlers.Payment.Export)
		owned.GET("/getInstructorClasses/:email", handlers.Class.ByInstructor)
		owned.POST("/addAClass/:email", handlers.Class.Add)
		owned.DELETE("/studentsClass/:id/:email", handlers.Enrollment.Delete)
	}

	// Admin review surface, audited.
	review := r.Group("/", jwt, self, admin)
	{
		review.GET("/getAllClassForAdmin/:email", handlers.Class.AllForAdmin)
		review.PATCH("/updateStatus/:id/:email/:status",
			middleware.Audit(deps.Audit, models.AuditActionStatusChange, "class"),
			handlers.Class.UpdateStatus)
		review.PATCH("/handleFeedback/:email/:id",
			middleware.Audit(deps.Audit, models.AuditActionFeedback, "class"),
			handlers.Class.HandleFeedback)
	}

	return r
}
