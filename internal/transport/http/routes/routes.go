package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/port"
	"github.com/manish9869/onehealth-api/internal/infra/config"
	"github.com/manish9869/onehealth-api/internal/transport/http/handlers"
	"github.com/manish9869/onehealth-api/internal/transport/http/middleware"
	"github.com/manish9869/onehealth-api/internal/usecase"
)

// Dependencies carries everything the router needs to wire the API surface.
type Dependencies struct {
	Config *config.AppConfig
	Logger *zap.Logger

	Guard    *usecase.AccessGuard
	Sessions port.SessionStore

	AuthHandler        *handlers.AuthHandler
	NavigationHandler  *handlers.NavigationHandler
	PatientHandler     *handlers.PatientHandler
	CaseHistoryHandler *handlers.CaseHistoryHandler
	InvoiceHandler     *handlers.InvoiceHandler
	AppointmentHandler *handlers.AppointmentHandler
	StaffHandler       *handlers.StaffHandler
	CatalogHandler     *handlers.CatalogHandler
	ReminderHandler    *handlers.ReminderHandler
	ExpenseHandler     *handlers.ExpenseHandler
	UserHandler        *handlers.UserHandler
	DashboardHandler   *handlers.DashboardHandler
	HealthHandler      *handlers.HealthHandler

	Metrics      *middleware.HTTPMetrics
	LoginLimiter usecase.RateLimiter
}

// NewRouter assembles the gin engine with the full middleware chain and every
// API route group.
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.HTTP.AllowedOrigins))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	r.GET("/healthz", deps.HealthHandler.Status)
	r.GET("/readyz", deps.HealthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r)

	api := r.Group("/api/v1")

	// Public endpoints sit outside the session guard and behind the login
	// rate limiter.
	public := api.Group("/auth")
	if deps.LoginLimiter != nil {
		public.Use(middleware.RateLimit(deps.LoginLimiter, deps.Logger))
	}
	public.POST("/login", deps.AuthHandler.Login)
	public.POST("/forgot-password", deps.AuthHandler.ForgotPassword)
	public.POST("/forgot-password/reset", deps.AuthHandler.ResetPassword)

	protected := api.Group("")
	protected.Use(middleware.SessionGuard(deps.Guard, deps.Sessions))

	auth := protected.Group("/auth")
	auth.POST("/logout", deps.AuthHandler.Logout)
	auth.POST("/2fa/enroll", middleware.RequireUser(), deps.AuthHandler.EnrollTwoFA)
	auth.POST("/2fa/verify", middleware.RequireUser(), deps.AuthHandler.VerifyTwoFA)
	auth.DELETE("/2fa", middleware.RequireUser(), deps.AuthHandler.DisableTwoFA)

	protected.GET("/feature-permission/user/permission", middleware.RequireUser(), deps.NavigationHandler.UserPermissions)
	protected.GET("/navigation", middleware.RequireUser(), deps.NavigationHandler.Menu)
	protected.GET("/navigation/menu", middleware.RequireUser(), deps.NavigationHandler.MenuEntries)
	protected.GET("/dashboard", deps.DashboardHandler.Summary)

	customers := protected.Group("/customers")
	customers.POST("", deps.PatientHandler.Create)
	customers.GET("", deps.PatientHandler.List)
	customers.GET("/:id", deps.PatientHandler.Get)
	customers.PUT("/:id", deps.PatientHandler.Update)
	customers.DELETE("/:id", deps.PatientHandler.Delete)

	cases := protected.Group("/case-history")
	cases.POST("", deps.CaseHistoryHandler.Create)
	cases.GET("/:id", deps.CaseHistoryHandler.Get)
	cases.PUT("/:id", deps.CaseHistoryHandler.Update)
	cases.DELETE("/:id", deps.CaseHistoryHandler.Delete)
	cases.GET("/patient/:patientID", deps.CaseHistoryHandler.ListByPatient)

	invoices := protected.Group("/invoices")
	invoices.POST("/preview", deps.InvoiceHandler.Preview)
	invoices.POST("", deps.InvoiceHandler.Issue)
	invoices.GET("/:id", deps.InvoiceHandler.Get)
	invoices.POST("/:id/payments", deps.InvoiceHandler.RecordPayment)
	invoices.GET("/patient/:patientID", deps.InvoiceHandler.ListByPatient)
	invoices.GET("/past-payments/:caseID", deps.InvoiceHandler.PastPayments)

	appointments := protected.Group("/appointments")
	appointments.POST("", deps.AppointmentHandler.Book)
	appointments.GET("", deps.AppointmentHandler.Schedule)
	appointments.GET("/:id", deps.AppointmentHandler.Get)
	appointments.PUT("/:id/reschedule", deps.AppointmentHandler.Reschedule)
	appointments.PUT("/:id/status", deps.AppointmentHandler.SetStatus)
	appointments.DELETE("/:id", deps.AppointmentHandler.Cancel)

	staff := protected.Group("/staff")
	staff.POST("", deps.StaffHandler.Create)
	staff.GET("", deps.StaffHandler.List)
	staff.GET("/:id", deps.StaffHandler.Get)
	staff.PUT("/:id", deps.StaffHandler.Update)
	staff.DELETE("/:id", deps.StaffHandler.Delete)

	medicines := protected.Group("/medicines")
	medicines.POST("", deps.CatalogHandler.CreateMedicine)
	medicines.GET("", deps.CatalogHandler.ListMedicines)
	medicines.GET("/:id", deps.CatalogHandler.GetMedicine)
	medicines.PUT("/:id", deps.CatalogHandler.UpdateMedicine)
	medicines.DELETE("/:id", deps.CatalogHandler.DeleteMedicine)

	treatments := protected.Group("/treatments")
	treatments.POST("", deps.CatalogHandler.CreateTreatment)
	treatments.GET("", deps.CatalogHandler.ListTreatments)
	treatments.GET("/:id", deps.CatalogHandler.GetTreatment)
	treatments.PUT("/:id", deps.CatalogHandler.UpdateTreatment)
	treatments.DELETE("/:id", deps.CatalogHandler.DeleteTreatment)

	conditions := protected.Group("/medical-condition")
	conditions.POST("", deps.CatalogHandler.CreateCondition)
	conditions.GET("", deps.CatalogHandler.ListConditions)
	conditions.GET("/:id", deps.CatalogHandler.GetCondition)
	conditions.PUT("/:id", deps.CatalogHandler.UpdateCondition)
	conditions.DELETE("/:id", deps.CatalogHandler.DeleteCondition)

	reminders := protected.Group("/reminders")
	reminders.POST("", deps.ReminderHandler.Schedule)
	reminders.GET("", deps.ReminderHandler.List)
	reminders.PUT("/:id", deps.ReminderHandler.Update)
	reminders.PUT("/:id/done", deps.ReminderHandler.MarkDone)
	reminders.DELETE("/:id", deps.ReminderHandler.Delete)

	expenses := protected.Group("/expenses")
	expenses.POST("", deps.ExpenseHandler.Record)
	expenses.GET("", deps.ExpenseHandler.Report)
	expenses.GET("/:id", deps.ExpenseHandler.Get)
	expenses.PUT("/:id", deps.ExpenseHandler.Update)
	expenses.DELETE("/:id", deps.ExpenseHandler.Delete)

	users := protected.Group("/users")
	users.Use(middleware.RequireUser())
	users.POST("", deps.UserHandler.Create)
	users.GET("", deps.UserHandler.List)
	users.GET("/:id", deps.UserHandler.Get)
	users.PUT("/:id", deps.UserHandler.Update)
	users.POST("/:id/features/:featureID", deps.UserHandler.GrantFeature)
	users.DELETE("/:id/features/:featureID", deps.UserHandler.RevokeFeature)

	return r
}
