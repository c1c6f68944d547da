package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/zhotheone/nailapp/internal/audit"
	"github.com/zhotheone/nailapp/internal/cache"
	"github.com/zhotheone/nailapp/internal/config"
	domain "github.com/zhotheone/nailapp/internal/domain/appointment"
	"github.com/zhotheone/nailapp/internal/handlers"
	"github.com/zhotheone/nailapp/internal/infra/objectstore"
	infraRepo "github.com/zhotheone/nailapp/internal/infra/repository"
	"github.com/zhotheone/nailapp/internal/middleware"
	"github.com/zhotheone/nailapp/internal/ratelimit"
	"github.com/zhotheone/nailapp/internal/session"
	ucAppointment "github.com/zhotheone/nailapp/internal/usecase/appointment"
	authuc "github.com/zhotheone/nailapp/internal/usecase/auth"
	ucSchedule "github.com/zhotheone/nailapp/internal/usecase/schedule"
	ucStats "github.com/zhotheone/nailapp/internal/usecase/stats"
	"github.com/zhotheone/nailapp/internal/web"
)

// Deps are the long-lived singletons built and torn down by main.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Location  *time.Location
	Cache     cache.Cache
	Audit     audit.Recorder
	Reminders domain.Reminders
	// Store may be nil; calendar exports are then returned inline.
	Store objectstore.Store
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.Metrics(),
		middleware.SecurityHeaders(),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	statsRepo := infraRepo.NewStatsGormRepository(d.DB)

	sessions := session.NewManager(d.Cache, cfg.SessionSecret, cfg.SessionTTL, cfg.SessionTouchAfter)
	loginLimiter := ratelimit.New(d.Cache, "login", cfg.LoginRateLimit, cfg.LoginRateWindow)

	cookies := middleware.Cookies{
		Name:   cfg.SessionCookieName,
		TTL:    cfg.SessionTTL,
		Secure: cfg.IsProduction(),
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Reminders, d.Audit)
	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(appointmentRepo, d.Reminders, d.Audit)
	changeStatusUC := ucAppointment.NewChangeStatus(appointmentRepo, d.Reminders, d.Audit)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(appointmentRepo, d.Reminders, d.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo, d.Location)

	availabilityUC := ucAppointment.NewGetAvailability(scheduleRepo, appointmentRepo, d.Location)
	calendarUC := ucAppointment.NewCalendar(availabilityUC, d.Location)
	exportUC := ucAppointment.NewExportMonth(calendarUC, d.Store)

	scheduleRegistry := ucSchedule.NewRegistry(scheduleRepo, d.Audit)
	reports := ucStats.NewReports(statsRepo, d.Cache, cfg.CacheTTL, d.Location)

	loginUC := authuc.NewLogin(userRepo, sessions, d.Audit)
	logoutUC := authuc.NewLogout(sessions, d.Audit)
	authenticateUC := authuc.NewAuthenticate(userRepo, sessions)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB)
	authHandler := handlers.NewAuthHandler(loginUC, logoutUC, authenticateUC, cookies)
	meHandler := handlers.NewMeHandler()
	webHandler := handlers.NewWebHandler(authenticateUC, cookies, d.Location)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		getAppointmentUC,
		updateAppointmentUC,
		changeStatusUC,
		deleteAppointmentUC,
		listAppointmentsUC,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC, d.Location)
	calendarHandler := handlers.NewCalendarHandler(calendarUC, exportUC, d.Location)
	scheduleHandler := handlers.NewScheduleHandler(scheduleRegistry)
	clientHandler := handlers.NewClientHandler(d.DB, d.Reminders, d.Audit)
	procedureHandler := handlers.NewProcedureHandler(d.DB, d.Audit)
	statsHandler := handlers.NewStatsHandler(reports)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Location)

	requireSession := middleware.SessionAuth(authenticateUC, cookies)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// WEB (HTML)
	// ======================================================
	r.SetHTMLTemplate(web.Templates())
	r.GET("/login", webHandler.LoginPage)
	r.GET("/", requireSession, webHandler.Dashboard)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		{
			authAPI.POST("/login",
				middleware.RateLimit(loginLimiter, "Too many login attempts, please try again later"),
				authHandler.Login,
			)
			authAPI.POST("/logout", authHandler.Logout)
			authAPI.GET("/status", authHandler.Status)
			authAPI.GET("/check", authHandler.Status)
		}

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(requireSession, middleware.InvalidateOnWrite(reports.Invalidate))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/schedules", scheduleHandler.List)
			secured.POST("/schedules", scheduleHandler.Upsert)
			secured.PUT("/schedules/:id", scheduleHandler.Replace)

			secured.GET("/availability", availabilityHandler.Get)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// CLIENTS / PROCEDURES
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.GET("/procedures", procedureHandler.List)
			secured.POST("/procedures", procedureHandler.Create)
			secured.GET("/procedures/:id", procedureHandler.Get)
			secured.PUT("/procedures/:id", procedureHandler.Update)
			secured.DELETE("/procedures/:id", procedureHandler.Delete)

			// ------------------------------
			// REPORTS
			// ------------------------------
			secured.GET("/stats", statsHandler.Summary)
			secured.GET("/stats/monthly-revenue", statsHandler.MonthlyRevenue)
			secured.GET("/stats/client-retention", statsHandler.ClientRetention)

			secured.GET("/calendar/month", calendarHandler.Month)
			secured.GET("/calendar/week", calendarHandler.Week)
			secured.GET("/calendar/month/export", calendarHandler.Export)

			secured.GET("/audit-logs", middleware.RequireAdmin(), auditLogsHandler.List)
		}
	}
}
