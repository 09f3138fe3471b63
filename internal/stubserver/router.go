package stubserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/clinic-client/config"
	"github.com/guttosm/clinic-client/internal/domain/dto"
	"github.com/guttosm/clinic-client/internal/metrics"
)

// Server bundles the stub's state and handlers.
type Server struct {
	store  *Store
	tokens *tokenService
}

// New creates a stub server over the given store.
func New(store *Store, cfg config.StubConfig) *Server {
	return &Server{
		store:  store,
		tokens: newTokenService(cfg.JWTSecretKey, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
	}
}

// Router builds the gin engine with the full middleware chain and routes.
func (s *Server) Router(cfg config.StubConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger())
	r.Use(metrics.PrometheusMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/login/", s.handleLogin)
		auth.POST("/token/refresh/", s.handleRefresh)
		auth.GET("/user/", RequireAuth(s.tokens), s.handleCurrentUser)
	}

	api := r.Group("/", RequireAuth(s.tokens))
	{
		api.GET("/patients/", s.handlePatientList)
		api.POST("/patients/", s.handlePatientCreate)
		api.GET("/patients/:id/", s.handlePatientGet)
		api.PUT("/patients/:id/", s.handlePatientUpdate)
		api.DELETE("/patients/:id/", s.handlePatientDelete)
		api.GET("/patients/:id/details/", s.handlePatientDetails)
		api.GET("/patients/:id/billing-history/", s.handlePatientBillingHistory)
		api.POST("/patients/:id/add_medical_record/", s.handleAddMedicalRecord)
		api.DELETE("/patients/:id/delete-medical-record/:recordId/", s.handleDeleteMedicalRecord)
		api.POST("/patients/:id/add_medical_report/", s.handleAddMedicalReport)
		api.DELETE("/patients/:id/delete-medical-report/:reportId/", s.handleDeleteMedicalReport)

		api.GET("/services/", s.handleServiceList)
		api.POST("/services/", s.handleServiceCreate)
		api.GET("/services/:id/", s.handleServiceGet)
		api.PUT("/services/:id/", s.handleServiceUpdate)
		api.DELETE("/services/:id/", s.handleServiceDelete)

		api.GET("/bills/list/", s.handleBillList)
		api.POST("/bills/", s.handleBillCreate)
		api.GET("/bills/:id/", s.handleBillGet)
		api.PATCH("/bills/:id/", s.handleBillUpdateStatus)
		api.GET("/bills/:id/download/", s.handleBillDownload)
		api.GET("/bills/daily-report/", s.handleDailyReport)

		api.GET("/dashboard/", s.handleDashboard)
	}

	return r
}

// badRequest replies 400 with the standard error envelope.
func (s *Server) badRequest(c *gin.Context, message string) {
	resp := dto.NewError(dto.ErrCodeInvalidRequest, message).WithRequestID(getRequestID(c))
	c.JSON(http.StatusBadRequest, resp)
}

// notFound replies 404 with the standard error envelope.
func (s *Server) notFound(c *gin.Context, message string) {
	resp := dto.NewError(dto.ErrCodeNotFound, message).WithRequestID(getRequestID(c))
	c.JSON(http.StatusNotFound, resp)
}

// validationFailed replies 400 carrying per-field details.
func (s *Server) validationFailed(c *gin.Context, details map[string]string) {
	resp := dto.NewError(dto.ErrCodeInvalidRequest, "validation failed").
		WithRequestID(getRequestID(c)).
		WithDetails(details)
	c.JSON(http.StatusBadRequest, resp)
}

// internalError logs the cause and replies 500 with a generic message.
func (s *Server) internalError(c *gin.Context, err error) {
	log.Error().Err(err).Str("request_id", getRequestID(c)).Msg("internal error")
	resp := dto.NewError(dto.ErrCodeInternal, "internal error").WithRequestID(getRequestID(c))
	c.JSON(http.StatusInternalServerError, resp)
}
