package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"loanerdesk/internal/handler/api"
	"loanerdesk/internal/handler/middleware"
	"loanerdesk/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	reservationHandler *api.ReservationHandler,
	vehicleHandler *api.VehicleHandler,
	customerHandler *api.CustomerHandler,
	advisorHandler *api.AdvisorHandler,
	streamHandler *api.StreamHandler,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, reservationHandler, vehicleHandler, customerHandler, advisorHandler, streamHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	reservationHandler *api.ReservationHandler,
	vehicleHandler *api.VehicleHandler,
	customerHandler *api.CustomerHandler,
	advisorHandler *api.AdvisorHandler,
	streamHandler *api.StreamHandler,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/ws", streamHandler.Subscribe)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodGet, Path: "", Handler: reservationHandler.ListReservations},
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
				{Method: http.MethodPut, Path: "/:id", Handler: reservationHandler.UpdateReservation},
				{Method: http.MethodDelete, Path: "/:id", Handler: reservationHandler.DeleteReservation},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: reservationHandler.UpdateStatus},
				{Method: http.MethodPost, Path: "/:id/checkout", Handler: reservationHandler.CheckOut},
				{Method: http.MethodPost, Path: "/:id/checkin", Handler: reservationHandler.CheckIn},
			})
		}

		vehicles := apiGroup.Group("/vehicles")
		{
			addRoutes(vehicles, []route{
				{Method: http.MethodGet, Path: "", Handler: vehicleHandler.ListVehicles},
				{Method: http.MethodPost, Path: "", Handler: vehicleHandler.CreateVehicle},
				{Method: http.MethodGet, Path: "/:id", Handler: vehicleHandler.GetVehicle},
				{Method: http.MethodPut, Path: "/:id", Handler: vehicleHandler.UpdateVehicle},
			})
		}

		customers := apiGroup.Group("/customers")
		{
			addRoutes(customers, []route{
				{Method: http.MethodGet, Path: "", Handler: customerHandler.ListCustomers},
				{Method: http.MethodPost, Path: "", Handler: customerHandler.CreateCustomer},
				{Method: http.MethodGet, Path: "/search/:query", Handler: customerHandler.SearchCustomers},
				{Method: http.MethodGet, Path: "/:id", Handler: customerHandler.GetCustomer},
				{Method: http.MethodPut, Path: "/:id", Handler: customerHandler.UpdateCustomer},
			})
		}

		advisors := apiGroup.Group("/advisors")
		{
			addRoutes(advisors, []route{
				{Method: http.MethodGet, Path: "", Handler: advisorHandler.ListAdvisors},
				{Method: http.MethodGet, Path: "/:id", Handler: advisorHandler.GetAdvisor},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
