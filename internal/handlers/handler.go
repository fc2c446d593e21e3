package handlers

import (
	"enet_panel/internal/logger"
	"enet_panel/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds the router: the CGI endpoints and pages the panel talks
// to, plus the authenticated JSON API.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerDeviceRoutes(router)
	h.registerPageRoutes(router)
	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	router.GET("/ws", h.wsConnect)

	return router
}

// registerDeviceRoutes mounts the plain-text endpoints of the firmware.
func (h *Handler) registerDeviceRoutes(r *gin.Engine) {
	cgi := r.Group("/cgi-bin", noStore)
	{
		cgi.GET("/toggle_led", h.toggleLED)
		cgi.GET("/set_speed", h.setSpeed)
	}
	r.GET("/ledstate", noStore, h.ledState)
	r.GET("/get_speed", noStore, h.getSpeed)
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.operatorIDMiddleware)
	{
		device := api.Group("/device")
		{
			device.GET("/state", h.getState)
			// Body example: {"automatic":true}
			device.POST("/mode", h.setMode)
		}
		api.GET("/logs", h.getLogs)
	}
}
