package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) SetupRoutes(engine *echo.Echo) {
	engine.GET("/health", h.echoHandler(h.HealthCheck))
	engine.GET("/version", h.echoHandler(h.Version))
	engine.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := engine.Group("/api",
		echo.WrapMiddleware(LoggerMiddleware),
		echo.WrapMiddleware(CORSMiddleware),
	)
	{
		api.GET("/pods", h.echoHandler(h.GetPodsHandler))
		api.GET("/status", h.echoHandler(h.StatusHandler))
		api.POST("/deploy", h.echoHandler(h.DeployHandler))
		api.POST("/rollout", h.echoHandler(h.RolloutHandler))
		api.POST("/kill-pod", h.echoHandler(h.KillPodHandler))
		api.POST("/reset", h.echoHandler(h.ResetHandler))
	}
}

func (h *Handler) echoHandler(handlerFunc func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return echo.WrapHandler(http.HandlerFunc(handlerFunc))
}
