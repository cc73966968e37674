package handlers

import (
	"github.com/Brownie44l1/leaf-disease-api/internal/config"
	"github.com/Brownie44l1/leaf-disease-api/internal/logger"
	"github.com/Brownie44l1/leaf-disease-api/internal/model"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the API routes and middleware around registry.
func SetupRouter(registry *model.Registry, cfg *config.Config, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(CORS(cfg.AllowedOrigins))

	handler := NewHandler(registry, log, cfg.MaxUploadBytes)

	r.GET("/", handler.Root)
	r.GET("/health", handler.Health)
	r.GET("/models", handler.Models)
	r.POST("/predict", handler.Predict)

	return r
}
