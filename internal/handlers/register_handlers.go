package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/marioapg/cipher-test/cmd/docs"
	portssvc "github.com/marioapg/cipher-test/internal/core/ports/services"
	"github.com/marioapg/cipher-test/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// Extra middleware such as rate limiting applies to the API group only.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiMiddleware ...gin.HandlerFunc,
) {
	registerJSONTagNames()

	r.GET("/health", getHealth)

	api := r.Group(cfg.APIBasePath, apiMiddleware...)
	registerCurrencyRoutes(api, services.Currency)
	registerProductRoutes(api, services.Product)

	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = cfg.APIBasePath
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
