package restapi

import (
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "solana_analyst/docs"
	"solana_analyst/internal/pkg/metrics"
)

// RouterOptions switches the operational surfaces of the router.
type RouterOptions struct {
	AllowedOrigins []string
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer       prometheus.Gatherer
	Metrics        *metrics.Metrics
	SwaggerEnabled bool
	SwaggerPath    string
	EnablePprof    bool
}

// SetupRouter wires middleware and routes into a gin engine.
func SetupRouter(h *Handler, logger *zap.Logger, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(ZapLogger(logger.Named("HTTP")))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.GinMiddleware())
	}
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	api := router.Group("/api")
	{
		api.POST("/wallet-data", h.WalletData)
		api.GET("/solana-price", h.SolanaPrice)
		api.GET("/solana-supply", h.SolanaSupply)
		api.POST("/chat", h.Chat)
	}

	router.GET("/healthz", h.Healthz)

	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
		logger.Info("Prometheus metrics endpoint enabled", zap.String("path", "/metrics"))
	}

	if opts.SwaggerEnabled {
		base := strings.TrimRight(opts.SwaggerPath, "/")
		if base == "" {
			base = "/swagger"
		}
		router.GET(base+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logger.Info("Swagger UI enabled", zap.String("path", base+"/index.html"))
	}

	if opts.EnablePprof {
		registerPprof(router)
		logger.Info("Pprof endpoints enabled under /debug/pprof")
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}
	return cfg
}

func registerPprof(router *gin.Engine) {
	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
			pprofRouter.GET("/"+name, gin.WrapH(pprof.Handler(name)))
		}
	}
}
