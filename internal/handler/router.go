package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rise-labs/shelf-backend/internal/metrics"
	"github.com/rise-labs/shelf-backend/internal/service"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Auth     *AuthHandler
	Books    *BookHandler
	Todos    *TodoHandler
	Health   *HealthHandler
	Verifier service.TokenVerifier
	Metrics  *metrics.Metrics
	Log      *zap.SugaredLogger

	CORSAllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(cfg.Log), cfg.Metrics.Middleware())
	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(CORSMiddleware(cfg.CORSAllowedOrigins))
	}

	router.GET("/ping", Ping)
	router.GET("/", Root)
	router.GET("/healthz", cfg.Health.Healthz)
	router.GET("/metrics", cfg.Metrics.Handler())
	router.GET("/openapi.json", OpenAPIDoc)
	router.POST("/register", cfg.Auth.Register)
	router.POST("/login", cfg.Auth.Login)

	protected := router.Group("/")
	protected.Use(AuthMiddleware(cfg.Verifier, cfg.Metrics, cfg.Log))
	{
		if cfg.Auth.svc.CanRevoke() {
			protected.POST("/logout", cfg.Auth.Logout)
		}
		protected.GET("/me", cfg.Auth.Me)

		protected.POST("/create_todo", cfg.Todos.CreateTodos)
		protected.GET("/get_todo", cfg.Todos.GetTodos)
		protected.PUT("/update_todo", cfg.Todos.UpdateTodo)
		protected.DELETE("/delete_todo", cfg.Todos.DeleteTodo)

		protected.POST("/create_book", cfg.Books.CreateBook)
		protected.GET("/get_book", cfg.Books.GetBooks)
		protected.PUT("/update_book", cfg.Books.UpdateBook)
		protected.DELETE("/delete_book", cfg.Books.DeleteBook)
	}

	return router
}
