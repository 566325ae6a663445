package app

import (
	"github.com/thienhiep1711/node-todo-api/internal/auth"
	"github.com/thienhiep1711/node-todo-api/internal/cache"
	"github.com/thienhiep1711/node-todo-api/internal/config"
	"github.com/thienhiep1711/node-todo-api/internal/handlers"
	"github.com/thienhiep1711/node-todo-api/internal/repo"
	"github.com/thienhiep1711/node-todo-api/internal/service"
	"github.com/thienhiep1711/node-todo-api/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.mongodb.org/mongo-driver/mongo"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *mongo.Database, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	tokens := token.NewService(cfg.JWT.Secret)
	userRepo := repo.NewMongoUserRepo(db)
	userSvc := service.NewUserService(userRepo, tokens)

	todoRepo := repo.NewMongoTodoRepo(db)
	var todoCache *cache.TodoCache
	if rdb != nil {
		todoCache = cache.NewTodoCache(rdb, cfg.Redis.DefaultTTL.Duration())
	}
	todoSvc := service.NewTodoService(todoRepo, todoCache)

	requireToken := auth.RequireToken(tokens, userRepo)
	RegisterRoutes(r, userSvc, todoSvc, requireToken)
}

// RegisterRoutes wires the user and todo routes. Split out from Setup
// so tests can mount the same surface on fake repositories.
func RegisterRoutes(r *gin.Engine, userSvc *service.UserService, todoSvc *service.TodoService, requireToken gin.HandlerFunc) {
	authHandler := handlers.NewAuthHandler(userSvc)
	r.POST("/users", authHandler.Signup)
	r.POST("/users/login", authHandler.Login)
	r.GET("/users/me", requireToken, authHandler.Me)
	r.DELETE("/users/me/token", requireToken, authHandler.Logout)

	todoHandler := handlers.NewTodoHandler(todoSvc)
	todos := r.Group("/todos", requireToken)
	todos.POST("", todoHandler.Create)
	todos.GET("", todoHandler.List)
	todos.GET("/:id", todoHandler.GetByID)
	todos.PATCH("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Todo API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
