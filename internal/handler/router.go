package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mytodoapp/todo/internal/auth/token"
	"github.com/mytodoapp/todo/internal/logger"
	"github.com/mytodoapp/todo/internal/server"
	"github.com/mytodoapp/todo/internal/server/middleware"
)

// Router wires middleware and routes onto a Gin engine.
type Router struct {
	Auth   *AuthHandler
	Users  *UserHandler
	Tasks  *TaskHandler
	Codec  *token.Codec
	Policy *middleware.AccessPolicy
	CORS   *middleware.CORSConfig
	Log    *logger.Logger
}

// Register applies the middleware chain and mounts all routes. Order
// matters: authentication attaches the principal before the access policy
// decides, and both run before any handler.
func (r *Router) Register(engine *gin.Engine) {
	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(r.Log),
		middleware.Recovery(),
		middleware.CORS(r.CORS),
		middleware.Authenticate(r.Codec),
		r.Policy.Middleware(),
	)

	api := engine.Group("/api")

	api.GET("/health", health)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.Auth.Register)
		authGroup.POST("/login", r.Auth.Login)
		authGroup.POST("/refresh", r.Auth.Refresh)
	}

	users := api.Group("/users")
	{
		users.POST("", r.Users.Create)
		users.GET("", r.Users.List)
		users.GET("/:userId", r.Users.Get)
		users.PUT("/:userId", r.Users.Update)
		users.DELETE("/:userId", r.Users.Delete)
	}

	tasks := api.Group("/tasks")
	{
		tasks.POST("/:userId", r.Tasks.Create)
		tasks.GET("/:userId", r.Tasks.List)
		tasks.GET("/:userId/:taskId", r.Tasks.Get)
		tasks.PUT("/:userId/:taskId", r.Tasks.Update)
		tasks.DELETE("/:userId/:taskId", r.Tasks.Delete)
	}
}

// health reports liveness.
func health(c *gin.Context) {
	server.RespondOK(c, gin.H{"status": "ok"})
}
