// Command server runs the todo HTTP API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mytodoapp/todo/internal/auth"
	"github.com/mytodoapp/todo/internal/auth/password"
	"github.com/mytodoapp/todo/internal/auth/token"
	"github.com/mytodoapp/todo/internal/config"
	"github.com/mytodoapp/todo/internal/database"
	"github.com/mytodoapp/todo/internal/handler"
	"github.com/mytodoapp/todo/internal/logger"
	"github.com/mytodoapp/todo/internal/server"
	"github.com/mytodoapp/todo/internal/server/middleware"
	"github.com/mytodoapp/todo/internal/store"
	"github.com/mytodoapp/todo/internal/task"
	"github.com/mytodoapp/todo/internal/user"
)

func main() {
	var cfg config.Config
	if err := config.Load(&cfg); err != nil {
		logger.GetGlobalLogger().Fatal("Failed to load config", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("Starting service", logger.Fields("name", cfg.Name, "environment", cfg.Environment))

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to open database", map[string]interface{}{"error": err.Error()})
	}
	if err := database.MigrateUp(db); err != nil {
		log.Fatal("Failed to run migrations", map[string]interface{}{"error": err.Error()})
	}

	codec, err := token.NewCodec(&cfg.JWT)
	if err != nil {
		log.Fatal("Failed to create token codec", map[string]interface{}{"error": err.Error()})
	}
	hasher := password.NewHasher(cfg.Password)

	users := store.NewGormUserStore(db)
	tasks := store.NewGormTaskStore(db)

	authSvc := auth.NewService(users, hasher, codec, log)
	userSvc := user.NewService(users, hasher, log)
	taskSvc := task.NewService(tasks, users, log)

	srv := server.New(cfg.Server, log)

	router := &handler.Router{
		Auth:   handler.NewAuthHandler(authSvc),
		Users:  handler.NewUserHandler(userSvc),
		Tasks:  handler.NewTaskHandler(taskSvc),
		Codec:  codec,
		Policy: middleware.DefaultAccessPolicy(),
		CORS:   &cfg.Server.CORS,
		Log:    log,
	}
	router.Register(srv.GinEngine())

	ctx := context.Background()
	if err := srv.Start(ctx); err != nil {
		log.Fatal("Failed to start server", map[string]interface{}{"error": err.Error()})
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := srv.Stop(ctx); err != nil {
		log.Error("Shutdown error", map[string]interface{}{"error": err.Error()})
	}
	log.Info("Service stopped")
}
