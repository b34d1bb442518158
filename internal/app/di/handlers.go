package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "todo_backend/internal/feature/auth/adapters"
	authhandler "todo_backend/internal/feature/auth/transport/handler"
	authusecase "todo_backend/internal/feature/auth/usecase"
	taskadapters "todo_backend/internal/feature/tasks/adapters"
	taskhandler "todo_backend/internal/feature/tasks/transport/handler"
	taskusecase "todo_backend/internal/feature/tasks/usecase"
	"todo_backend/internal/platform/cache"
	"todo_backend/internal/platform/db"
	jwtmw "todo_backend/internal/platform/jwt"
	"todo_backend/internal/platform/password"
)

// Handlers bundles the feature handlers served by the router.
type Handlers struct {
	Auth  *authhandler.AuthHandler
	Tasks *taskhandler.TaskHandler
}

// NewHandlers wires repositories, usecases and handlers over one database handle.
// Both features share a single transaction manager. A non-nil rdb caches user
// lookups by ID.
func NewHandlers(gdb *gorm.DB, rdb *redis.Client, issuer *jwtmw.Issuer, hasher *password.Hasher) *Handlers {
	tx := db.NewTxManager(gdb)

	// Repository
	userRepo := cache.NewCachingUserRepository(rdb, cache.DefaultUserTTL, authadapters.NewUserGorm(gdb), "users")
	taskRepo := taskadapters.NewTaskGorm(gdb)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, issuer, hasher, tx)
	taskUC := taskusecase.NewTaskUsecase(taskRepo, tx)

	// Handler
	return &Handlers{
		Auth:  authhandler.NewAuthHandler(authUC),
		Tasks: taskhandler.NewTaskHandler(taskUC),
	}
}

// Models lists the gorm models migrated on sqlite.
func Models() []any {
	return []any{&authadapters.UserModel{}, &taskadapters.TaskModel{}}
}
