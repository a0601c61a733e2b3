package main

import (
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"mono_backend/internal/app/di"
	"mono_backend/internal/app/router"
	authadapters "mono_backend/internal/feature/auth/adapters"
	authhandler "mono_backend/internal/feature/auth/transport/handler"
	authusecase "mono_backend/internal/feature/auth/usecase"
	itemhandler "mono_backend/internal/feature/items/transport/handler"
	itemusecase "mono_backend/internal/feature/items/usecase"
	infradb "mono_backend/internal/platform/db"
	infraredis "mono_backend/internal/platform/redis"
	"mono_backend/internal/platform/web"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to MySQL sessions, no listing cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	itemRepo := di.NewItemRepository(rdb, db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo)
	itemUC := itemusecase.NewItemUsecase(itemRepo)

	// フラッシュと現在ユーザーを注入するレンダラー
	html := web.NewRenderer(authUC)

	// Handler
	userH := authhandler.NewUserHandler(authUC, itemUC, html)
	itemH := itemhandler.NewItemHandler(itemUC, authUC, html)

	// ルータ生成
	templates := os.Getenv("MONO_TEMPLATES")
	if templates == "" {
		templates = "web/templates/*.html"
	}
	r := router.NewRouter(userH, itemH, authUC, templates)

	addr := os.Getenv("MONO_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
