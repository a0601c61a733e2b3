// Package db provides the MySQL/GORM database bootstrap.
package db

import (
	"fmt"
	"log"
	"os"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	authadapters "mono_backend/internal/feature/auth/adapters"
	authentity "mono_backend/internal/feature/auth/domain/entity"
	itementity "mono_backend/internal/feature/items/domain/entity"
)

func OpenDB() *gorm.DB {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		user, pass, host, port, name)

	// TranslateErrorでユニーク制約違反をドライバ非依存のgorm.ErrDuplicatedKeyに正規化
	db, err := gorm.Open(gmysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}

	// マイグレーション（User, Item, フォールバック用Session/Flash）
	if err := db.AutoMigrate(
		&authentity.User{},
		&itementity.Item{},
		&authadapters.SessionModel{},
		&authadapters.FlashModel{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
