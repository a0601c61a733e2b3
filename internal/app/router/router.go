package router

import (
	"github.com/gin-gonic/gin"

	authhandler "mono_backend/internal/feature/auth/transport/handler"
	"mono_backend/internal/feature/auth/transport/middleware"
	itemhandler "mono_backend/internal/feature/items/transport/handler"
)

// NewRouter builds the gin engine: HTML templates, session middleware and the
// route table. templatesGlob points at the page templates (web/templates).
func NewRouter(users *authhandler.UserHandler, items *itemhandler.ItemHandler,
	resolver middleware.UserResolver, templatesGlob string) *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(templatesGlob)

	// 全リクエスト共通: セッショントークンの確保と現在ユーザーの解決
	r.Use(middleware.EnsureSession(), middleware.CurrentUser(resolver))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", Health)
	// アイテム一覧（トップページ）
	r.GET("/", items.Index)
	// ユーザー一覧・詳細・登録
	r.GET("/users/", users.List)
	r.GET("/users/:id/", users.Detail)
	r.GET("/users/create/", users.CreateForm)
	r.POST("/users/create/", users.Create)
	// ログイン／ログアウト
	r.GET("/login", users.LoginForm)
	r.POST("/login", users.Login)
	r.GET("/logout", users.Logout)
	// アイテムのフォーム表示と詳細
	r.GET("/items/new/", items.NewForm)
	r.GET("/items/:id/", items.Detail)

	// 認証必須のルート
	// middleware.LoginRequired() が匿名リクエストをログインページへ誘導する
	auth := r.Group("/")
	auth.Use(middleware.LoginRequired())
	{
		auth.GET("/users/:id/edit/", users.EditForm)
		auth.POST("/users/:id/edit/", users.Edit)
		auth.POST("/items/add/", items.Add)
		auth.GET("/items/:id/edit/", items.EditForm)
		auth.POST("/items/:id/edit/", items.Edit)
	}

	return r
}
