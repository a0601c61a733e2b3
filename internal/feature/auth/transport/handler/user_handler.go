// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mono_backend/internal/feature/auth/domain/entity"
	"mono_backend/internal/feature/auth/transport/middleware"
	"mono_backend/internal/feature/auth/usecase"
	itementity "mono_backend/internal/feature/items/domain/entity"
	"mono_backend/internal/platform/web"
)

// AuthUsecase は認証・ユーザー管理操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は指定された名前とパスワードで新規ユーザーを登録します。
	Signup(ctx context.Context, name, password string) (*entity.User, error)
	// Login はユーザーを認証し、成功時に新しいセッションを返します。
	Login(ctx context.Context, name, password, userAgent, ip string) (*entity.Session, error)
	// Logout はセッションをサーバー側から削除します。
	Logout(ctx context.Context, token string) error
	// GetUser はIDでユーザーを取得します。
	GetUser(ctx context.Context, id uint) (*entity.User, error)
	// ListUsers はすべてのユーザーを返します。
	ListUsers(ctx context.Context) ([]entity.User, error)
	// UpdateUser は名前とパスワードを更新します。
	UpdateUser(ctx context.Context, id uint, name, password string) (*entity.User, error)
	// Flash は次に描画されるページ向けのメッセージを積みます。
	Flash(ctx context.Context, token, message string) error
}

// ItemLister はユーザー詳細ページに表示するアイテムを取得します。
// itemsフィーチャーのユースケースがこのインターフェースを満たします。
type ItemLister interface {
	ListByUserAndStatus(ctx context.Context, userID uint, status string) ([]itementity.Item, error)
}

// UserHandler はユーザー関連ページのHTTPリクエストを処理します。
type UserHandler struct {
	auth  AuthUsecase
	items ItemLister
	html  *web.Renderer
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(auth AuthUsecase, items ItemLister, html *web.Renderer) *UserHandler {
	return &UserHandler{auth: auth, items: items, html: html}
}

// parseID はパスパラメータのIDを解釈します。数値でなければ0とfalseを返します。
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// safeNext はログイン後のリダイレクト先を検証します。
// サイト内パス以外（オープンリダイレクト）は受け付けません。
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return ""
}

// LoginForm はログインフォームを表示します。
// GET /login
func (h *UserHandler) LoginForm(c *gin.Context) {
	h.html.HTML(c, http.StatusOK, "login.html", gin.H{
		"Next": safeNext(c.Query("next")),
	})
}

// Login はログインフォームの送信を処理します。
// 成功時はセッションクッキーを新しいトークンに差し替え、元のページまたは
// ユーザー詳細へリダイレクトします。失敗時はメッセージ付きで再表示します。
// POST /login
func (h *UserHandler) Login(c *gin.Context) {
	name := c.PostForm("name")
	password := c.PostForm("password")
	next := safeNext(c.PostForm("next"))

	session, err := h.auth.Login(c.Request.Context(), name, password, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "name", name, "remote_addr", c.ClientIP())
			// 認証失敗は回復可能: メッセージを添えてフォームを再表示する
			h.html.HTML(c, http.StatusOK, "login.html", gin.H{
				"Error": "Invalid name or password",
				"Name":  name,
				"Next":  next,
			})
			return
		}
		slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
		h.html.Error(c)
		return
	}

	// 新しいトークンでクッキーを差し替える
	middleware.SetSessionCookie(c, session.ID)
	if err := h.auth.Flash(c.Request.Context(), session.ID, "You were logged in"); err != nil {
		slog.Warn("failed to add flash", "error", err)
	}
	slog.Info("user login successful", "name", name, "remote_addr", c.ClientIP())

	if next == "" {
		next = fmt.Sprintf("/users/%d/", session.UserID)
	}
	c.Redirect(http.StatusFound, next)
}

// Logout はセッションを破棄してログインページへ戻します。
// GET /logout
func (h *UserHandler) Logout(c *gin.Context) {
	token := middleware.Token(c)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		slog.Error("logout error", "error", err)
		h.html.Error(c)
		return
	}
	// トークン自体は残るため、ログアウト通知のフラッシュは次のページで表示される
	if err := h.auth.Flash(c.Request.Context(), token, "You were logged out"); err != nil {
		slog.Warn("failed to add flash", "error", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

// CreateForm はユーザー登録フォームを表示します。
// GET /users/create/
func (h *UserHandler) CreateForm(c *gin.Context) {
	h.html.HTML(c, http.StatusOK, "user_create.html", nil)
}

// Create はユーザー登録フォームの送信を処理します。
// 名前の重複はインラインエラーとして表示します（クラッシュさせない）。
// POST /users/create/
func (h *UserHandler) Create(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	password := c.PostForm("password")

	if name == "" {
		h.html.HTML(c, http.StatusOK, "user_create.html", gin.H{
			"Error": "Name is required",
		})
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), name, password)
	if err != nil {
		if errors.Is(err, usecase.ErrNameAlreadyExists) {
			h.html.HTML(c, http.StatusOK, "user_create.html", gin.H{
				"Error": "That name is already taken",
				"Name":  name,
			})
			return
		}
		slog.Error("user create error", "error", err, "name", name)
		h.html.Error(c)
		return
	}

	slog.Info("user created", "user_id", user.ID, "name", user.Name)
	if err := h.auth.Flash(c.Request.Context(), middleware.Token(c), "User created! Please login!"); err != nil {
		slog.Warn("failed to add flash", "error", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

// List はユーザー一覧ページを表示します。
// GET /users/
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		slog.Error("user list error", "error", err)
		h.html.Error(c)
		return
	}
	h.html.HTML(c, http.StatusOK, "user_list.html", gin.H{
		"Users": users,
	})
}

// Detail はユーザー詳細ページを表示します。所持・検討・処分の3区分の
// アイテムをそれぞれupdated_onの降順で並べます。
// GET /users/:id/
func (h *UserHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.html.NotFound(c)
		return
	}

	user, err := h.auth.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			h.html.NotFound(c)
			return
		}
		slog.Error("user detail error", "error", err, "user_id", id)
		h.html.Error(c)
		return
	}

	data := gin.H{"User": user}
	for key, status := range map[string]string{
		"PossessionItems":  itementity.StatusPossession,
		"ConsideringItems": itementity.StatusConsidering,
		"DisposedItems":    itementity.StatusDisposed,
	} {
		items, err := h.items.ListByUserAndStatus(c.Request.Context(), id, status)
		if err != nil {
			slog.Error("user items error", "error", err, "user_id", id, "status", status)
			h.html.Error(c)
			return
		}
		data[key] = items
	}

	h.html.HTML(c, http.StatusOK, "user_detail.html", data)
}

// EditForm はユーザー編集フォームを表示します。
// GET /users/:id/edit/
func (h *UserHandler) EditForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.html.NotFound(c)
		return
	}
	user, err := h.auth.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			h.html.NotFound(c)
			return
		}
		slog.Error("user edit form error", "error", err, "user_id", id)
		h.html.Error(c)
		return
	}
	h.html.HTML(c, http.StatusOK, "user_edit.html", gin.H{"User": user})
}

// Edit はユーザー編集フォームの送信を処理します。パスワードは再ハッシュされます。
// POST /users/:id/edit/
func (h *UserHandler) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.html.NotFound(c)
		return
	}
	name := strings.TrimSpace(c.PostForm("name"))
	password := c.PostForm("password")

	user, err := h.auth.UpdateUser(c.Request.Context(), id, name, password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			h.html.NotFound(c)
		case errors.Is(err, usecase.ErrNameAlreadyExists):
			h.html.HTML(c, http.StatusOK, "user_edit.html", gin.H{
				"Error": "That name is already taken",
				"User":  &entity.User{ID: id, Name: name},
			})
		default:
			slog.Error("user edit error", "error", err, "user_id", id)
			h.html.Error(c)
		}
		return
	}

	if err := h.auth.Flash(c.Request.Context(), middleware.Token(c), "User Updated!"); err != nil {
		slog.Warn("failed to add flash", "error", err)
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d/", user.ID))
}
