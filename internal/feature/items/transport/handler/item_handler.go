// Package handler はitemsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mono_backend/internal/feature/auth/transport/middleware"
	"mono_backend/internal/feature/items/domain/entity"
	"mono_backend/internal/feature/items/usecase"
	"mono_backend/internal/platform/web"
)

// ItemUsecase はアイテム操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ItemUsecase interface {
	AddItem(ctx context.Context, userID uint, f usecase.Fields) (*entity.Item, error)
	GetItem(ctx context.Context, id uint) (*entity.Item, error)
	EditItem(ctx context.Context, id uint, f usecase.Fields) (*entity.Item, error)
	ListAll(ctx context.Context) ([]entity.Item, error)
}

// FlashWriter は次に描画されるページ向けのメッセージを積みます。
// authフィーチャーのユースケースがこのインターフェースを満たします。
type FlashWriter interface {
	Flash(ctx context.Context, token, message string) error
}

// ItemHandler はアイテム関連ページのHTTPリクエストを処理します。
type ItemHandler struct {
	items ItemUsecase
	flash FlashWriter
	html  *web.Renderer
}

// NewItemHandler はItemHandlerの新しいインスタンスを生成します。
func NewItemHandler(items ItemUsecase, flash FlashWriter, html *web.Renderer) *ItemHandler {
	return &ItemHandler{items: items, flash: flash, html: html}
}

// fieldsFromForm はフォーム値を編集可能フィールドに詰め替えます。
// 書式の検証は行いません（statusはUI上の慣習のみ）。
func fieldsFromForm(c *gin.Context) usecase.Fields {
	return usecase.Fields{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		URL:         c.PostForm("url"),
		Category:    c.PostForm("category"),
		Status:      c.PostForm("status"),
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// Index はトップページ（全アイテム一覧、更新の新しい順）を表示します。
// GET /
func (h *ItemHandler) Index(c *gin.Context) {
	items, err := h.items.ListAll(c.Request.Context())
	if err != nil {
		slog.Error("item list error", "error", err)
		h.html.Error(c)
		return
	}
	h.html.HTML(c, http.StatusOK, "show_items.html", gin.H{
		"Items": items,
	})
}

// NewForm は空のアイテム登録フォームを表示します。
// GET /items/new/
func (h *ItemHandler) NewForm(c *gin.Context) {
	h.html.HTML(c, http.StatusOK, "new_item.html", nil)
}

// Add はアイテム登録フォームの送信を処理します。
// 所有者はセッションのユーザーです。未ログインの送信はLoginRequiredが
// ログインページへ誘導するため、ここには到達しません。
// POST /items/add/
func (h *ItemHandler) Add(c *gin.Context) {
	user := middleware.User(c)
	if user == nil {
		// LoginRequiredを経由しない経路はない。万一のための防波堤。
		c.Redirect(http.StatusFound, "/login")
		return
	}

	item, err := h.items.AddItem(c.Request.Context(), user.ID, fieldsFromForm(c))
	if err != nil {
		slog.Error("item add error", "error", err, "user_id", user.ID)
		h.html.Error(c)
		return
	}

	slog.Info("item created", "item_id", item.ID, "user_id", user.ID)
	if err := h.flash.Flash(c.Request.Context(), middleware.Token(c), "New item was successfully posted"); err != nil {
		slog.Warn("failed to add flash", "error", err)
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/items/%d/", item.ID))
}

// Detail はアイテム詳細ページを表示します。存在しないIDは404ページになります。
// GET /items/:id/
func (h *ItemHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.html.NotFound(c)
		return
	}
	item, err := h.items.GetItem(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrItemNotFound) {
			h.html.NotFound(c)
			return
		}
		slog.Error("item detail error", "error", err, "item_id", id)
		h.html.Error(c)
		return
	}
	h.html.HTML(c, http.StatusOK, "item_detail.html", gin.H{"Item": item})
}

// EditForm はアイテム編集フォームを表示します。
// GET /items/:id/edit/
func (h *ItemHandler) EditForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.html.NotFound(c)
		return
	}
	item, err := h.items.GetItem(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrItemNotFound) {
			h.html.NotFound(c)
			return
		}
		slog.Error("item edit form error", "error", err, "item_id", id)
		h.html.Error(c)
		return
	}
	h.html.HTML(c, http.StatusOK, "item_edit.html", gin.H{"Item": item})
}

// Edit はアイテム編集フォームの送信を処理します。
// 編集可能フィールドをすべて置き換え、updated_onはストレージが更新します。
// ログイン済みであれば所有者以外でも編集できます（binaryなアクセスモデル）。
// POST /items/:id/edit/
func (h *ItemHandler) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.html.NotFound(c)
		return
	}
	item, err := h.items.EditItem(c.Request.Context(), id, fieldsFromForm(c))
	if err != nil {
		if errors.Is(err, usecase.ErrItemNotFound) {
			h.html.NotFound(c)
			return
		}
		slog.Error("item edit error", "error", err, "item_id", id)
		h.html.Error(c)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/items/%d/", item.ID))
}
