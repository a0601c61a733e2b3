package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"mono_backend/internal/feature/auth/domain/entity"
	"mono_backend/internal/feature/auth/usecase"
)

// sessionMySQL はSessionRepositoryインターフェースのMySQL実装です。
// Redisが利用できない環境向けのフォールバックです。
type sessionMySQL struct {
	db *gorm.DB
}

// sessionMySQLがSessionRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SessionRepository = (*sessionMySQL)(nil)

// NewSessionMySQL は指定されたgorm.DB接続でsessionMySQLの新しいインスタンスを生成します。
func NewSessionMySQL(db *gorm.DB) *sessionMySQL {
	return &sessionMySQL{db: db}
}

// Create はセッションをデータベースに追加します。
func (r *sessionMySQL) Create(ctx context.Context, s *entity.Session) error {
	return r.db.WithContext(ctx).Create(SessionModelFromEntity(s)).Error
}

// FindByID はトークンでセッションを取得します。
// 未知のトークン、または期限切れのセッションはusecase.ErrSessionNotFoundになります。
// Redis実装ではTTLが担う失効を、ここでは読み取り時の期限チェックで代替します。
func (r *sessionMySQL) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var m SessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	if time.Now().After(m.ExpiresAt) {
		// Best effort: 期限切れ行はその場で片付ける
		_ = r.db.WithContext(ctx).Delete(&SessionModel{}, "id = ?", id).Error
		return nil, usecase.ErrSessionNotFound
	}
	return m.ToEntity(), nil
}

// Delete はセッションを削除します。存在しないトークンの削除はエラーにしません。
func (r *sessionMySQL) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&SessionModel{}, "id = ?", id).Error
}

// AddFlash はフラッシュメッセージを1件追加します。
func (r *sessionMySQL) AddFlash(ctx context.Context, sessionID, message string) error {
	return r.db.WithContext(ctx).Create(&FlashModel{
		SessionID: sessionID,
		Message:   message,
	}).Error
}

// ConsumeFlashes は未表示のフラッシュメッセージを取得順に返し、削除します。
func (r *sessionMySQL) ConsumeFlashes(ctx context.Context, sessionID string) ([]string, error) {
	var messages []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var flashes []FlashModel
		if err := tx.Where("session_id = ?", sessionID).Order("id ASC").Find(&flashes).Error; err != nil {
			return err
		}
		if len(flashes) == 0 {
			return nil
		}
		if err := tx.Delete(&FlashModel{}, "session_id = ?", sessionID).Error; err != nil {
			return err
		}
		for _, f := range flashes {
			messages = append(messages, f.Message)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}
