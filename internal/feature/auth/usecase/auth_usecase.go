// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mono_backend/internal/feature/auth/domain/entity"
)

// sessionTTL はセッションの有効期限です。失効処理自体はストア側（Redis TTL等）に委ねます。
const sessionTTL = 7 * 24 * time.Hour

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じ名前のユーザーが既に存在する場合、ErrNameAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByName は指定された名前に一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByName(ctx context.Context, name string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// List はすべてのユーザーを登録順に返します。
	List(ctx context.Context) ([]entity.User, error)

	// Update は既存ユーザーの変更を永続化します。
	Update(ctx context.Context, user *entity.User) error
}

// authUsecase は認証とユーザー管理のビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository) *authUsecase {
	return &authUsecase{
		users:    users,
		sessions: sessions,
	}
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録します。
// 生パスワードがハッシュ化を経ずに保存される経路は存在しません。
func (u *authUsecase) Signup(ctx context.Context, name, password string) (*entity.User, error) {
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Name: name, Password: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate は名前とパスワードでユーザーを認証します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// ユーザー未検出またはパスワード不一致の場合、ErrInvalidCredentialsを返します。
func (u *authUsecase) Authenticate(ctx context.Context, name, password string) (*entity.User, error) {
	user, err := u.users.FindByName(ctx, name)

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	matched := verifyPassword(passwordHash, password)
	if err != nil || !matched {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login はユーザーを認証し、成功時に新しいセッションを発行します。
// セッショントークンはログインのたびに新規発行されます（セッション固定化対策）。
func (u *authUsecase) Login(ctx context.Context, name, password, userAgent, ip string) (*entity.Session, error) {
	user, err := u.Authenticate(ctx, name, password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ip,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Logout はセッションをサーバー側から削除します。
// 既に存在しないセッションの削除はエラーにしません（冪等）。
func (u *authUsecase) Logout(ctx context.Context, token string) error {
	if err := u.sessions.Delete(ctx, token); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// ResolveUser はセッショントークンから現在のユーザーを解決します。
// トークンが未知、またはセッションが指すユーザーが既に存在しない場合は
// エラーを返します。呼び出し側は匿名アクセスとして扱います。
func (u *authUsecase) ResolveUser(ctx context.Context, token string) (*entity.User, error) {
	session, err := u.sessions.FindByID(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser はIDでユーザーを取得します。
func (u *authUsecase) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// ListUsers はすべてのユーザーを返します。
func (u *authUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	return u.users.List(ctx)
}

// UpdateUser は名前とパスワードを更新します。パスワードは常に再ハッシュされます。
func (u *authUsecase) UpdateUser(ctx context.Context, id uint, name, password string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Name = name
	user.Password = hashed
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Flash は次に描画されるページで一度だけ表示されるメッセージを積みます。
func (u *authUsecase) Flash(ctx context.Context, token, message string) error {
	return u.sessions.AddFlash(ctx, token, message)
}

// Flashes は未表示のフラッシュメッセージを取り出して消費します。
func (u *authUsecase) Flashes(ctx context.Context, token string) ([]string, error) {
	return u.sessions.ConsumeFlashes(ctx, token)
}
