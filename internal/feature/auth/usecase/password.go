package usecase

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash はユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュです。
// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証します。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// hashPassword は生パスワードの前後の空白を取り除き、salt付きbcryptハッシュを返します。
// saltはbcryptが生成するため、同じ入力でも呼び出しごとに異なるダイジェストになります。
func hashPassword(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// verifyPassword は候補パスワードを保存済みハッシュと照合します。
// 空白のみの候補はハッシュ比較を行わずにfalseを返します。
// パスワード不一致はエラーではなくbooleanで通知されます。
func verifyPassword(storedHash, candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
}
