package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleAdmin 是管理员令牌携带的角色
const RoleAdmin = "admin"

const issuerName = "khatira-board"

// ErrInvalidToken 表示令牌无法解析、签名不符、已过期或角色不对
var ErrInvalidToken = errors.New("invalid token")

// Claims 是管理员能力令牌的载荷
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Issuer 使用HS256签发和验证管理员令牌
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// GenerateSecretKey 生成一个密码学安全的32字节随机密钥。
func GenerateSecretKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("无法生成安全的密钥: %w", err)
	}
	return key, nil
}

// NewIssuer 创建一个签发者。secret为空时每个进程生成一个随机密钥，
// 这意味着重启后之前签发的令牌全部失效。
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		generated, err := GenerateSecretKey()
		if err != nil {
			return nil, err
		}
		key = generated
	}
	return &Issuer{secret: key, ttl: ttl, now: time.Now}, nil
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue 签发一个新的管理员令牌，返回令牌字符串和它的载荷
func (i *Issuer) Issue() (string, *Claims, error) {
	jti, err := uuid.NewV7()
	if err != nil {
		return "", nil, fmt.Errorf("无法生成令牌ID: %w", err)
	}

	now := i.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuerName,
			ID:        jti.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Role: RoleAdmin,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, fmt.Errorf("无法签名令牌: %w", err)
	}
	return signed, claims, nil
}

// Validate 验证令牌的签名、有效期和角色
func (i *Issuer) Validate(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerName),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Role != RoleAdmin || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
