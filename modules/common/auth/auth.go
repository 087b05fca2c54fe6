package auth

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// DefaultDeviceID - X-Device-ID 가 없을 때
const DefaultDeviceID = "local"

// DeviceHeader - 익명 기기 식별 헤더
const DeviceHeader = "X-Device-ID"

var (
	ErrMissingToken     = errors.New("missing authorization")
	ErrInvalidToken     = errors.New("invalid token")
	ErrAnonymousBlocked = errors.New("sign-in required")
)

// OwnerKind - 인증 사용자 또는 익명 기기
type OwnerKind string

const (
	OwnerUser   OwnerKind = "user"
	OwnerDevice OwnerKind = "device"
)

// Owner - 히스토리, 드래프트, 설정의 소유자
type Owner struct {
	Kind  OwnerKind `json:"kind"`
	ID    string    `json:"id"`
	Email string    `json:"email,omitempty"`
}

// Key - 레지스트리/kv 네임스페이스 키
func (o Owner) Key() string {
	return string(o.Kind) + ":" + o.ID
}

// IsUser - 인증 사용자인지
func (o Owner) IsUser() bool {
	return o.Kind == OwnerUser
}

// Claims - Supabase access token
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier - Supabase JWT 검증 (HS256)
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Enabled - 시크릿이 설정되어 있는지
func (v *Verifier) Enabled() bool {
	return v != nil && len(v.secret) > 0
}

// Verify - 서명과 만료 검증 후 클레임 반환
func (v *Verifier) Verify(token string) (*Claims, error) {
	if !v.Enabled() {
		return nil, errors.Wrap(ErrInvalidToken, "token verification is not configured")
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, errors.Wrap(ErrInvalidToken, errString(err))
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, errors.Wrap(ErrInvalidToken, "missing subject")
	}
	return claims, nil
}

// Sign - 테스트 및 로컬 개발용 토큰 발급
func (v *Verifier) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func errString(err error) string {
	if err == nil {
		return "token is not valid"
	}
	return err.Error()
}

var deviceIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// Resolve - Bearer 토큰이 있으면 사용자, 없으면 익명 기기
func (v *Verifier) Resolve(r *http.Request, allowAnonymous bool) (Owner, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return Owner{}, ErrInvalidToken
		}
		claims, err := v.Verify(strings.TrimSpace(token))
		if err != nil {
			return Owner{}, err
		}
		return Owner{Kind: OwnerUser, ID: claims.Subject, Email: claims.Email}, nil
	}

	if !allowAnonymous {
		return Owner{}, ErrAnonymousBlocked
	}
	device := strings.TrimSpace(r.Header.Get(DeviceHeader))
	if !deviceIDPattern.MatchString(device) {
		device = DefaultDeviceID
	}
	return Owner{Kind: OwnerDevice, ID: device}, nil
}

type ownerKey struct{}

// WithOwner - 컨텍스트에 오너 저장
func WithOwner(ctx context.Context, o Owner) context.Context {
	return context.WithValue(ctx, ownerKey{}, o)
}

// OwnerFromContext - 컨텍스트의 오너
func OwnerFromContext(ctx context.Context) (Owner, bool) {
	o, ok := ctx.Value(ownerKey{}).(Owner)
	return o, ok
}
