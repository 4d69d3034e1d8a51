package services

import (
	"context"
	"errors"
	"time"

	"dragons-web/cmd/internal/logger"
	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/dto"
	"dragons-web/cmd/web/paymentflow"
	"dragons-web/cmd/web/session"
	"dragons-web/cmd/web/trace"
	"dragons-web/cmd/web/validation"
)

const MsgRegisterFallback = "회원가입에 실패했습니다. 다시 시도해주세요."

// AuthService 는 로그인/회원가입/로그아웃과 현재 사용자 조회를 담당한다.
// 세션 쿠키 자체는 백엔드가 발급하고 이 서비스는 중계만 한다.
type AuthService struct {
	client *backendclient.Client
}

func NewAuthService(client *backendclient.Client) *AuthService {
	return &AuthService{client: client}
}

// Login 은 폼을 검증한 뒤 이메일 로그인한다.
func (s *AuthService) Login(ctx context.Context, form validation.LoginForm) (dto.User, error) {
	if err := form.Validate(); err != nil {
		return dto.User{}, err
	}
	return s.client.Login(ctx, form.Email, form.Password)
}

func (s *AuthService) Register(ctx context.Context, form validation.RegisterForm) (dto.RegisterResult, error) {
	if err := form.Validate(); err != nil {
		return dto.RegisterResult{}, err
	}
	return s.client.Register(ctx, dto.RegisterRequest{Name: form.Name, Email: form.Email, Password: form.Password})
}

func (s *AuthService) GoogleLoginURL(ctx context.Context) (string, error) {
	return s.client.GoogleLoginURL(ctx)
}

// GoogleCallback 은 OAuth 콜백 핸드셰이크를 실행한다.
func (s *AuthService) GoogleCallback(ctx context.Context, code, loginPath string, retryDelay time.Duration) *paymentflow.CallbackOutcome {
	return paymentflow.Callback(ctx, s.client, code, loginPath, retryDelay)
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.Logout(ctx)
}

// Resolve 는 현재 세션의 사용자를 한 번 조회한다.
// 인증되지 않았거나 조회에 실패하면 비로그인 세션을 반환한다.
func (s *AuthService) Resolve(ctx context.Context) *session.Session {
	u, err := s.client.Me(ctx)
	if err != nil {
		if !errors.Is(err, backendclient.ErrUnauthorized) {
			logger.WarnWithFields("session lookup failed", logger.Fields{
				"request_id": trace.RequestIDFromContext(ctx),
				"error":      err.Error(),
			})
		}
		return session.Anonymous()
	}
	return &session.Session{User: &u}
}
