package backendclient

import (
	"context"
	"net/http"

	"dragons-web/cmd/web/dto"
)

// Login 은 POST /api/auth/login 으로 이메일 로그인한다. 세션 쿠키는 응답 Set-Cookie 로 온다.
func (c *Client) Login(ctx context.Context, email, password string) (dto.User, error) {
	data, err := c.call(ctx, http.MethodPost, "/api/auth/login", nil, dto.LoginRequest{Email: email, Password: password}, MsgUnknown)
	if err != nil {
		return dto.User{}, err
	}
	return decode[dto.User](data, MsgUnknown)
}

func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResult, error) {
	data, err := c.call(ctx, http.MethodPost, "/api/auth/register", nil, req, MsgUnknown)
	if err != nil {
		return dto.RegisterResult{}, err
	}
	return decode[dto.RegisterResult](data, MsgUnknown)
}

// GoogleLoginURL 은 GET /api/auth/google/url 이 돌려주는 Google 인증 페이지 주소다.
func (c *Client) GoogleLoginURL(ctx context.Context) (string, error) {
	data, err := c.call(ctx, http.MethodGet, "/api/auth/google/url", nil, nil, MsgUnknown)
	if err != nil {
		return "", err
	}
	return decode[string](data, MsgUnknown)
}

// LoginWithGoogle 은 OAuth 인가 코드를 백엔드 세션으로 교환한다.
func (c *Client) LoginWithGoogle(ctx context.Context, code string) (dto.User, error) {
	data, err := c.call(ctx, http.MethodPost, "/api/auth/google/login", nil, dto.GoogleLoginRequest{Code: code}, MsgUnknown)
	if err != nil {
		return dto.User{}, err
	}
	return decode[dto.User](data, MsgUnknown)
}

// Me 는 GET /api/auth/my 로 현재 세션의 사용자를 조회한다.
// 세션이 없으면 ErrUnauthorized 로 판별되는 에러를 반환한다.
func (c *Client) Me(ctx context.Context) (dto.User, error) {
	data, err := c.call(ctx, http.MethodGet, "/api/auth/my", nil, nil, MsgUnknown)
	if err != nil {
		return dto.User{}, err
	}
	return decode[dto.User](data, MsgUnknown)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, "/api/auth/logout", nil, nil, MsgUnknown)
}
