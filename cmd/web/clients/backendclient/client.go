package backendclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"dragons-web/cmd/web/dto"
	"dragons-web/cmd/web/httpclient"
)

// Client는 Dragons REST 백엔드를 호출하는 얇은 클라이언트다.
//
//   - 모든 응답은 {meta:{result,message}, data} 봉투를 벗겨 data 만 돌려준다.
//   - 실패는 *APIError{Message, Status} 로 통일한다.
//   - 세션 쿠키는 컨텍스트의 httpclient.Session 을 통해 브라우저와 중계된다.
//
// baseURL 예: http://localhost:8089
type Client struct {
	base *httpclient.BaseClient
}

// 사용자에게 그대로 보여주는 기본 오류 메시지.
const (
	MsgUnknown         = "알 수 없는 오류가 발생했습니다."
	MsgNetwork         = "네트워크 오류가 발생했습니다."
	MsgCardFailed      = "카드 결제 요청에 실패했습니다."
	MsgBankFailed      = "계좌이체 요청에 실패했습니다."
	MsgTossFailed      = "토스 결제 준비에 실패했습니다."
	MsgConfirmFailed   = "결제 승인에 실패했습니다."
	maxResponseBodyLen = 1 << 20
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError 는 백엔드 호출 실패다. Status 0 은 전송 실패(네트워크)다.
type APIError struct {
	Message string
	Status  int
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend: status=%d message=%s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("backend: status=%d message=%s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is 는 상태 코드로 ErrNotFound/ErrUnauthorized 를 판별한다.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// IsNetwork 는 응답을 받지 못한 실패인지 반환한다.
func (e *APIError) IsNetwork() bool { return e.Status == 0 }

// Message 는 err 가 APIError 면 그 메시지를, 아니면 fallback 을 반환한다.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsNetworkError 는 err 가 전송 실패인지 반환한다.
func IsNetworkError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsNetwork()
}

func New(baseURL string, cfg httpclient.Config) *Client {
	return &Client{base: httpclient.NewBaseClient(baseURL, cfg)}
}

// NewWithBase 는 이미 만든 BaseClient 를 사용한다.
func NewWithBase(base *httpclient.BaseClient) *Client {
	return &Client{base: base}
}

// call 은 요청 하나를 실행하고 봉투를 벗긴 data 를 반환한다.
// 2xx 인데 본문이 비어 있으면 nil 을, meta 가 없으면 본문 전체를 data 로 본다.
func (c *Client) call(ctx context.Context, method, relPath string, query url.Values, payload any, fallback string) (json.RawMessage, error) {
	req, err := c.base.NewJSONRequest(ctx, method, relPath, query, payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, &APIError{Message: MsgNetwork, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyLen))
	if err != nil {
		return nil, &APIError{Message: MsgNetwork, Status: resp.StatusCode, Err: err}
	}
	body = bytes.TrimSpace(body)

	var env dto.Envelope
	envErr := errNoBody
	if len(body) > 0 {
		envErr = json.Unmarshal(body, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""
		if envErr == nil {
			msg = env.ErrorMessage()
		}
		if msg == "" {
			msg = fallback
		}
		return nil, &APIError{Message: msg, Status: resp.StatusCode}
	}

	if len(body) == 0 {
		return nil, nil
	}
	if envErr != nil || env.Meta == nil {
		if !json.Valid(body) {
			return nil, &APIError{Message: fallback, Status: resp.StatusCode, Err: errInvalidJSON}
		}
		return json.RawMessage(body), nil
	}
	if !env.Succeeded() {
		msg := env.ErrorMessage()
		if msg == "" {
			msg = fallback
		}
		return nil, &APIError{Message: msg, Status: resp.StatusCode}
	}
	return env.Data, nil
}

var (
	errNoBody      = errors.New("empty body")
	errInvalidJSON = errors.New("invalid json body")
)

// send 는 응답 data 를 쓰지 않는 호출이다.
// 2xx 면 본문이 JSON 이 아니어도 성공이고, 봉투가 있으면 result 로 판정한다.
func (c *Client) send(ctx context.Context, method, relPath string, query url.Values, payload any, fallback string) error {
	_, err := c.call(ctx, method, relPath, query, payload, fallback)
	var apiErr *APIError
	if errors.As(err, &apiErr) && errors.Is(apiErr.Err, errInvalidJSON) {
		return nil
	}
	return err
}

// decode 는 data 를 T 로 해석한다. data 가 없거나 null 이면 zero value 다.
func decode[T any](data json.RawMessage, fallback string) (T, error) {
	var out T
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &APIError{Message: fallback, Status: http.StatusOK, Err: fmt.Errorf("decode data: %w", err)}
	}
	return out, nil
}

// Ping 은 백엔드 도달 가능 여부만 확인한다. 상태 코드는 보지 않는다.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/api/posts", url.Values{"page": {"1"}, "limit": {"1"}}, nil)
	if err != nil {
		return err
	}
	resp, err := c.base.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("backend Ping: status=%d", resp.StatusCode)
	}
	return nil
}
