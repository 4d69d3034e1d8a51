package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"dragons-web/cmd/internal/logger"
	"dragons-web/cmd/web/metrics"
	"dragons-web/cmd/web/trace"
)

// Config는 HTTP 클라이언트 공통 설정이다.
type Config struct {
	Timeout   time.Duration
	Transport http.RoundTripper
}

const maxBodyLog = 1024

// 로그에 원문이 남으면 안 되는 요청 필드.
var sensitiveKeys = map[string]bool{
	"password":      true,
	"cardNumber":    true,
	"cvc":           true,
	"accountNumber": true,
	"code":          true,
	"paymentKey":    true,
}

// loggingRoundTripper는 모든 백엔드 호출에 대해 로깅, X-Request-Id/X-Span-Id 헤더 전파,
// Prometheus 지표 기록을 수행한다.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	sess := SessionFromContext(req.Context())
	if sess != nil && req.Response != nil {
		// 리다이렉트 hop 은 앞선 응답에서 받은 쿠키까지 다시 싣는다.
		req.Header.Del("Cookie")
		sess.apply(req)
	}

	requestID, spanID := trace.NextSpanID(req.Context())
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("X-Span-Id", spanID)

	var bodySnippet string
	if req.Body != nil {
		if bodyBytes, err := io.ReadAll(req.Body); err == nil {
			bodySnippet = redactBody(bodyBytes)
			req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}
	}

	resp, err := l.inner.RoundTrip(req)
	duration := time.Since(start)
	metrics.BackendRequestDuration.WithLabelValues(req.Method).Observe(duration.Seconds())

	fields := logger.Fields{
		"method":     req.Method,
		"path":       req.URL.Path,
		"query":      redactQuery(req.URL.Query()),
		"duration":   duration.String(),
		"request_id": requestID,
		"span_id":    spanID,
	}
	if bodySnippet != "" {
		fields["body"] = bodySnippet
	}
	if orderID := trace.OrderIDFromContext(req.Context()); orderID != "" {
		fields["order_id"] = orderID
	}
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(req.Method, metrics.StatusLabel(0)).Inc()
		fields["error"] = err.Error()
		logger.ErrorWithFields("backend request failed", fields)
		return nil, err
	}

	metrics.BackendRequestsTotal.WithLabelValues(req.Method, metrics.StatusLabel(resp.StatusCode)).Inc()
	if sess != nil {
		sess.capture(resp)
	}
	fields["status"] = resp.StatusCode
	logger.DebugWithFields("backend request completed", fields)
	return resp, nil
}

// redactBody 는 JSON 객체의 민감 필드를 가린 로그용 스니펫을 만든다.
func redactBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		for k := range obj {
			if sensitiveKeys[k] {
				obj[k] = "***"
			}
		}
		if masked, err := json.Marshal(obj); err == nil {
			body = masked
		}
	}
	if len(body) > maxBodyLog {
		body = body[:maxBodyLog]
	}
	return string(body)
}

func redactQuery(q url.Values) string {
	for k := range q {
		if sensitiveKeys[k] {
			q.Set(k, "***")
		}
	}
	return q.Encode()
}

// BaseClient는 공통 HTTP 클라이언트와 baseURL을 묶어두고,
// URL 생성, 세션 쿠키 전달, 요청 실행을 담당한다.
type BaseClient struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewBaseClient는 주어진 baseURL과 설정으로 BaseClient를 생성한다.
func NewBaseClient(baseURL string, cfg Config) *BaseClient {
	return &BaseClient{
		HTTPClient: New(cfg),
		BaseURL:    baseURL,
	}
}

// NewRequest는 baseURL과 상대 경로, 쿼리, 바디로 요청을 만든다.
// relPath에 쿼리(?)가 포함되면 path.Join이 손상시키므로 에러를 반환한다.
// 컨텍스트에 Session 이 있으면 브라우저 쿠키를 그대로 실어 보낸다.
func (c *BaseClient) NewRequest(ctx context.Context, method, relPath string, query url.Values, body io.Reader) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.Contains(relPath, "?") {
		return nil, fmt.Errorf("httpclient: relPath must not contain query string (use query parameter instead): %s", relPath)
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	if relPath != "" {
		base.Path = path.Join(base.Path, relPath)
	}
	if query != nil {
		base.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, base.String(), body)
	if err != nil {
		return nil, err
	}
	if s := SessionFromContext(ctx); s != nil {
		s.apply(req)
	}
	return req, nil
}

// NewJSONRequest는 payload 를 JSON 으로 직렬화해 요청을 만든다.
func (c *BaseClient) NewJSONRequest(ctx context.Context, method, relPath string, query url.Values, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := c.NewRequest(ctx, method, relPath, query, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Do는 요청을 실행한다. 리다이렉트는 따라가며, 각 hop 의 Set-Cookie 는 RoundTrip 에서 세션에 모인다.
func (c *BaseClient) Do(req *http.Request) (*http.Response, error) {
	return c.HTTPClient.Do(req)
}

// New는 주어진 설정으로 http.Client를 생성한다.
// Timeout이 0이면 기본값 10초를 사용한다.
func New(cfg Config) *http.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &loggingRoundTripper{inner: transport},
	}
}
