package httpclient

import (
	"context"
	"net/http"
	"sync"
	"time"
)

type ctxKey string

const ctxKeySession ctxKey = "backend_session"

// Session 은 inbound 요청 하나 동안 브라우저 쿠키와 백엔드 Set-Cookie 를 중계한다.
// 로그인 직후 같은 요청 안에서 이어지는 호출은 새로 받은 쿠키로 나간다.
type Session struct {
	mu       sync.Mutex
	names    []string
	values   map[string]string
	received []*http.Cookie
}

// NewSession 은 브라우저가 보낸 쿠키로 세션을 만든다.
func NewSession(cookies []*http.Cookie) *Session {
	s := &Session{values: map[string]string{}}
	for _, ck := range cookies {
		s.set(ck.Name, ck.Value)
	}
	return s
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

func SessionFromContext(ctx context.Context) *Session {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(ctxKeySession).(*Session)
	return s
}

// Has 는 현재 보낼 쿠키 중 name 이 있는지 반환한다.
func (s *Session) Has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[name]
	return ok
}

// TakeReceived 는 아직 브라우저로 전달하지 않은 Set-Cookie 를 꺼내고 비운다.
func (s *Session) TakeReceived() []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.received
	s.received = nil
	return out
}

func (s *Session) set(name, value string) {
	if _, ok := s.values[name]; !ok {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}

func (s *Session) remove(name string) {
	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

func (s *Session) apply(req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range s.names {
		req.AddCookie(&http.Cookie{Name: name, Value: s.values[name]})
	}
}

func (s *Session) capture(resp *http.Response) {
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return
	}
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ck := range cookies {
		s.received = append(s.received, ck)
		if ck.MaxAge < 0 || (!ck.Expires.IsZero() && ck.Expires.Before(now)) {
			s.remove(ck.Name)
			continue
		}
		s.set(ck.Name, ck.Value)
	}
}
