// Package paymentflow 는 리다이렉트로 결과가 돌아오는 결제/로그인 핸드셰이크를 다룬다.
//
// 한 번의 페이지 로드마다 Handshake 하나가 loading 에서 시작해
// success 또는 error 로 정확히 한 번 전이한다.
package paymentflow

import "sync"

type State string

const (
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Handshake 는 loading -> success | error 상태 기계다. 종료 상태에서의 전이는 무시된다.
type Handshake struct {
	mu      sync.Mutex
	state   State
	message string
}

func NewHandshake() *Handshake {
	return &Handshake{state: StateLoading}
}

// Succeed 는 loading 일 때만 success 로 전이하고 전이 여부를 반환한다.
func (h *Handshake) Succeed() bool {
	return h.transition(StateSuccess, "")
}

// Fail 은 loading 일 때만 error 로 전이하고 전이 여부를 반환한다.
func (h *Handshake) Fail(message string) bool {
	return h.transition(StateError, message)
}

func (h *Handshake) transition(to State, message string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateLoading {
		return false
	}
	h.state = to
	h.message = message
	return true
}

func (h *Handshake) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Handshake) Message() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.message
}
