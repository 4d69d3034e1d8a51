package trace

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

type ctxKey string

const (
	ctxKeyTrace   ctxKey = "trace_info"
	ctxKeyOrderID ctxKey = "trace_order_id"
)

// 브라우저가 보낸 X-Request-Id 는 로그와 백엔드 헤더로 그대로 나가므로 길이와 문자를 제한한다.
const maxRequestIDLen = 64

// Info 는 하나의 inbound 요청에 대한 트레이싱 정보다.
// 같은 RequestID 안에서 백엔드 호출마다 spanSeq 가 1,2,3,... 으로 증가한다.
type Info struct {
	RequestID string
	spanSeq   int64
}

// GenerateID 는 하이픈 없는 UUIDv4 문자열을 반환한다.
func GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NormalizeRequestID 는 받은 Request ID 가 쓸 수 있으면 그대로, 아니면 새 ID 를 반환한다.
// 허용 문자는 영문, 숫자, '-', '_', '.' 이다.
func NormalizeRequestID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxRequestIDLen {
		return GenerateID()
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return GenerateID()
		}
	}
	return raw
}

// WithOrderID 는 결제 핸드셰이크의 주문번호를 컨텍스트에 붙인다.
// 이후 백엔드 호출 로그에 order_id 로 함께 남는다.
func WithOrderID(ctx context.Context, orderID string) context.Context {
	if orderID == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyOrderID, orderID)
}

func OrderIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(ctxKeyOrderID).(string)
	return v
}

// WithRequestAndSpan 은 Request ID 와 초기 span 값(보통 0)을 담은 컨텍스트를 반환한다.
func WithRequestAndSpan(ctx context.Context, requestID string, initialSpan int64) context.Context {
	return context.WithValue(ctx, ctxKeyTrace, &Info{RequestID: requestID, spanSeq: initialSpan})
}

func infoFromContext(ctx context.Context) *Info {
	if ctx == nil {
		return nil
	}
	v, _ := ctx.Value(ctxKeyTrace).(*Info)
	return v
}

func RequestIDFromContext(ctx context.Context) string {
	if info := infoFromContext(ctx); info != nil {
		return info.RequestID
	}
	return ""
}

// CurrentSpanID 는 증가 없이 현재 span 값을 반환한다.
func CurrentSpanID(ctx context.Context) string {
	info := infoFromContext(ctx)
	if info == nil {
		return "0"
	}
	val := atomic.LoadInt64(&info.spanSeq)
	if val <= 0 {
		return "0"
	}
	return strconv.FormatInt(val, 10)
}

// NextSpanID 는 span 을 1 증가시키고 (requestID, spanID) 를 반환한다.
// 트레이스가 없는 컨텍스트에서는 새 ID 와 span "1" 을 돌려준다.
func NextSpanID(ctx context.Context) (string, string) {
	info := infoFromContext(ctx)
	if info == nil {
		return GenerateID(), "1"
	}
	val := atomic.AddInt64(&info.spanSeq, 1)
	if val <= 0 {
		val = 1
	}
	return info.RequestID, strconv.FormatInt(val, 10)
}
