package paymentflow

import (
	"context"
	"net/url"
	"sync"

	"dragons-web/cmd/internal/logger"
	"dragons-web/cmd/web/metrics"
	"dragons-web/cmd/web/trace"
)

const (
	DefaultFailCode    = "UNKNOWN_ERROR"
	DefaultFailMessage = "결제 진행 중 알 수 없는 오류가 발생했습니다."
)

// FailureReporter 는 토스 결제 실패를 백엔드에 알린다.
type FailureReporter interface {
	ReportTossFailure(ctx context.Context, code, message, orderID string) error
}

// FailParams 는 토스가 failUrl 에 붙여 보내는 값이다. 비어 있으면 기본값을 쓴다.
type FailParams struct {
	Code    string
	Message string
	OrderID string
}

func FailParamsFrom(q url.Values) FailParams {
	p := FailParams{
		Code:    q.Get("code"),
		Message: q.Get("message"),
		OrderID: q.Get("orderId"),
	}
	if p.Code == "" {
		p.Code = DefaultFailCode
	}
	if p.Message == "" {
		p.Message = DefaultFailMessage
	}
	return p
}

// FailureReport 는 페이지 로드 하나에 대한 실패 보고다.
// Send 를 몇 번 호출해도 백엔드 호출은 최대 한 번이다.
type FailureReport struct {
	Params   FailParams
	reporter FailureReporter
	once     sync.Once
	sent     bool
	err      error
}

func NewFailureReport(r FailureReporter, p FailParams) *FailureReport {
	return &FailureReport{Params: p, reporter: r}
}

// Send 는 orderId 가 있을 때만 한 번 보고한다. 보고 실패는 로그로만 남긴다.
func (f *FailureReport) Send(ctx context.Context) {
	f.once.Do(func() {
		if f.Params.OrderID == "" {
			metrics.PaymentHandshakesTotal.WithLabelValues("fail_report", "skipped").Inc()
			return
		}
		f.sent = true
		ctx = trace.WithOrderID(ctx, f.Params.OrderID)
		f.err = f.reporter.ReportTossFailure(ctx, f.Params.Code, f.Params.Message, f.Params.OrderID)

		fields := logger.Fields{
			"request_id": trace.RequestIDFromContext(ctx),
			"order_id":   f.Params.OrderID,
			"code":       f.Params.Code,
		}
		if f.err != nil {
			metrics.PaymentHandshakesTotal.WithLabelValues("fail_report", "error").Inc()
			fields["error"] = f.err.Error()
			logger.WarnWithFields("payment failure report failed", fields)
			return
		}
		metrics.PaymentHandshakesTotal.WithLabelValues("fail_report", "success").Inc()
		logger.InfoWithFields("payment failure reported", fields)
	})
}

// Sent 는 백엔드 호출을 시도했는지 반환한다.
func (f *FailureReport) Sent() bool { return f.sent }

// Err 는 보고 호출의 에러다. 화면 표시에는 쓰지 않는다.
func (f *FailureReport) Err() error { return f.err }
