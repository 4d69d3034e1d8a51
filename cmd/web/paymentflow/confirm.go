package paymentflow

import (
	"context"
	"errors"
	"net/url"
	"time"

	"dragons-web/cmd/internal/logger"
	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/metrics"
	"dragons-web/cmd/web/trace"
)

const (
	MsgMissingPaymentInfo = "결제 정보가 누락되었습니다."
	MsgConfirmFallback    = "결제 승인 처리 중 문제가 발생했습니다."
)

// Confirmer 는 토스 결제 승인을 백엔드에 요청한다.
type Confirmer interface {
	ConfirmTossPayment(ctx context.Context, paymentKey, orderID, amount string) error
}

// ConfirmParams 는 토스가 successUrl 에 붙여 보내는 값이다.
type ConfirmParams struct {
	PaymentKey string
	OrderID    string
	Amount     string
}

func ConfirmParamsFrom(q url.Values) ConfirmParams {
	return ConfirmParams{
		PaymentKey: q.Get("paymentKey"),
		OrderID:    q.Get("orderId"),
		Amount:     q.Get("amount"),
	}
}

// Complete 는 세 값이 모두 있는지 반환한다.
func (p ConfirmParams) Complete() bool {
	return p.PaymentKey != "" && p.OrderID != "" && p.Amount != ""
}

// ConfirmOutcome 은 성공 화면 한 번의 결과다.
type ConfirmOutcome struct {
	*Handshake
	OrderID     string
	Amount      string
	ConfirmedAt time.Time
}

// Confirm 은 성공 화면 핸드셰이크를 실행한다.
// 값이 하나라도 없으면 승인 API 를 부르지 않고 바로 error 가 된다.
func Confirm(ctx context.Context, c Confirmer, p ConfirmParams) *ConfirmOutcome {
	out := &ConfirmOutcome{Handshake: NewHandshake(), OrderID: p.OrderID, Amount: p.Amount}
	fields := logger.Fields{
		"request_id": trace.RequestIDFromContext(ctx),
		"order_id":   p.OrderID,
	}

	if !p.Complete() {
		out.Fail(MsgMissingPaymentInfo)
		metrics.PaymentHandshakesTotal.WithLabelValues("confirm", "skipped").Inc()
		logger.WarnWithFields("payment confirm skipped: missing params", fields)
		return out
	}

	ctx = trace.WithOrderID(ctx, p.OrderID)
	if err := c.ConfirmTossPayment(ctx, p.PaymentKey, p.OrderID, p.Amount); err != nil {
		out.Fail(confirmErrorMessage(err))
		metrics.PaymentHandshakesTotal.WithLabelValues("confirm", "error").Inc()
		fields["error"] = err.Error()
		logger.ErrorWithFields("payment confirm failed", fields)
		return out
	}

	out.ConfirmedAt = time.Now()
	out.Succeed()
	metrics.PaymentHandshakesTotal.WithLabelValues("confirm", "success").Inc()
	logger.InfoWithFields("payment confirmed", fields)
	return out
}

func confirmErrorMessage(err error) string {
	var apiErr *backendclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return MsgConfirmFallback
}
