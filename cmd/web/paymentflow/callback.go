package paymentflow

import (
	"context"
	"time"

	"dragons-web/cmd/internal/logger"
	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/dto"
	"dragons-web/cmd/web/metrics"
	"dragons-web/cmd/web/trace"
)

const (
	MsgMissingAuthCode   = "인증 코드가 없습니다."
	MsgLoginFailedPrefix = "로그인 실패: "
)

// GoogleExchanger 는 OAuth 인가 코드를 백엔드 세션으로 교환한다.
type GoogleExchanger interface {
	LoginWithGoogle(ctx context.Context, code string) (dto.User, error)
}

// CallbackOutcome 은 OAuth 콜백 화면 한 번의 결과다.
// 성공이면 RedirectTo 로 바로 이동하고, 실패면 안내 화면을 보여준 뒤 RedirectAfter 뒤에 이동한다.
type CallbackOutcome struct {
	*Handshake
	RedirectTo    string
	RedirectAfter time.Duration
}

// Callback 은 인가 코드를 교환한다. 코드가 없으면 호출하지 않는다.
func Callback(ctx context.Context, ex GoogleExchanger, code, loginPath string, retryDelay time.Duration) *CallbackOutcome {
	out := &CallbackOutcome{Handshake: NewHandshake()}
	fields := logger.Fields{"request_id": trace.RequestIDFromContext(ctx)}

	if code == "" {
		out.Fail(MsgMissingAuthCode)
		metrics.PaymentHandshakesTotal.WithLabelValues("oauth_callback", "skipped").Inc()
		return out
	}

	if _, err := ex.LoginWithGoogle(ctx, code); err != nil {
		out.Fail(MsgLoginFailedPrefix + backendclient.Message(err, backendclient.MsgUnknown))
		out.RedirectTo = loginPath
		out.RedirectAfter = retryDelay
		metrics.PaymentHandshakesTotal.WithLabelValues("oauth_callback", "error").Inc()
		fields["error"] = err.Error()
		logger.WarnWithFields("google login failed", fields)
		return out
	}

	out.Succeed()
	out.RedirectTo = "/"
	metrics.PaymentHandshakesTotal.WithLabelValues("oauth_callback", "success").Inc()
	logger.InfoWithFields("google login succeeded", fields)
	return out
}
