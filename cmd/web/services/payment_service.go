package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"dragons-web/cmd/internal/logger"
	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/dto"
	"dragons-web/cmd/web/metrics"
	"dragons-web/cmd/web/paymentflow"
	"dragons-web/cmd/web/trace"
	"dragons-web/cmd/web/validation"
)

// PaymentConfig 는 결제 상품 정보다.
type PaymentConfig struct {
	Amount        int64
	PlanType      string
	OrderName     string
	ProductName   string
	TossClientKey string
	TossSDKURL    string
}

// TossCheckout 은 토스 SDK requestPayment 호출에 필요한 값이다.
type TossCheckout struct {
	ClientKey    string
	SDKURL       string
	CustomerKey  string
	OrderID      string
	OrderName    string
	CustomerName string
	Amount       int64
	SuccessURL   string
	FailURL      string
}

type PaymentService struct {
	client *backendclient.Client
	cfg    PaymentConfig
}

func NewPaymentService(client *backendclient.Client, cfg PaymentConfig) *PaymentService {
	return &PaymentService{client: client, cfg: cfg}
}

func (s *PaymentService) Config() PaymentConfig { return s.cfg }

// TossEnabled 는 토스 클라이언트 키가 설정되어 있는지 반환한다.
func (s *PaymentService) TossEnabled() bool { return s.cfg.TossClientKey != "" }

func (s *PaymentService) logResult(ctx context.Context, method, outcome string, err error) {
	metrics.PaymentRequestsTotal.WithLabelValues(method, outcome).Inc()
	fields := logger.Fields{
		"request_id": trace.RequestIDFromContext(ctx),
		"method":     method,
		"outcome":    outcome,
		"amount":     s.cfg.Amount,
	}
	if err != nil {
		fields["error"] = err.Error()
		logger.WarnWithFields("payment request finished", fields)
		return
	}
	logger.InfoWithFields("payment request finished", fields)
}

// PayByCard 는 폼 검증을 통과해야만 백엔드를 호출한다.
func (s *PaymentService) PayByCard(ctx context.Context, form validation.CardForm) (dto.CardPaymentResponse, error) {
	if err := form.Validate(); err != nil {
		s.logResult(ctx, "card", "invalid", nil)
		return dto.CardPaymentResponse{}, err
	}
	resp, err := s.client.RequestCardPayment(ctx, form.Request(s.cfg.Amount, s.cfg.PlanType))
	if err != nil {
		s.logResult(ctx, "card", "error", err)
		return dto.CardPaymentResponse{}, err
	}
	s.logResult(ctx, "card", "success", nil)
	return resp, nil
}

func (s *PaymentService) PayByBankTransfer(ctx context.Context, form validation.BankTransferForm) (dto.BankTransferResponse, error) {
	if err := form.Validate(); err != nil {
		s.logResult(ctx, "bank", "invalid", nil)
		return dto.BankTransferResponse{}, err
	}
	resp, err := s.client.RequestBankTransfer(ctx, form.Request(s.cfg.Amount, s.cfg.PlanType))
	if err != nil {
		s.logResult(ctx, "bank", "error", err)
		return dto.BankTransferResponse{}, err
	}
	s.logResult(ctx, "bank", "success", nil)
	return resp, nil
}

// PrepareToss 는 백엔드에 주문을 만들고 브라우저가 토스 결제창을 띄울 값을 돌려준다.
// successUrl/failUrl 은 publicBase 기준이다.
func (s *PaymentService) PrepareToss(ctx context.Context, publicBase string) (TossCheckout, error) {
	form := validation.TossForm{Amount: s.cfg.Amount, OrderName: s.cfg.OrderName, PlanType: s.cfg.PlanType}
	if err := form.Validate(); err != nil {
		s.logResult(ctx, "toss", "invalid", nil)
		return TossCheckout{}, err
	}
	resp, err := s.client.RequestTossPayment(ctx, form.Request())
	if err != nil {
		s.logResult(ctx, "toss", "error", err)
		return TossCheckout{}, err
	}
	s.logResult(ctx, "toss", "success", nil)

	base := strings.TrimRight(publicBase, "/")
	checkout := TossCheckout{
		ClientKey:    s.cfg.TossClientKey,
		SDKURL:       s.cfg.TossSDKURL,
		CustomerKey:  "customer_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16],
		OrderID:      resp.OrderID,
		OrderName:    resp.OrderName,
		CustomerName: resp.CustomerName,
		Amount:       resp.Amount,
		SuccessURL:   base + "/payment/success",
		FailURL:      base + "/payment/fail",
	}
	if checkout.OrderName == "" {
		checkout.OrderName = s.cfg.OrderName
	}
	if checkout.Amount == 0 {
		checkout.Amount = s.cfg.Amount
	}
	return checkout, nil
}

// Confirm 은 결제 성공 리다이렉트의 승인 핸드셰이크를 실행한다.
func (s *PaymentService) Confirm(ctx context.Context, q url.Values) *paymentflow.ConfirmOutcome {
	return paymentflow.Confirm(ctx, s.client, paymentflow.ConfirmParamsFrom(q))
}

// FailureReport 는 결제 실패 리다이렉트 한 번에 대한 보고 객체를 만든다.
func (s *PaymentService) FailureReport(q url.Values) *paymentflow.FailureReport {
	return paymentflow.NewFailureReport(s.client, paymentflow.FailParamsFrom(q))
}
