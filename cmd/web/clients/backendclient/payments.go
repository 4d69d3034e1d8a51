package backendclient

import (
	"context"
	"net/http"
	"net/url"

	"dragons-web/cmd/web/dto"
)

func (c *Client) RequestCardPayment(ctx context.Context, req dto.CardPaymentRequest) (dto.CardPaymentResponse, error) {
	data, err := c.call(ctx, http.MethodPost, "/api/payments/card", nil, req, MsgCardFailed)
	if err != nil {
		return dto.CardPaymentResponse{}, err
	}
	return decode[dto.CardPaymentResponse](data, MsgCardFailed)
}

func (c *Client) RequestBankTransfer(ctx context.Context, req dto.BankTransferRequest) (dto.BankTransferResponse, error) {
	data, err := c.call(ctx, http.MethodPost, "/api/payments/bank-transfer", nil, req, MsgBankFailed)
	if err != nil {
		return dto.BankTransferResponse{}, err
	}
	return decode[dto.BankTransferResponse](data, MsgBankFailed)
}

// RequestTossPayment 는 토스 결제 주문을 준비한다. 응답은 봉투가 있든 없든 받아들인다.
func (c *Client) RequestTossPayment(ctx context.Context, req dto.TossPaymentRequest) (dto.TossPaymentResponse, error) {
	data, err := c.call(ctx, http.MethodPost, "/api/payments/toss", nil, req, MsgTossFailed)
	if err != nil {
		return dto.TossPaymentResponse{}, err
	}
	return decode[dto.TossPaymentResponse](data, MsgTossFailed)
}

// ConfirmTossPayment 는 토스가 successUrl 로 넘긴 값으로 결제 승인을 요청한다.
func (c *Client) ConfirmTossPayment(ctx context.Context, paymentKey, orderID, amount string) error {
	q := url.Values{
		"paymentKey": {paymentKey},
		"orderId":    {orderID},
		"amount":     {amount},
	}
	return c.send(ctx, http.MethodGet, "/api/payments/toss/success", q, nil, MsgConfirmFailed)
}

// ReportTossFailure 는 토스 failUrl 로 돌아온 실패를 백엔드에 알린다.
func (c *Client) ReportTossFailure(ctx context.Context, code, message, orderID string) error {
	q := url.Values{
		"code":    {code},
		"message": {message},
		"orderId": {orderID},
	}
	return c.send(ctx, http.MethodGet, "/api/payments/toss/fail", q, nil, MsgUnknown)
}
