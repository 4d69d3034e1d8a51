package dto

import "strings"

// PlanPremium 은 유료 구독 요금제 식별자다.
const PlanPremium = "premium"

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "CARD"
	PaymentMethodBank PaymentMethod = "BANK"
	PaymentMethodToss PaymentMethod = "TOSS"
)

// ParsePaymentMethod 는 알 수 없는 값이면 빈 값(미선택)을 반환한다.
func ParsePaymentMethod(s string) PaymentMethod {
	switch m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s))); m {
	case PaymentMethodCard, PaymentMethodBank, PaymentMethodToss:
		return m
	default:
		return ""
	}
}

type CardPaymentRequest struct {
	CardNumber     string `json:"cardNumber"`
	ExpiryMonth    int    `json:"expiryMonth"`
	ExpiryYear     int    `json:"expiryYear"`
	CVC            string `json:"cvc"`
	CardholderName string `json:"cardholderName"`
	Amount         int64  `json:"amount"`
	PlanType       string `json:"planType"`
}

// CardPaymentResponse 는 백엔드가 돌려주는 카드 결제 결과다. 요청 값 일부를 그대로 되돌려준다.
type CardPaymentResponse struct {
	CardNumber string `json:"cardNumber"`
	Amount     int64  `json:"amount"`
	PlanType   string `json:"planType"`
}

type BankTransferRequest struct {
	BankCode      string `json:"bankCode"`
	AccountNumber string `json:"accountNumber"`
	DepositorName string `json:"depositorName"`
	Amount        int64  `json:"amount"`
	PlanType      string `json:"planType"`
}

type BankTransferResponse struct {
	BankCode      string `json:"bankCode"`
	AccountNumber string `json:"accountNumber"`
	DepositorName string `json:"depositorName"`
	Amount        int64  `json:"amount"`
	PlanType      string `json:"planType"`
}

type TossPaymentRequest struct {
	Amount    int64  `json:"amount"`
	OrderName string `json:"orderName"`
	PlanType  string `json:"planType"`
}

// TossPaymentResponse 는 백엔드가 준비한 토스 주문 정보다.
type TossPaymentResponse struct {
	OrderID      string `json:"orderId"`
	Amount       int64  `json:"amount"`
	OrderName    string `json:"orderName"`
	CustomerName string `json:"customerName"`
	SuccessURL   string `json:"successUrl"`
	FailURL      string `json:"failUrl"`
}

// Bank 는 계좌이체 화면의 은행 선택지다.
type Bank struct {
	Code string
	Name string
}

var Banks = []Bank{
	{Code: "004", Name: "KB국민"},
	{Code: "088", Name: "신한"},
	{Code: "020", Name: "우리"},
	{Code: "011", Name: "NH농협"},
	{Code: "003", Name: "IBK기업"},
	{Code: "081", Name: "하나"},
	{Code: "090", Name: "카카오뱅크"},
	{Code: "092", Name: "토스뱅크"},
}

// BankName 은 코드에 해당하는 은행 이름을 반환한다.
func BankName(code string) (string, bool) {
	for _, b := range Banks {
		if b.Code == code {
			return b.Name, true
		}
	}
	return "", false
}
