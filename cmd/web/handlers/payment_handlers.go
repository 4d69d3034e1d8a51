package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"dragons-web/cmd/internal/logger"
	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/dto"
	"dragons-web/cmd/web/paymentflow"
	"dragons-web/cmd/web/services"
	"dragons-web/cmd/web/session"
	"dragons-web/cmd/web/validation"
)

const (
	msgCardPaid         = "결제가 성공적으로 완료되었습니다!"
	msgBankRequested    = "계좌이체 요청이 성공적으로 완료되었습니다!"
	msgCardFallback     = "카드 결제에 실패했습니다."
	msgBankFallback     = "계좌이체에 실패했습니다."
	msgTossFallback     = "결제 요청 실패"
	msgTossNotReady     = "결제 모듈이 아직 로딩 중입니다. 잠시만 기다려주세요."
	receiptTimeLayout   = "2006-01-02 15:04:05"
	expiryYearsSelected = 10
)

// paymentPageData 는 결제 화면 공통 값이다. extra 가 같은 키를 덮어쓴다.
func paymentPageData(c *gin.Context, paymentSvc *services.PaymentService, method dto.PaymentMethod, extra gin.H) gin.H {
	cfg := paymentSvc.Config()
	now := time.Now().Year()
	years := make([]int, 0, expiryYearsSelected)
	for i := 0; i < expiryYearsSelected; i++ {
		years = append(years, now+i)
	}
	months := make([]int, 12)
	for i := range months {
		months[i] = i + 1
	}

	data := gin.H{
		"Method":      string(method),
		"ProductName": cfg.ProductName,
		"Buyer":       session.FromContext(c).Email(),
		"Amount":      formatWon(cfg.Amount),
		"Banks":       dto.Banks,
		"Months":      months,
		"Years":       years,
		"TossEnabled": paymentSvc.TossEnabled(),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// PaymentPageHandler 는 결제 수단 선택 화면이다. ?method=CARD|BANK|TOSS 로 폼을 고른다.
func PaymentPageHandler(paymentSvc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := dto.ParsePaymentMethod(c.Query("method"))
		render(c, http.StatusOK, "payment.tmpl", paymentPageData(c, paymentSvc, method, nil))
	}
}

// CardPaymentHandler 는 입력 검증을 통과한 경우에만 백엔드에 카드 결제를 요청한다.
func CardPaymentHandler(paymentSvc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := []string{c.PostForm("card1"), c.PostForm("card2"), c.PostForm("card3"), c.PostForm("card4")}
		form := validation.NewCardForm(parts, c.PostForm("expiryMonth"), c.PostForm("expiryYear"), c.PostForm("cvc"), c.PostForm("cardholderName"))

		if _, err := paymentSvc.PayByCard(c.Request.Context(), form); err != nil {
			msg := validation.Message(err, backendclient.Message(err, msgCardFallback))
			render(c, http.StatusOK, "payment.tmpl", paymentPageData(c, paymentSvc, dto.PaymentMethodCard, gin.H{
				"Error":      msg,
				"CardHolder": form.CardholderName,
			}))
			return
		}
		redirectWithFlash(c, "/", msgCardPaid)
	}
}

func BankTransferHandler(paymentSvc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := validation.NewBankTransferForm(c.PostForm("bankCode"), c.PostForm("accountNumber"), c.PostForm("depositorName"))

		if _, err := paymentSvc.PayByBankTransfer(c.Request.Context(), form); err != nil {
			msg := validation.Message(err, backendclient.Message(err, msgBankFallback))
			render(c, http.StatusOK, "payment.tmpl", paymentPageData(c, paymentSvc, dto.PaymentMethodBank, gin.H{
				"Error":         msg,
				"BankCode":      form.BankCode,
				"AccountNumber": form.AccountNumber,
				"DepositorName": form.DepositorName,
			}))
			return
		}
		redirectWithFlash(c, "/", msgBankRequested)
	}
}

// TossPaymentHandler 는 백엔드에 주문을 만든 뒤 토스 결제창을 여는 화면을 그린다.
// 클라이언트 키가 없으면 백엔드를 부르지 않는다.
func TossPaymentHandler(paymentSvc *services.PaymentService, publicBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !paymentSvc.TossEnabled() {
			render(c, http.StatusOK, "payment.tmpl", paymentPageData(c, paymentSvc, dto.PaymentMethodToss, gin.H{"Error": msgTossNotReady}))
			return
		}

		checkout, err := paymentSvc.PrepareToss(c.Request.Context(), publicBase(c, publicBaseURL))
		if err != nil {
			msg := validation.Message(err, backendclient.Message(err, msgTossFallback))
			render(c, http.StatusOK, "payment.tmpl", paymentPageData(c, paymentSvc, dto.PaymentMethodToss, gin.H{"Error": msg}))
			return
		}
		render(c, http.StatusOK, "toss_checkout.tmpl", gin.H{
			"Checkout":      checkout,
			"AmountDisplay": formatWon(checkout.Amount),
		})
	}
}

// PaymentSuccessHandler 는 토스 successUrl 이다. 승인 결과를 영수증 또는 오류로 보여준다.
func PaymentSuccessHandler(paymentSvc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := paymentSvc.Confirm(c.Request.Context(), c.Request.URL.Query())

		data := gin.H{
			"State":   string(out.State()),
			"Message": out.Message(),
		}
		if out.State() == paymentflow.StateSuccess {
			data["OrderID"] = out.OrderID
			data["Amount"] = receiptAmount(out.Amount)
			data["ConfirmedAt"] = out.ConfirmedAt.Format(receiptTimeLayout)
		}
		render(c, http.StatusOK, "payment_success.tmpl", data)
	}
}

// PaymentFailHandler 는 토스 failUrl 이다. orderId 가 있으면 백엔드에 한 번 알린다.
// 보고 실패와 상관없이 실패 화면은 항상 그린다.
func PaymentFailHandler(paymentSvc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := paymentSvc.FailureReport(c.Request.URL.Query())
		report.Send(c.Request.Context())
		if err := report.Err(); err != nil {
			logger.WarnWithFields("payment fail page report error", requestFields(c, logger.Fields{"error": err.Error()}))
		}
		render(c, http.StatusOK, "payment_fail.tmpl", gin.H{
			"Code":    report.Params.Code,
			"Message": report.Params.Message,
			"OrderID": report.Params.OrderID,
		})
	}
}

// publicBase 는 설정값이 없으면 요청의 scheme/host 로 외부 주소를 만든다.
// release 모드에서는 config.Validate 가 설정값을 강제한다.
func publicBase(c *gin.Context, configured string) string {
	if configured != "" {
		return configured
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}

// receiptAmount 는 숫자면 "9,900" 으로, 아니면 받은 값 그대로 보여준다.
func receiptAmount(raw string) string {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return raw
	}
	return formatWon(n)
}
