package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dragons-web/cmd/internal/logger"
	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/services"
	"dragons-web/cmd/web/session"
)

const (
	msgSubscriptionCanceled = "구독이 취소되었습니다."
	msgCancelFailed         = "구독 취소에 실패했습니다."
)

// PricingHandler 는 요금제 화면이다. 구독 조회 실패나 비로그인은 "구독 안 함" 으로 본다.
func PricingHandler(subSvc *services.SubscriptionService, paymentSvc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		active := false
		sess := session.FromContext(c)
		if sess.Authenticated() {
			sub, err := subSvc.ForSession(c.Request.Context(), sess)
			if err != nil {
				logger.DebugWithFields("pricing subscription lookup ignored", requestFields(c, logger.Fields{"error": err.Error()}))
			} else if sub != nil {
				active = sub.IsActive(time.Now())
			}
		}
		render(c, http.StatusOK, "pricing.tmpl", gin.H{
			"Active":       active,
			"PremiumPrice": formatWon(paymentSvc.Config().Amount),
		})
	}
}

// MyPageHandler 는 사용자 정보와 구독 상태를 보여준다. RequireLogin 뒤에 둔다.
func MyPageHandler(subSvc *services.SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromContext(c)
		sub, err := subSvc.ForSession(c.Request.Context(), sess)
		if err != nil {
			logger.WarnWithFields("mypage subscription lookup failed", requestFields(c, logger.Fields{"error": err.Error()}))
			sub = nil
		}

		data := gin.H{"User": sess.User, "Subscription": nil}
		if sub != nil && sub.HasDisplayable() {
			data["Subscription"] = sub
			data["Cancelable"] = sub.Cancelable()
			if sub.ExpireDate != nil {
				data["ExpireDate"] = sub.ExpireDate.Local().Format("2006. 1. 2.")
			}
		}
		render(c, http.StatusOK, "mypage.tmpl", data)
	}
}

// CancelSubscriptionHandler 는 구독 해지를 요청하고 결과와 함께 마이페이지를 다시 연다.
func CancelSubscriptionHandler(subSvc *services.SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := subSvc.Cancel(c.Request.Context(), session.FromContext(c))
		switch {
		case err == nil:
			logger.InfoWithFields("subscription canceled", requestFields(c, nil))
			redirectWithFlash(c, "/mypage", msgSubscriptionCanceled)
			return
		case errors.Is(err, services.ErrNotLoggedIn):
			redirect(c, "/login")
			return
		case backendclient.IsNetworkError(err):
			logger.ErrorWithFields("subscription cancel failed", requestFields(c, logger.Fields{"error": err.Error()}))
			redirectWithFlash(c, "/mypage", msgGenericFailed)
		default:
			logger.WarnWithFields("subscription cancel failed", requestFields(c, logger.Fields{"error": err.Error()}))
			redirectWithFlash(c, "/mypage", msgCancelFailed)
		}
	}
}
