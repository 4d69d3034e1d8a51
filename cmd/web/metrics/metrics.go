// Package metrics 는 웹 서버가 노출하는 Prometheus 지표를 한곳에 정의한다.
// promauto 로 기본 레지스트리에 등록되며 /metrics 에서 수집된다.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dragons_web"

// BackendRequestsTotal 은 백엔드로 나간 HTTP 호출 수다.
// status 는 HTTP 상태 코드, 전송 실패는 "error".
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of outbound requests to the REST backend.",
	},
	[]string{"method", "status"},
)

var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Latency of outbound requests to the REST backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// PageRequestsTotal 은 inbound 요청 수다. route 는 gin 의 FullPath 템플릿이다.
var PageRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_requests_total",
		Help:      "Total number of inbound page requests.",
	},
	[]string{"route", "status"},
)

// PaymentHandshakesTotal 은 결제/로그인 핸드셰이크 결과 수다.
// Labels:
//   - flow: "confirm", "fail_report", "oauth_callback"
//   - outcome: "success", "error", "skipped"
var PaymentHandshakesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "handshakes_total",
		Help:      "Total number of payment and login handshakes by outcome.",
	},
	[]string{"flow", "outcome"},
)

// PaymentRequestsTotal 은 결제 수단별 결제 요청 결과 수다.
// outcome 은 "success", "invalid"(검증 실패, 네트워크 호출 없음), "error".
var PaymentRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_requests_total",
		Help:      "Total number of payment form submissions by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// StatusLabel 은 HTTP 상태 코드를 라벨 값으로 바꾼다. 0 은 전송 실패다.
func StatusLabel(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status)
}
