package paymentflow

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/dto"
)

type fakeBackend struct {
	mu          sync.Mutex
	confirmErr  error
	reportErr   error
	loginErr    error
	confirms    int
	reports     int
	logins      int
	lastConfirm ConfirmParams
	lastReport  FailParams
}

func (f *fakeBackend) ConfirmTossPayment(_ context.Context, paymentKey, orderID, amount string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirms++
	f.lastConfirm = ConfirmParams{PaymentKey: paymentKey, OrderID: orderID, Amount: amount}
	return f.confirmErr
}

func (f *fakeBackend) ReportTossFailure(_ context.Context, code, message, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports++
	f.lastReport = FailParams{Code: code, Message: message, OrderID: orderID}
	return f.reportErr
}

func (f *fakeBackend) LoginWithGoogle(_ context.Context, code string) (dto.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	return dto.User{Name: "kim"}, f.loginErr
}

func TestHandshakeTransitionsOnce(t *testing.T) {
	h := NewHandshake()
	assert.Equal(t, StateLoading, h.State())

	assert.True(t, h.Fail("boom"))
	assert.False(t, h.Succeed())
	assert.False(t, h.Fail("again"))

	assert.Equal(t, StateError, h.State())
	assert.Equal(t, "boom", h.Message())
}

func TestConfirmMissingParamsSkipsBackend(t *testing.T) {
	testCases := []struct {
		name  string
		query url.Values
	}{
		{name: "nothing", query: url.Values{}},
		{name: "no paymentKey", query: url.Values{"orderId": {"o-1"}, "amount": {"9900"}}},
		{name: "no orderId", query: url.Values{"paymentKey": {"pk"}, "amount": {"9900"}}},
		{name: "no amount", query: url.Values{"paymentKey": {"pk"}, "orderId": {"o-1"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			backend := &fakeBackend{}
			out := Confirm(context.Background(), backend, ConfirmParamsFrom(tc.query))

			assert.Equal(t, StateError, out.State())
			assert.Equal(t, MsgMissingPaymentInfo, out.Message())
			assert.Zero(t, backend.confirms)
		})
	}
}

func TestConfirmSuccess(t *testing.T) {
	backend := &fakeBackend{}
	q := url.Values{"paymentKey": {"pk_1"}, "orderId": {"o-1"}, "amount": {"9900"}}

	out := Confirm(context.Background(), backend, ConfirmParamsFrom(q))

	assert.Equal(t, StateSuccess, out.State())
	assert.Equal(t, 1, backend.confirms)
	assert.Equal(t, ConfirmParams{PaymentKey: "pk_1", OrderID: "o-1", Amount: "9900"}, backend.lastConfirm)
	assert.Equal(t, "o-1", out.OrderID)
	assert.Equal(t, "9900", out.Amount)
	assert.False(t, out.ConfirmedAt.IsZero())
}

func TestConfirmErrorMessages(t *testing.T) {
	q := url.Values{"paymentKey": {"pk_1"}, "orderId": {"o-1"}, "amount": {"9900"}}

	backend := &fakeBackend{confirmErr: &backendclient.APIError{Message: "이미 승인된 결제입니다.", Status: 400}}
	out := Confirm(context.Background(), backend, ConfirmParamsFrom(q))
	assert.Equal(t, StateError, out.State())
	assert.Equal(t, "이미 승인된 결제입니다.", out.Message())

	backend = &fakeBackend{confirmErr: errors.New("boom")}
	out = Confirm(context.Background(), backend, ConfirmParamsFrom(q))
	assert.Equal(t, MsgConfirmFallback, out.Message())
}

func TestFailParamsDefaults(t *testing.T) {
	p := FailParamsFrom(url.Values{})
	assert.Equal(t, FailParams{Code: DefaultFailCode, Message: DefaultFailMessage}, p)

	p = FailParamsFrom(url.Values{"code": {"PAY_PROCESS_CANCELED"}, "message": {"사용자가 결제를 취소했습니다."}, "orderId": {"o-1"}})
	assert.Equal(t, "PAY_PROCESS_CANCELED", p.Code)
	assert.Equal(t, "o-1", p.OrderID)
}

func TestFailureReportSendsAtMostOnce(t *testing.T) {
	backend := &fakeBackend{}
	report := NewFailureReport(backend, FailParams{Code: "C", Message: "M", OrderID: "o-1"})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report.Send(context.Background())
		}()
	}
	wg.Wait()
	report.Send(context.Background())

	assert.Equal(t, 1, backend.reports)
	assert.True(t, report.Sent())
	assert.Equal(t, FailParams{Code: "C", Message: "M", OrderID: "o-1"}, backend.lastReport)
}

func TestFailureReportSkipsWithoutOrderID(t *testing.T) {
	backend := &fakeBackend{}
	report := NewFailureReport(backend, FailParamsFrom(url.Values{"code": {"X"}}))
	report.Send(context.Background())

	assert.Zero(t, backend.reports)
	assert.False(t, report.Sent())
}

func TestFailureReportErrorIsSwallowed(t *testing.T) {
	backend := &fakeBackend{reportErr: errors.New("down")}
	report := NewFailureReport(backend, FailParams{OrderID: "o-1"})
	report.Send(context.Background())

	assert.Equal(t, 1, backend.reports)
	require.Error(t, report.Err())
}

func TestCallback(t *testing.T) {
	t.Run("missing code makes no call", func(t *testing.T) {
		backend := &fakeBackend{}
		out := Callback(context.Background(), backend, "", "/login", 3*time.Second)

		assert.Equal(t, StateError, out.State())
		assert.Equal(t, MsgMissingAuthCode, out.Message())
		assert.Empty(t, out.RedirectTo)
		assert.Zero(t, backend.logins)
	})

	t.Run("success redirects home", func(t *testing.T) {
		backend := &fakeBackend{}
		out := Callback(context.Background(), backend, "abc", "/login", 3*time.Second)

		assert.Equal(t, StateSuccess, out.State())
		assert.Equal(t, "/", out.RedirectTo)
		assert.Zero(t, out.RedirectAfter)
		assert.Equal(t, 1, backend.logins)
	})

	t.Run("failure returns to login after delay", func(t *testing.T) {
		backend := &fakeBackend{loginErr: &backendclient.APIError{Message: "만료된 코드", Status: 400}}
		out := Callback(context.Background(), backend, "abc", "/login", 3*time.Second)

		assert.Equal(t, StateError, out.State())
		assert.Equal(t, "로그인 실패: 만료된 코드", out.Message())
		assert.Equal(t, "/login", out.RedirectTo)
		assert.Equal(t, 3*time.Second, out.RedirectAfter)
	})
}
