package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t time.Time) *Timestamp { return &Timestamp{t} }

func TestSubscriptionPredicates(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	testCases := []struct {
		name            string
		sub             *Subscription
		wantActive      bool
		wantDisplayable bool
		wantCancelable  bool
	}{
		{name: "nil subscription"},
		{
			name: "none",
			sub:  &Subscription{Status: SubscriptionNone, ExpireDate: ts(future)},
			// NONE 이어도 만료일이 미래면 요금제 화면은 구독 중으로 본다.
			wantActive: true,
		},
		{
			name:            "active with future expiry",
			sub:             &Subscription{Status: SubscriptionActive, ExpireDate: ts(future)},
			wantActive:      true,
			wantDisplayable: true,
			wantCancelable:  true,
		},
		{
			name:            "active with past expiry",
			sub:             &Subscription{Status: SubscriptionActive, ExpireDate: ts(past)},
			wantDisplayable: true,
			wantCancelable:  true,
		},
		{
			name:            "active without expiry",
			sub:             &Subscription{Status: SubscriptionActive},
			wantDisplayable: true,
			wantCancelable:  true,
		},
		{
			name:            "pending cancel",
			sub:             &Subscription{Status: SubscriptionPendingCancel, ExpireDate: ts(future)},
			wantActive:      true,
			wantDisplayable: true,
		},
		{
			name: "expired with future expiry",
			sub:  &Subscription{Status: SubscriptionExpired, ExpireDate: ts(future)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantActive, tc.sub.IsActive(now))
			assert.Equal(t, tc.wantDisplayable, tc.sub.HasDisplayable())
			assert.Equal(t, tc.wantCancelable, tc.sub.Cancelable())
		})
	}
}

func TestSubscriptionDecodesBackendDates(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			name: "zoned",
			raw:  `{"status":"ACTIVE","expireDate":"2026-11-18T10:00:00+09:00"}`,
			want: time.Date(2026, 11, 18, 1, 0, 0, 0, time.UTC),
		},
		{
			name: "local date time",
			raw:  `{"status":"ACTIVE","expireDate":"2026-11-18T10:00:00"}`,
			want: time.Date(2026, 11, 18, 10, 0, 0, 0, time.Local),
		},
		{
			name: "local date time with fraction",
			raw:  `{"status":"ACTIVE","expireDate":"2026-11-18T10:00:00.123456"}`,
			want: time.Date(2026, 11, 18, 10, 0, 0, 123456000, time.Local),
		},
		{
			name: "date only",
			raw:  `{"status":"ACTIVE","expireDate":"2026-11-18"}`,
			want: time.Date(2026, 11, 18, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var sub Subscription
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &sub))
			require.NotNil(t, sub.ExpireDate)
			assert.True(t, tc.want.Equal(sub.ExpireDate.Time), "got %s", sub.ExpireDate.Time)
		})
	}
}

func TestSubscriptionNullExpireDate(t *testing.T) {
	var sub Subscription
	require.NoError(t, json.Unmarshal([]byte(`{"holderName":"kim","status":"NONE","expireDate":null}`), &sub))
	assert.Nil(t, sub.ExpireDate)
	assert.Equal(t, "kim", sub.HolderName)
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	_, err := ParseTimestamp("next tuesday")
	assert.Error(t, err)
}

func TestEnvelopeErrorMessage(t *testing.T) {
	assert.Equal(t, "meta msg", Envelope{Meta: &Meta{Message: "meta msg"}, Message: "top"}.ErrorMessage())
	assert.Equal(t, "top", Envelope{Meta: &Meta{}, Message: "top"}.ErrorMessage())
	assert.Equal(t, "", Envelope{}.ErrorMessage())
	assert.True(t, Envelope{Meta: &Meta{Result: ResultSuccess}}.Succeeded())
	assert.False(t, Envelope{Meta: &Meta{Result: "FAIL"}}.Succeeded())
}
