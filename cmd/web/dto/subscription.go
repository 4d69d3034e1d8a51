package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionNone          SubscriptionStatus = "NONE"
	SubscriptionActive        SubscriptionStatus = "ACTIVE"
	SubscriptionPendingCancel SubscriptionStatus = "PENDING_CANCEL"
	SubscriptionExpired       SubscriptionStatus = "EXPIRED"
)

type Subscription struct {
	HolderName string             `json:"holderName"`
	PlanType   string             `json:"planType"`
	Status     SubscriptionStatus `json:"status"`
	ExpireDate *Timestamp         `json:"expireDate"`
}

// IsActive 는 요금제 화면의 "구독 중" 판정이다.
// 만료가 아니고 만료일이 now 이후여야 한다. 만료일이 없으면 구독 중이 아니다.
func (s *Subscription) IsActive(now time.Time) bool {
	if s == nil || s.Status == SubscriptionExpired || s.ExpireDate == nil {
		return false
	}
	return s.ExpireDate.Time.After(now)
}

// HasDisplayable 은 마이페이지에 구독 정보를 보여줄지 판정한다.
// 만료일은 보지 않는다.
func (s *Subscription) HasDisplayable() bool {
	if s == nil {
		return false
	}
	return s.Status != "" && s.Status != SubscriptionNone && s.Status != SubscriptionExpired
}

// Cancelable 은 해지 버튼 노출 여부다.
func (s *Subscription) Cancelable() bool {
	return s != nil && s.Status == SubscriptionActive
}

type CancelSubscriptionRequest struct {
	Name string `json:"name"`
}

// Timestamp 는 zone 이 없는 로컬 날짜/시각 문자열도 받아들이는 시각이다.
// zone 이 없으면 서버 로컬 시간으로 해석한다.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp 는 백엔드가 내려주는 날짜 형식을 해석한다.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if layout == time.RFC3339Nano {
			if t, err := time.Parse(layout, s); err == nil {
				return Timestamp{t}, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("dto: unsupported timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}
