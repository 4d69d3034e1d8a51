package backendclient

import (
	"context"
	"net/http"
	"net/url"

	"dragons-web/cmd/web/dto"
)

// GetSubscription 은 GET /api/subscriptions?name= 으로 이름 기준 구독을 조회한다.
// 구독 정보가 없으면 nil 을 반환한다.
func (c *Client) GetSubscription(ctx context.Context, name string) (*dto.Subscription, error) {
	data, err := c.call(ctx, http.MethodGet, "/api/subscriptions", url.Values{"name": {name}}, nil, MsgUnknown)
	if err != nil {
		return nil, err
	}
	return decode[*dto.Subscription](data, MsgUnknown)
}

func (c *Client) CancelSubscription(ctx context.Context, holderName string) error {
	return c.send(ctx, http.MethodPost, "/api/subscriptions/cancel", nil, dto.CancelSubscriptionRequest{Name: holderName}, MsgUnknown)
}
