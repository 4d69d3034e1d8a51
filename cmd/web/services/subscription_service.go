package services

import (
	"context"
	"errors"

	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/dto"
	"dragons-web/cmd/web/session"
)

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrNoSubscription = errors.New("no cancelable subscription")
)

type SubscriptionService struct {
	client *backendclient.Client
}

func NewSubscriptionService(client *backendclient.Client) *SubscriptionService {
	return &SubscriptionService{client: client}
}

// ForSession 은 로그인 사용자 이름으로 구독을 조회한다. 구독이 없으면 nil 이다.
func (s *SubscriptionService) ForSession(ctx context.Context, sess *session.Session) (*dto.Subscription, error) {
	if !sess.Authenticated() {
		return nil, ErrNotLoggedIn
	}
	return s.client.GetSubscription(ctx, sess.Name())
}

// Cancel 은 현재 사용자의 구독을 조회해 holderName 으로 해지를 요청한다.
// 폼에서 넘어온 이름은 쓰지 않는다.
func (s *SubscriptionService) Cancel(ctx context.Context, sess *session.Session) error {
	sub, err := s.ForSession(ctx, sess)
	if err != nil {
		return err
	}
	if !sub.Cancelable() {
		return ErrNoSubscription
	}
	holder := sub.HolderName
	if holder == "" {
		holder = sess.Name()
	}
	return s.client.CancelSubscription(ctx, holder)
}
