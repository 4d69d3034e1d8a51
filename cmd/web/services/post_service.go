package services

import (
	"context"

	"dragons-web/cmd/web/clients/backendclient"
	"dragons-web/cmd/web/dto"
	"dragons-web/cmd/web/validation"
)

// 홈 화면 최신 글 목록 조건.
const (
	LatestPostsLimit = 5
	LatestPostsSort  = "createdAt,desc"
)

type PostService struct {
	client *backendclient.Client
}

func NewPostService(client *backendclient.Client) *PostService {
	return &PostService{client: client}
}

// Latest 는 홈 화면에 보여줄 최신 글 5개다.
func (s *PostService) Latest(ctx context.Context) ([]dto.Post, error) {
	return s.client.ListPosts(ctx, dto.ListPostsParams{Page: 1, Limit: LatestPostsLimit, Sort: LatestPostsSort})
}

func (s *PostService) Get(ctx context.Context, id int64) (dto.Post, error) {
	return s.client.GetPost(ctx, id)
}

// Create 는 폼을 검증하고 글을 만든 뒤 새 id 를 반환한다.
func (s *PostService) Create(ctx context.Context, form validation.PostForm) (int64, error) {
	if err := form.Validate(); err != nil {
		return 0, err
	}
	return s.client.CreatePost(ctx, form.Request())
}

func (s *PostService) Update(ctx context.Context, id int64, form validation.PostEditForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	return s.client.UpdatePost(ctx, id, form.Request())
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	return s.client.DeletePost(ctx, id)
}
