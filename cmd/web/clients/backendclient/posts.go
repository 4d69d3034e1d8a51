package backendclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"dragons-web/cmd/web/dto"
)

// ListPosts 는 GET /api/posts 를 호출한다. 0 값 파라미터는 보내지 않는다.
func (c *Client) ListPosts(ctx context.Context, p dto.ListPostsParams) ([]dto.Post, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	data, err := c.call(ctx, http.MethodGet, "/api/posts", q, nil, MsgUnknown)
	if err != nil {
		return nil, err
	}
	page, err := decode[dto.PostPage](data, MsgUnknown)
	if err != nil {
		return nil, err
	}
	return page.Posts, nil
}

func postPath(id int64) string {
	return path.Join("/api/posts", strconv.FormatInt(id, 10))
}

func (c *Client) GetPost(ctx context.Context, id int64) (dto.Post, error) {
	data, err := c.call(ctx, http.MethodGet, postPath(id), nil, nil, MsgUnknown)
	if err != nil {
		return dto.Post{}, err
	}
	return decode[dto.Post](data, MsgUnknown)
}

// CreatePost 는 새 글을 만들고 백엔드가 부여한 id 를 반환한다.
// data 는 게시글 객체이거나 id 숫자 하나일 수 있다.
func (c *Client) CreatePost(ctx context.Context, req dto.CreatePostRequest) (int64, error) {
	data, err := c.call(ctx, http.MethodPost, "/api/posts", nil, req, MsgUnknown)
	if err != nil {
		return 0, err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		return decode[int64](data, MsgUnknown)
	}
	var created struct {
		ID     int64 `json:"id"`
		PostID int64 `json:"postId"`
	}
	if len(trimmed) > 0 {
		if err := json.Unmarshal(trimmed, &created); err != nil {
			return 0, &APIError{Message: MsgUnknown, Status: http.StatusOK, Err: err}
		}
	}
	if created.ID == 0 {
		created.ID = created.PostID
	}
	return created.ID, nil
}

func (c *Client) UpdatePost(ctx context.Context, id int64, req dto.UpdatePostRequest) error {
	return c.send(ctx, http.MethodPut, postPath(id), nil, req, MsgUnknown)
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, postPath(id), nil, nil, MsgUnknown)
}
