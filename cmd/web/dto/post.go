package dto

// 게시글 카테고리. 생성 시에만 지정하고 이후에는 바꿀 수 없다.
const (
	CategoryBackend  = "BACKEND"
	CategoryFrontend = "FRONTEND"
	CategoryDevOps   = "DEVOPS"
	CategoryEtc      = "ETC"
)

// Categories 는 작성 화면에 노출하는 순서다.
var Categories = []string{CategoryBackend, CategoryFrontend, CategoryDevOps, CategoryEtc}

// IsCategory 는 c 가 알려진 카테고리인지 반환한다.
func IsCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Post struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Author   string `json:"author"`
}

// PostPage 는 GET /api/posts 의 data 다.
type PostPage struct {
	Posts []Post `json:"posts"`
}

type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	IsPublic bool   `json:"isPublic"`
}

// UpdatePostRequest 에는 category 가 없다.
type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type ListPostsParams struct {
	Page  int
	Limit int
	Sort  string
}
