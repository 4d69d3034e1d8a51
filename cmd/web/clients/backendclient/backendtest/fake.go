// Package backendtest 는 테스트용 인메모리 Dragons 백엔드를 제공한다.
// 실제 백엔드와 같은 {meta, data} 봉투와 JSESSIONID 세션 쿠키를 흉내 내고,
// 엔드포인트별 호출 횟수를 기록한다.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"dragons-web/cmd/web/dto"
)

const SessionCookie = "JSESSIONID"

// ValidGoogleCode 는 LoginWithGoogle 이 성공으로 처리하는 인가 코드다.
const ValidGoogleCode = "valid-google-code"

type account struct {
	user     dto.User
	password string
}

type override struct {
	status int
	body   string
}

// Server 는 httptest.Server 위에서 동작하는 가짜 백엔드다.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	accounts      map[string]*account // email -> account
	sessions      map[string]string   // session id -> email
	posts         map[int64]dto.Post
	nextPostID    int64
	subscriptions map[string]*dto.Subscription // holder name -> subscription
	calls         map[string]int
	overrides     map[string]override
	lastBodies    map[string]json.RawMessage
	lastQueries   map[string]map[string]string
}

func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		accounts:      map[string]*account{},
		sessions:      map[string]string{},
		posts:         map[int64]dto.Post{},
		nextPostID:    1,
		subscriptions: map[string]*dto.Subscription{},
		calls:         map[string]int{},
		overrides:     map[string]override{},
		lastBodies:    map[string]json.RawMessage{},
		lastQueries:   map[string]map[string]string{},
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// AddUser 는 계정을 만들고 바로 쓸 수 있는 세션 id 를 반환한다.
func (s *Server) AddUser(name, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = &account{user: dto.User{Name: name, Email: email}, password: password}
	sid := "sess-" + email
	s.sessions[sid] = email
	return sid
}

func (s *Server) AddPost(p dto.Post) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextPostID
	}
	if p.ID >= s.nextPostID {
		s.nextPostID = p.ID + 1
	}
	s.posts[p.ID] = p
	return p.ID
}

func (s *Server) Post(id int64) (dto.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	return p, ok
}

func (s *Server) SetSubscription(sub dto.Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions[sub.HolderName] = &sub
}

func (s *Server) Subscription(holder string) *dto.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscriptions[holder]
}

// Respond 는 key("METHOD /path") 요청에 고정 응답을 돌려주게 한다.
func (s *Server) Respond(key string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[key] = override{status: status, body: body}
}

// Fail 은 key 요청이 봉투 형식의 실패 응답을 돌려주게 한다.
func (s *Server) Fail(key string, status int, message string) {
	s.Respond(key, status, fmt.Sprintf(`{"meta":{"result":"FAIL","message":%q},"data":null}`, message))
}

// Calls 는 key("METHOD /route") 로 들어온 요청 수다. route 는 gin 경로 템플릿이다.
func (s *Server) Calls(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

// TotalCalls 는 모든 엔드포인트 호출 수의 합이다.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// LastBody 는 key 로 마지막에 받은 JSON 본문이다.
func (s *Server) LastBody(key string) json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBodies[key]
}

// LastQuery 는 key 로 마지막에 받은 쿼리 파라미터다.
func (s *Server) LastQuery(key string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQueries[key]
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"meta": gin.H{"result": dto.ResultSuccess, "message": ""}, "data": data})
}

func failure(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"meta": gin.H{"result": "FAIL", "message": message}, "data": nil})
}

func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + " " + c.FullPath()
		raw := c.Request.Method + " " + c.Request.URL.Path

		var body json.RawMessage
		if c.Request.Body != nil && c.Request.ContentLength != 0 {
			_ = json.NewDecoder(c.Request.Body).Decode(&body)
		}
		query := map[string]string{}
		for k, v := range c.Request.URL.Query() {
			if len(v) > 0 {
				query[k] = v[0]
			}
		}

		s.mu.Lock()
		s.calls[key]++
		if body != nil {
			s.lastBodies[key] = body
		}
		s.lastQueries[key] = query
		ov, hasOverride := s.overrides[key]
		if !hasOverride {
			ov, hasOverride = s.overrides[raw]
		}
		s.mu.Unlock()

		if body != nil {
			c.Set("body", body)
		}
		if hasOverride {
			c.Data(ov.status, "application/json", []byte(ov.body))
			c.Abort()
			return
		}
		c.Next()
	}
}

func bind(c *gin.Context, out any) bool {
	raw, ok := c.Get("body")
	if !ok {
		failure(c, http.StatusBadRequest, "요청 본문이 없습니다.")
		return false
	}
	if err := json.Unmarshal(raw.(json.RawMessage), out); err != nil {
		failure(c, http.StatusBadRequest, "잘못된 요청입니다.")
		return false
	}
	return true
}

// currentUser 는 세션 쿠키로 사용자를 찾는다. s.mu 를 잡은 상태에서 호출한다.
func (s *Server) currentUser(c *gin.Context) (dto.User, bool) {
	ck, err := c.Cookie(SessionCookie)
	if err != nil {
		return dto.User{}, false
	}
	email, ok := s.sessions[ck]
	if !ok {
		return dto.User{}, false
	}
	acc, ok := s.accounts[email]
	if !ok {
		return dto.User{}, false
	}
	return acc.user, true
}

func (s *Server) startSession(c *gin.Context, email string) dto.User {
	sid := fmt.Sprintf("sess-%s-%d", email, time.Now().UnixNano())
	s.sessions[sid] = email
	http.SetCookie(c.Writer, &http.Cookie{Name: SessionCookie, Value: sid, Path: "/", HttpOnly: true})
	u := s.accounts[email].user
	u.LoginTime = time.Now().Format("2006-01-02T15:04:05")
	return u
}

func (s *Server) routes() http.Handler {
	r := gin.New()
	r.Use(s.record())

	r.POST("/api/auth/login", func(c *gin.Context) {
		var req dto.LoginRequest
		if !bind(c, &req) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		acc, ok := s.accounts[req.Email]
		if !ok || acc.password != req.Password {
			failure(c, http.StatusUnauthorized, "이메일 또는 비밀번호가 올바르지 않습니다.")
			return
		}
		success(c, s.startSession(c, req.Email))
	})

	r.POST("/api/auth/register", func(c *gin.Context) {
		var req dto.RegisterRequest
		if !bind(c, &req) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, exists := s.accounts[req.Email]; exists {
			failure(c, http.StatusConflict, "이미 가입된 이메일입니다.")
			return
		}
		s.accounts[req.Email] = &account{user: dto.User{Name: req.Name, Email: req.Email}, password: req.Password}
		success(c, dto.RegisterResult{Name: req.Name, Email: req.Email})
	})

	r.GET("/api/auth/google/url", func(c *gin.Context) {
		success(c, "https://accounts.google.com/o/oauth2/v2/auth?client_id=test")
	})

	r.POST("/api/auth/google/login", func(c *gin.Context) {
		var req dto.GoogleLoginRequest
		if !bind(c, &req) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if req.Code != ValidGoogleCode {
			failure(c, http.StatusBadRequest, "유효하지 않은 인증 코드입니다.")
			return
		}
		email := "google-user@example.com"
		if _, ok := s.accounts[email]; !ok {
			s.accounts[email] = &account{user: dto.User{Name: "구글유저", Email: email}}
		}
		success(c, s.startSession(c, email))
	})

	r.GET("/api/auth/my", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		u, ok := s.currentUser(c)
		if !ok {
			failure(c, http.StatusUnauthorized, "로그인이 필요합니다.")
			return
		}
		success(c, u)
	})

	r.POST("/api/auth/logout", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if ck, err := c.Cookie(SessionCookie); err == nil {
			delete(s.sessions, ck)
		}
		http.SetCookie(c.Writer, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
		success(c, nil)
	})

	r.GET("/api/posts", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		all := make([]dto.Post, 0, len(s.posts))
		for _, p := range s.posts {
			all = append(all, p)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
		start := (page - 1) * limit
		if start > len(all) {
			start = len(all)
		}
		end := start + limit
		if end > len(all) {
			end = len(all)
		}
		success(c, dto.PostPage{Posts: all[start:end]})
	})

	r.POST("/api/posts", func(c *gin.Context) {
		var req dto.CreatePostRequest
		if !bind(c, &req) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		u, ok := s.currentUser(c)
		if !ok {
			failure(c, http.StatusUnauthorized, "로그인이 필요합니다.")
			return
		}
		id := s.nextPostID
		s.nextPostID++
		p := dto.Post{ID: id, Title: req.Title, Content: req.Content, Category: req.Category, Author: u.Name}
		s.posts[id] = p
		success(c, p)
	})

	postByID := func(c *gin.Context) (int64, dto.Post, bool) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			failure(c, http.StatusBadRequest, "잘못된 게시글 번호입니다.")
			return 0, dto.Post{}, false
		}
		p, ok := s.posts[id]
		if !ok {
			failure(c, http.StatusNotFound, "게시글을 찾을 수 없습니다.")
			return 0, dto.Post{}, false
		}
		return id, p, true
	}

	r.GET("/api/posts/:id", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, p, ok := postByID(c); ok {
			success(c, p)
		}
	})

	r.PUT("/api/posts/:id", func(c *gin.Context) {
		var req dto.UpdatePostRequest
		if !bind(c, &req) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		id, p, ok := postByID(c)
		if !ok {
			return
		}
		p.Title, p.Content = req.Title, req.Content
		s.posts[id] = p
		success(c, p)
	})

	r.DELETE("/api/posts/:id", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		id, _, ok := postByID(c)
		if !ok {
			return
		}
		delete(s.posts, id)
		success(c, nil)
	})

	r.GET("/api/subscriptions", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		sub, ok := s.subscriptions[c.Query("name")]
		if !ok {
			success(c, nil)
			return
		}
		success(c, sub)
	})

	r.POST("/api/subscriptions/cancel", func(c *gin.Context) {
		var req dto.CancelSubscriptionRequest
		if !bind(c, &req) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		sub, ok := s.subscriptions[req.Name]
		if !ok || sub.Status != dto.SubscriptionActive {
			failure(c, http.StatusBadRequest, "해지할 수 있는 구독이 없습니다.")
			return
		}
		sub.Status = dto.SubscriptionPendingCancel
		success(c, sub)
	})

	r.POST("/api/payments/card", func(c *gin.Context) {
		var req dto.CardPaymentRequest
		if !bind(c, &req) {
			return
		}
		success(c, dto.CardPaymentResponse{CardNumber: req.CardNumber, Amount: req.Amount, PlanType: req.PlanType})
	})

	r.POST("/api/payments/bank-transfer", func(c *gin.Context) {
		var req dto.BankTransferRequest
		if !bind(c, &req) {
			return
		}
		success(c, dto.BankTransferResponse{
			BankCode:      req.BankCode,
			AccountNumber: req.AccountNumber,
			DepositorName: req.DepositorName,
			Amount:        req.Amount,
			PlanType:      req.PlanType,
		})
	})

	r.POST("/api/payments/toss", func(c *gin.Context) {
		var req dto.TossPaymentRequest
		if !bind(c, &req) {
			return
		}
		success(c, dto.TossPaymentResponse{
			OrderID:      "order-1",
			Amount:       req.Amount,
			OrderName:    req.OrderName,
			CustomerName: "홍길동",
		})
	})

	r.GET("/api/payments/toss/success", func(c *gin.Context) {
		success(c, gin.H{"orderId": c.Query("orderId"), "status": "DONE"})
	})

	r.GET("/api/payments/toss/fail", func(c *gin.Context) {
		success(c, nil)
	})

	return r
}
