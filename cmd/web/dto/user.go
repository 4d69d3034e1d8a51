package dto

// User 는 /api/auth/my 가 돌려주는 현재 로그인 사용자다.
type User struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	LoginTime string `json:"loginTime"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResult struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type GoogleLoginRequest struct {
	Code string `json:"code"`
}
