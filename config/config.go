package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Session SessionConfig `yaml:"session"`
	Payment PaymentConfig `yaml:"payment"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
	CORS    CORSConfig    `yaml:"cors"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" env:"WEB_ADDR, overwrite"`
	// PublicBaseURL 은 토스 successUrl/failUrl 을 만들 때 쓰는 외부 노출 주소다.
	// 비어 있으면 요청의 scheme/host 로 계산한다.
	PublicBaseURL     string        `yaml:"public_base_url" env:"PUBLIC_BASE_URL, overwrite"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// BackendConfig 는 REST 백엔드(세션 쿠키의 소유자) 접속 정보다.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_BASE_URL, overwrite"`
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT, overwrite"`
}

type SessionConfig struct {
	CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME, overwrite"`
	LoginPath  string `yaml:"login_path"`
}

type PaymentConfig struct {
	Amount        int64  `yaml:"amount"`
	PlanType      string `yaml:"plan_type"`
	OrderName     string `yaml:"order_name"`
	ProductName   string `yaml:"product_name"`
	TossClientKey string `yaml:"toss_client_key" env:"TOSS_CLIENT_KEY, overwrite"`
	TossSDKURL    string `yaml:"toss_sdk_url"`
}

type AuthConfig struct {
	// CallbackRedirectDelay 는 OAuth 콜백 실패 화면이 /login 으로 돌아가기까지의 대기 시간이다.
	CallbackRedirectDelay time.Duration `yaml:"callback_redirect_delay"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL, overwrite"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS, overwrite"`
}

var config *AppConfig

func InitApp() {
	c, err := Load(GetBasePath())
	if err != nil {
		panic(err)
	}
	config = c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// Load 는 dir 의 .env 와 config.yaml 을 읽고 환경변수 오버라이드와 기본값을 적용한다.
// config.yaml 이 없으면 기본값과 환경변수만으로 구성한다.
func Load(dir string) (*AppConfig, error) {
	// .env 는 선택 사항이다.
	_ = godotenv.Load(filepath.Join(dir, ENV_FILE))

	var c AppConfig
	data, err := os.ReadFile(filepath.Join(dir, CONFIG_FILE))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", CONFIG_FILE, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("config: read %s: %w", CONFIG_FILE, err)
	}

	if err := envconfig.Process(context.Background(), &c); err != nil {
		return nil, fmt.Errorf("config: env override: %w", err)
	}
	c.applyDefaults()
	return &c, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	c.Server.PublicBaseURL = strings.TrimRight(c.Server.PublicBaseURL, "/")
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}

	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = "http://localhost:8089"
	}
	c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = 10 * time.Second
	}

	if c.Session.CookieName == "" {
		c.Session.CookieName = "JSESSIONID"
	}
	if c.Session.LoginPath == "" {
		c.Session.LoginPath = "/login"
	}

	if c.Payment.Amount == 0 {
		c.Payment.Amount = 9900
	}
	if c.Payment.PlanType == "" {
		c.Payment.PlanType = "premium"
	}
	if c.Payment.OrderName == "" {
		c.Payment.OrderName = "구독"
	}
	if c.Payment.ProductName == "" {
		c.Payment.ProductName = "Dragons Premium"
	}
	if c.Payment.TossSDKURL == "" {
		c.Payment.TossSDKURL = "https://js.tosspayments.com/v2/standard"
	}

	if c.Auth.CallbackRedirectDelay == 0 {
		c.Auth.CallbackRedirectDelay = 3 * time.Second
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)
}

// Validate 는 실행 전에 설정 조합을 점검한다.
// release 모드에서 토스 결제를 켰다면 토스 successUrl/failUrl 을 위해 public_base_url 이 있어야 한다.
func (c *AppConfig) Validate(release bool) error {
	if c.Server.PublicBaseURL != "" {
		u, err := url.Parse(c.Server.PublicBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config: invalid server.public_base_url %q", c.Server.PublicBaseURL)
		}
		return nil
	}
	if release && c.Payment.TossClientKey != "" {
		return errors.New("config: server.public_base_url is required when toss payment is enabled in release mode")
	}
	return nil
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd
}
