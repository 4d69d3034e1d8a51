// Package validation 은 화면 폼의 입력 정규화와 검증을 모아둔다.
//
// 폼은 struct 로 정의하고 각 필드에 validate 태그와 사용자에게 보여줄 msg 태그를 단다.
// 검증은 필드 선언 순서대로 진행되며 첫 번째 실패의 msg 만 돌려준다.
package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"dragons-web/cmd/web/dto"
)

// FieldError 는 사용자에게 그대로 보여줄 검증 실패다.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator 는 커스텀 태그가 등록된 공용 validator 를 반환한다.
//   - bankcode: 알려진 은행 코드
//   - expiryyear: 올해부터 9년 뒤까지의 연도
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("bankcode", func(fl validator.FieldLevel) bool {
			_, ok := dto.BankName(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("expiryyear", func(fl validator.FieldLevel) bool {
			y := int(fl.Field().Int())
			now := time.Now().Year()
			return y >= now && y < now+10
		})
		validate = v
	})
	return validate
}

// Struct 는 form 을 검증하고 첫 번째 실패 필드의 msg 태그를 FieldError 로 반환한다.
func Struct(form any) error {
	err := Validator().Struct(form)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	fe := ve[0]
	return &FieldError{Field: fe.Field(), Message: messageFor(form, fe)}
}

func messageFor(form any, fe validator.FieldError) string {
	t := reflect.TypeOf(form)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(fe.StructField()); ok {
		if msg := f.Tag.Get("msg"); msg != "" {
			return msg
		}
	}
	return fe.Field() + " 값이 올바르지 않습니다."
}

// Message 는 err 가 FieldError 면 그 메시지를, 아니면 fallback 을 반환한다.
func Message(err error, fallback string) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return fallback
}

// DigitsOnly 는 숫자가 아닌 문자를 모두 제거한다.
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// JoinDigits 는 나뉘어 입력된 숫자 칸들을 하나로 잇는다.
func JoinDigits(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(DigitsOnly(p))
	}
	return b.String()
}

// Text 는 앞뒤 공백과 제어 문자를 제거한다.
func Text(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s))
}

// Int 는 빈 값이나 숫자가 아닌 값을 0 으로 본다.
func Int(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
