package validation

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thisYear() string { return strconv.Itoa(time.Now().Year()) }

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "1234", DigitsOnly("12-3 4"))
	assert.Equal(t, "", DigitsOnly("abcd"))
	assert.Equal(t, "1234567812345678", JoinDigits("1234", "5678", "12a34", "5678"))
}

func TestCardFormValidation(t *testing.T) {
	full := []string{"1234", "5678", "1234", "5678"}

	testCases := []struct {
		name    string
		form    CardForm
		wantMsg string
	}{
		{
			name:    "everything empty reports card number first",
			form:    NewCardForm(nil, "", "", "", ""),
			wantMsg: "카드번호 16자리를 모두 입력해주세요.",
		},
		{
			name:    "short card number",
			form:    NewCardForm([]string{"1234", "5678", "1234", "567"}, "12", thisYear(), "123", "kim"),
			wantMsg: "카드번호 16자리를 모두 입력해주세요.",
		},
		{
			name:    "too many digits",
			form:    NewCardForm([]string{"12345", "5678", "1234", "5678"}, "12", thisYear(), "123", "kim"),
			wantMsg: "카드번호 16자리를 모두 입력해주세요.",
		},
		{
			name:    "missing month",
			form:    NewCardForm(full, "", thisYear(), "123", "kim"),
			wantMsg: "유효기간을 입력해주세요.",
		},
		{
			name:    "month out of range",
			form:    NewCardForm(full, "13", thisYear(), "123", "kim"),
			wantMsg: "유효기간을 입력해주세요.",
		},
		{
			name:    "past year",
			form:    NewCardForm(full, "1", strconv.Itoa(time.Now().Year()-1), "123", "kim"),
			wantMsg: "유효기간을 입력해주세요.",
		},
		{
			name:    "short cvc",
			form:    NewCardForm(full, "1", thisYear(), "12", "kim"),
			wantMsg: "CVC 3자리를 입력해주세요.",
		},
		{
			name:    "blank holder",
			form:    NewCardForm(full, "1", thisYear(), "123", "   "),
			wantMsg: "소유자명을 입력해주세요.",
		},
		{
			name: "valid",
			form: NewCardForm([]string{"1234 ", "5678", "12-34", "5678"}, "01", thisYear(), "123", " kim "),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.form.Validate()
			if tc.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.wantMsg, Message(err, ""))
		})
	}
}

func TestCardFormRequest(t *testing.T) {
	form := NewCardForm([]string{"1234", "5678", "1234", "5678"}, "03", thisYear(), "123", " kim ")
	req := form.Request(9900, "premium")

	assert.Equal(t, "1234567812345678", req.CardNumber)
	assert.Equal(t, 3, req.ExpiryMonth)
	assert.Equal(t, "kim", req.CardholderName)
	assert.Equal(t, int64(9900), req.Amount)
	assert.Equal(t, "premium", req.PlanType)
}

func TestBankTransferFormValidation(t *testing.T) {
	testCases := []struct {
		name    string
		form    BankTransferForm
		wantMsg string
	}{
		{
			name:    "no bank",
			form:    NewBankTransferForm("", "1234567890", "kim"),
			wantMsg: "은행을 선택해주세요.",
		},
		{
			name:    "unknown bank",
			form:    NewBankTransferForm("999", "1234567890", "kim"),
			wantMsg: "은행을 선택해주세요.",
		},
		{
			name:    "account too short",
			form:    NewBankTransferForm("004", "123456789", "kim"),
			wantMsg: "계좌번호를 올바르게 입력해주세요 (10~14자리).",
		},
		{
			name:    "account too long",
			form:    NewBankTransferForm("004", "123456789012345", "kim"),
			wantMsg: "계좌번호를 올바르게 입력해주세요 (10~14자리).",
		},
		{
			name:    "no depositor",
			form:    NewBankTransferForm("004", "12345678901234", ""),
			wantMsg: "예금주명을 입력해주세요.",
		},
		{
			name: "valid with dashes",
			form: NewBankTransferForm("090", "3333-01-1234567", "kim"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.form.Validate()
			if tc.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tc.wantMsg, Message(err, ""))
		})
	}
}

func TestPostFormDefaultsCategory(t *testing.T) {
	form := NewPostForm(" 제목 ", "본문", "")
	require.NoError(t, form.Validate())
	req := form.Request()
	assert.Equal(t, "BACKEND", req.Category)
	assert.True(t, req.IsPublic)
	assert.Equal(t, "제목", req.Title)

	assert.Equal(t, "카테고리를 선택해주세요.", Message(NewPostForm("t", "c", "GAMES").Validate(), ""))
	assert.Equal(t, "제목을 입력해주세요.", Message(NewPostForm("", "c", "ETC").Validate(), ""))
}

func TestRegisterAndLoginForms(t *testing.T) {
	assert.Equal(t, "이메일을 올바르게 입력해주세요.", Message(RegisterForm{Name: "kim", Email: "not-an-email", Password: "pw"}.Validate(), ""))
	assert.NoError(t, RegisterForm{Name: "kim", Email: "kim@example.com", Password: "pw"}.Validate())
	assert.Equal(t, "비밀번호를 입력해주세요.", Message(LoginForm{Email: "kim@example.com"}.Validate(), ""))
}

func TestTossForm(t *testing.T) {
	assert.NoError(t, TossForm{Amount: 9900, OrderName: "구독", PlanType: "premium"}.Validate())
	assert.Equal(t, "결제 금액이 올바르지 않습니다.", Message(TossForm{OrderName: "구독", PlanType: "premium"}.Validate(), ""))
}
