package validation

import "dragons-web/cmd/web/dto"

// CardForm 은 카드 결제 폼이다. 필드 순서가 곧 검증 순서다.
type CardForm struct {
	CardNumber     string `validate:"len=16,number" msg:"카드번호 16자리를 모두 입력해주세요."`
	ExpiryMonth    int    `validate:"min=1,max=12" msg:"유효기간을 입력해주세요."`
	ExpiryYear     int    `validate:"expiryyear" msg:"유효기간을 입력해주세요."`
	CVC            string `validate:"len=3,number" msg:"CVC 3자리를 입력해주세요."`
	CardholderName string `validate:"required" msg:"소유자명을 입력해주세요."`
}

// NewCardForm 은 4칸으로 나뉜 카드번호와 나머지 입력을 정규화한다.
func NewCardForm(cardParts []string, month, year, cvc, holder string) CardForm {
	return CardForm{
		CardNumber:     JoinDigits(cardParts...),
		ExpiryMonth:    Int(month),
		ExpiryYear:     Int(year),
		CVC:            DigitsOnly(cvc),
		CardholderName: Text(holder),
	}
}

func (f CardForm) Validate() error { return Struct(f) }

func (f CardForm) Request(amount int64, planType string) dto.CardPaymentRequest {
	return dto.CardPaymentRequest{
		CardNumber:     f.CardNumber,
		ExpiryMonth:    f.ExpiryMonth,
		ExpiryYear:     f.ExpiryYear,
		CVC:            f.CVC,
		CardholderName: f.CardholderName,
		Amount:         amount,
		PlanType:       planType,
	}
}

type BankTransferForm struct {
	BankCode      string `validate:"bankcode" msg:"은행을 선택해주세요."`
	AccountNumber string `validate:"min=10,max=14,number" msg:"계좌번호를 올바르게 입력해주세요 (10~14자리)."`
	DepositorName string `validate:"required" msg:"예금주명을 입력해주세요."`
}

func NewBankTransferForm(bankCode, account, depositor string) BankTransferForm {
	return BankTransferForm{
		BankCode:      Text(bankCode),
		AccountNumber: DigitsOnly(account),
		DepositorName: Text(depositor),
	}
}

func (f BankTransferForm) Validate() error { return Struct(f) }

func (f BankTransferForm) Request(amount int64, planType string) dto.BankTransferRequest {
	return dto.BankTransferRequest{
		BankCode:      f.BankCode,
		AccountNumber: f.AccountNumber,
		DepositorName: f.DepositorName,
		Amount:        amount,
		PlanType:      planType,
	}
}

// TossForm 은 설정에서 오는 값이라 사용자 입력은 없지만 호출 전에 한 번 확인한다.
type TossForm struct {
	Amount    int64  `validate:"gt=0" msg:"결제 금액이 올바르지 않습니다."`
	OrderName string `validate:"required" msg:"주문명이 없습니다."`
	PlanType  string `validate:"required" msg:"요금제가 없습니다."`
}

func (f TossForm) Validate() error { return Struct(f) }

func (f TossForm) Request() dto.TossPaymentRequest {
	return dto.TossPaymentRequest{Amount: f.Amount, OrderName: f.OrderName, PlanType: f.PlanType}
}

type LoginForm struct {
	Email    string `validate:"required,email" msg:"이메일을 올바르게 입력해주세요."`
	Password string `validate:"required" msg:"비밀번호를 입력해주세요."`
}

func (f LoginForm) Validate() error { return Struct(f) }

type RegisterForm struct {
	Name     string `validate:"required" msg:"이름을 입력해주세요."`
	Email    string `validate:"required,email" msg:"이메일을 올바르게 입력해주세요."`
	Password string `validate:"required" msg:"비밀번호를 입력해주세요."`
}

func (f RegisterForm) Validate() error { return Struct(f) }

// PostForm 은 작성 폼이다. 카테고리가 비어 있으면 BACKEND 로 채운다.
type PostForm struct {
	Title    string `validate:"required,max=200" msg:"제목을 입력해주세요."`
	Content  string `validate:"required" msg:"내용을 입력해주세요."`
	Category string `validate:"oneof=BACKEND FRONTEND DEVOPS ETC" msg:"카테고리를 선택해주세요."`
}

func NewPostForm(title, content, category string) PostForm {
	category = Text(category)
	if category == "" {
		category = dto.CategoryBackend
	}
	return PostForm{Title: Text(title), Content: Text(content), Category: category}
}

func (f PostForm) Validate() error { return Struct(f) }

func (f PostForm) Request() dto.CreatePostRequest {
	return dto.CreatePostRequest{Title: f.Title, Content: f.Content, Category: f.Category, IsPublic: true}
}

// PostEditForm 은 수정 폼이다. 카테고리는 바꿀 수 없다.
type PostEditForm struct {
	Title   string `validate:"required,max=200" msg:"제목을 입력해주세요."`
	Content string `validate:"required" msg:"내용을 입력해주세요."`
}

func (f PostEditForm) Validate() error { return Struct(f) }

func (f PostEditForm) Request() dto.UpdatePostRequest {
	return dto.UpdatePostRequest{Title: f.Title, Content: f.Content}
}
