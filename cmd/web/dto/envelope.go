package dto

import "encoding/json"

// ResultSuccess 는 백엔드 응답 meta.result 의 성공 값이다.
const ResultSuccess = "SUCCESS"

// Meta 는 백엔드 공통 응답의 결과 구분자와 메시지다.
type Meta struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

// Envelope 는 백엔드의 {meta, data} 응답 형태다.
// Meta 가 nil 이면 감싸지 않은 응답으로 본다.
type Envelope struct {
	Meta    *Meta           `json:"meta"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Succeeded 는 meta.result 가 SUCCESS 인지 반환한다.
func (e Envelope) Succeeded() bool {
	return e.Meta != nil && e.Meta.Result == ResultSuccess
}

// ErrorMessage 는 meta.message, message 순으로 비어 있지 않은 값을 반환한다.
func (e Envelope) ErrorMessage() string {
	if e.Meta != nil && e.Meta.Message != "" {
		return e.Meta.Message
	}
	return e.Message
}
