// Package templates 는 화면 템플릿을 바이너리에 포함한다.
// 파일 이름이 곧 템플릿 이름이며 공통 header/footer 는 layout.tmpl 에 있다.
package templates

import (
	"embed"
	"html/template"
	"strings"

	"dragons-web/cmd/web/dto"
)

//go:embed *.tmpl
var files embed.FS

var categoryLabels = map[string]string{
	dto.CategoryBackend:  "Backend",
	dto.CategoryFrontend: "Frontend",
	dto.CategoryDevOps:   "DevOps",
	dto.CategoryEtc:      "Etc",
}

// Funcs 는 템플릿에서 쓰는 보조 함수다.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"categoryLabel": func(c string) string {
			if label, ok := categoryLabels[c]; ok {
				return label
			}
			return c
		},
		"statusLabel": func(s dto.SubscriptionStatus) string {
			switch s {
			case dto.SubscriptionActive:
				return "이용 중"
			case dto.SubscriptionPendingCancel:
				return "해지 대기 중"
			default:
				return string(s)
			}
		},
		"lines": func(s string) []string {
			return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
		},
	}
}

// Load 는 모든 *.tmpl 을 파싱한다.
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "*.tmpl")
}
