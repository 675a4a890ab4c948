package web

import (
	"embed"
	"html/template"

	"github.com/shopspring/decimal"

	"storefront/internal/pkg/format"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Funcs are the helpers available to every page.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money": format.Money,
		"date":  format.Date,
		"clock": format.Time,
		"str": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"hours": func(d *decimal.Decimal) string {
			if d == nil {
				return ""
			}
			return d.String()
		},
		"intval": func(n *int) int {
			if n == nil {
				return 0
			}
			return *n
		},
	}
}

func ParseTemplates() (*template.Template, error) {
	return template.New("storefront").Funcs(Funcs()).ParseFS(templatesFS, "templates/*.html")
}
