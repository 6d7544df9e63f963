package reports

import (
	_ "embed"
	"html/template"
)

//go:embed templates/order-report.html
var orderReportTemplate string

// ParseTemplate parses the built-in order report with the given template functions
func ParseTemplate(funcs template.FuncMap) (*template.Template, error) {
	return template.New("order-report").Funcs(funcs).Parse(orderReportTemplate)
}
