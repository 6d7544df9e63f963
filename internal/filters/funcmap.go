package filters

import (
	"html/template"
	"sort"
	"time"

	"github.com/spf13/cast"
)

// FuncMap returns the template functions. Helpers that expect a particular
// record shape are registered through adapters taking any value, so a template
// handing them something else renders the default instead of failing.
func (l *Library) FuncMap() template.FuncMap {
	return template.FuncMap{
		"abs":               Abs,
		"actualTimeMinutes": l.actualTimeMinutes,
		"customerStatus":    l.customerStatus,
		"dictGet":           DictGet,
		"div":               Div,
		"elapsedMinutes":    l.elapsedMinutes,
		"extractServices":   extractServices,
		"formatBytes":       FormatBytes,
		"formatMinutes":     FormatMinutes,
		"formatNumber":      FormatNumber,
		"formatQty":         FormatQty,
		"hasType":           hasType,
		"marginPercentage":  MarginPercentage,
		"mul":               Mul,
		"orderLastUpdate":   l.orderLastUpdate,
		"replace":           Replace,
		"safeFilesize":      safeFileSize,
		"timesinceDays":     l.DaysSince,
		"toCSSClass":        CSSClass,
	}
}

// Names lists the registered template function names in sorted order
func (l *Library) Names() []string {
	funcs := l.FuncMap()
	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l *Library) customerStatus(value any) string {
	c, ok := value.(Customer)
	if !ok {
		return ""
	}
	return l.CustomerStatus(c)
}

func (l *Library) orderLastUpdate(value any) time.Time {
	order, ok := value.(OrderTimestamps)
	if !ok {
		return time.Time{}
	}
	return l.OrderLastUpdate(order)
}

func (l *Library) elapsedMinutes(value any) int {
	order, ok := value.(StartTimes)
	if !ok {
		return 0
	}
	return l.ElapsedMinutes(order)
}

func (l *Library) actualTimeMinutes(value any) int {
	order, ok := value.(OrderTimestamps)
	if !ok {
		return 0
	}
	return l.ActualTimeMinutes(order)
}

func extractServices(value any) []string {
	description, err := cast.ToStringE(value)
	if err != nil {
		return []string{}
	}
	return ExtractServices(description)
}

func safeFileSize(value any) int64 {
	file, ok := asStoredFile(value)
	if !ok {
		return 0
	}
	return SafeFileSize(file)
}

func hasType(value any, label string) bool {
	set, ok := asTypeSet(value)
	if !ok {
		return false
	}
	return HasType(set, label)
}
