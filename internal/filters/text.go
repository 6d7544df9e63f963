package filters

import (
	"fmt"
	"html/template"
	"reflect"
	"strings"
)

// cssClasses maps order statuses and priorities to the class suffixes used in
// the stylesheets.
var cssClasses = map[string]string{
	"created":     "pending",
	"assigned":    "in-progress",
	"in_progress": "in-progress",
	"inprogress":  "in-progress",
	"overdue":     "overdue",
	"completed":   "completed",
	"cancelled":   "cancelled",
	"pending":     "pending",
	"low":         "low",
	"medium":      "medium",
	"high":        "high",
	"urgent":      "urgent",
}

// serviceLabels introduce comma separated service lists in order descriptions.
var serviceLabels = []string{
	"selected services:",
	"services:",
	"tire services:",
	"add-ons:",
}

func truthy(value any) bool {
	truth, ok := template.IsTrue(value)
	return ok && truth
}

// Replace substitutes substrings. An arg of the form "old:new" (split on the
// first colon) replaces every old with new; any other arg is deleted from the
// value. Empty or zero values are returned as given.
func Replace(value any, arg string) any {
	if !truthy(value) {
		return value
	}

	s := fmt.Sprint(value)
	if old, repl, found := strings.Cut(arg, ":"); found {
		return strings.ReplaceAll(s, old, repl)
	}
	return strings.ReplaceAll(s, arg, "")
}

// CSSClass turns a status or priority label into a class suffix.
func CSSClass(value any) string {
	if !truthy(value) {
		return ""
	}

	s := strings.ToLower(strings.TrimSpace(fmt.Sprint(value)))
	if class, ok := cssClasses[s]; ok {
		return class
	}
	return strings.ReplaceAll(s, "_", "-")
}

// ExtractServices collects the service names listed after a known label in
// a free text description, e.g. "Services: Oil Change, Tire Rotation".
// Names keep their source order and duplicates are kept.
func ExtractServices(description string) []string {
	services := []string{}
	if description == "" {
		return services
	}

	for _, line := range strings.Split(description, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		for _, label := range serviceLabels {
			if !strings.HasPrefix(lower, label) {
				continue
			}
			_, list, _ := strings.Cut(line, ":")
			for _, item := range strings.Split(list, ",") {
				if name := strings.TrimSpace(item); name != "" {
					services = append(services, name)
				}
			}
			break
		}
	}

	return services
}

// DictGet looks key up in a map or Getter. It returns nil when the container
// is empty, unsupported, lacks the key or the lookup fails.
func DictGet(container, key any) (value any) {
	defer func() {
		if recover() != nil {
			value = nil
		}
	}()

	if !truthy(container) {
		return nil
	}
	v, _ := lookup(container, key)
	return v
}

func isLookup(container any) bool {
	if container == nil {
		return false
	}
	if _, ok := container.(Getter); ok {
		return true
	}
	return reflect.ValueOf(container).Kind() == reflect.Map
}

func lookupOr(container any, key string, fallback any) any {
	if v, ok := lookup(container, key); ok {
		return v
	}
	return fallback
}

func lookup(container, key any) (any, bool) {
	if g, ok := container.(Getter); ok {
		return g.Get(fmt.Sprint(key))
	}

	rv := reflect.ValueOf(container)
	if rv.Kind() != reflect.Map || rv.IsNil() {
		return nil, false
	}

	kv := reflect.ValueOf(key)
	kt := rv.Type().Key()
	if !kv.IsValid() {
		return nil, false
	}
	switch {
	case kv.Type().AssignableTo(kt):
	case kv.Kind() == kt.Kind() && kv.Type().ConvertibleTo(kt):
		kv = kv.Convert(kt)
	default:
		return nil, false
	}

	found := rv.MapIndex(kv)
	if !found.IsValid() {
		return nil, false
	}
	return found.Interface(), true
}
