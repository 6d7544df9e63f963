package filters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// FormatBytes converts a byte count to a human-readable size, e.g. "1.5 KB".
// Non-numeric input renders as "".
func FormatBytes(value any) string {
	bytes, err := cast.ToInt64E(value)
	if err != nil {
		return ""
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatNumber adds comma separators to an integer, keeping any sign in front.
func FormatNumber(value any) string {
	n, err := cast.ToInt64E(value)
	if err != nil {
		return ""
	}

	str := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(str, "-") {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}

	var groups []string
	for i := len(str); i > 0; i -= 3 {
		start := max(i-3, 0)
		groups = append([]string{str[start:i]}, groups...)
	}
	return sign + strings.Join(groups, ",")
}
