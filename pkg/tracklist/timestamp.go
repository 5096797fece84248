package tracklist

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimeString 将 M:S 或 H:M:S 格式的时间字符串转换为秒数
// 分、秒的取值范围由 ParseLine 中的正则保证，这里不做校验。
func ParseTimeString(token string) (int, error) {
	parts := strings.Split(strings.TrimSpace(token), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, &FormatError{Token: token}
	}

	fields := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, &FormatError{Token: token, Err: err}
		}
		fields[i] = n
	}

	if len(fields) == 3 { // h:m:s
		return fields[0]*3600 + fields[1]*60 + fields[2], nil
	}
	return fields[0]*60 + fields[1], nil // m:s
}

// FormatTimestamp 将秒数格式化为 M:SS，超过一小时时为 H:MM:SS
func FormatTimestamp(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
