package tracklist

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat 时间字符串的字段数量不是 2 或 3
	ErrFormat = errors.New("unknown time format")

	// ErrNoTimestamp 行首和行尾都找不到合法的时间戳
	ErrNoTimestamp = errors.New("no valid timestamp found")
)

// FormatError 描述一个无法解码的时间字符串
type FormatError struct {
	Token string
	Err   error // 数字解析失败时的底层错误，字段数量错误时为 nil
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", ErrFormat, e.Token, e.Err)
	}
	return fmt.Sprintf("%v: %s", ErrFormat, e.Token)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// NoTimestampFoundError 记录缺少时间戳的原始行
type NoTimestampFoundError struct {
	Line string
}

func (e *NoTimestampFoundError) Error() string {
	return fmt.Sprintf("can't find a valid timestamp (HH:MM:SS or MM:SS) at the beginning or at the end of line: %s", e.Line)
}

func (e *NoTimestampFoundError) Unwrap() error { return ErrNoTimestamp }
