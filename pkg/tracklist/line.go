package tracklist

import (
	"regexp"
	"strings"
)

// [HHH:]MM:SS，小时位数不限；没有小时时分钟允许一位数字（如 3:15）
const timestampPattern = `((?:\d+:[0-5][0-9]|[0-5]?[0-9]):[0-5][0-9])`

// 单词边界：Unicode 字母、数字和下划线之外的字符（RE2 的 \b 只认 ASCII）
const nonWordChar = `[^\pL\pN_]`

var (
	timestampAtStart = regexp.MustCompile(`^` + timestampPattern + `(?:` + nonWordChar + `|$)`)
	timestampAtEnd   = regexp.MustCompile(`(?:^|` + nonWordChar + `)` + timestampPattern + `$`)
)

// 时间戳与标题之间的分隔字符
const separatorChars = " -|"

// ParseLine 从一行中提取时间戳、标题和艺术家
// 时间戳必须位于行首或行尾，两者同时存在时以行首为准。
func ParseLine(line string) (timestamp, title, artist string, err error) {
	line = strings.TrimSpace(line)

	var rest string
	// loc[2]:loc[3] 是时间戳本身，不包含边界字符
	if loc := timestampAtStart.FindStringSubmatchIndex(line); loc != nil {
		timestamp = line[loc[2]:loc[3]]
		rest = line[loc[3]:]
	} else if loc := timestampAtEnd.FindStringSubmatchIndex(line); loc != nil {
		timestamp = line[loc[2]:loc[3]]
		rest = line[:loc[2]]
	} else {
		return "", "", "", &NoTimestampFoundError{Line: line}
	}

	title, artist = ParseTitle(strings.Trim(rest, separatorChars))
	return timestamp, title, artist, nil
}

// ParseTitle 按第一个连字符拆分标题和艺术家
// TODO: 支持通过配置指定行格式，而不是固定使用连字符
func ParseTitle(text string) (title, artist string) {
	text = strings.TrimSpace(text)
	title, artist, found := strings.Cut(text, "-")
	if !found {
		return text, ""
	}
	return strings.TrimSpace(title), strings.TrimSpace(artist)
}
