// Package tracklist 解析人工编写的曲目列表（专辑内页、视频简介等），
// 每行包含一个时间戳、标题以及可选的艺术家。
//
// 时间戳可以是曲目的绝对开始时间，也可以是每首曲目的时长：
//
//	0:00 Intro - A
//	3:15 Second Song - B
//
// 以 # 开头的行和空行会被忽略。
package tracklist

import (
	"bufio"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Track 代表曲目列表中的一首曲目
type Track struct {
	Title          string
	Artist         string // 没有分隔符时为空
	StartTimestamp int    // 距离开头的秒数
}

// Start 返回开始时间
func (t Track) Start() time.Duration {
	return secondsToDuration(t.StartTimestamp)
}

const maxLineSize = 1024 * 1024

// ParseTracks 解析整个曲目列表
// duration 为 true 时，每行的时间戳表示该曲目的时长，开始时间为之前所有曲目时长之和。
func ParseTracks(content string, duration bool) ([]Track, error) {
	tracks := make([]Track, 0)
	currentTime := 0

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanAnyLines)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		timestamp, title, artist, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		seconds, err := ParseTimeString(timestamp)
		if err != nil {
			return nil, err
		}

		if !duration {
			tracks = append(tracks, Track{Title: title, Artist: artist, StartTimestamp: seconds})
			continue
		}
		tracks = append(tracks, Track{Title: title, Artist: artist, StartTimestamp: currentTime})
		currentTime += seconds
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tracklist: %w", err)
	}

	return tracks, nil
}

// OpenEnd 表示曲目一直持续到文件结尾
const OpenEnd = -1

// Ends 返回每首曲目的结束时间（秒），即下一首曲目的开始时间，最后一首为 OpenEnd
func Ends(tracks []Track) []int {
	ends := make([]int, len(tracks))
	for i := range tracks {
		if i+1 < len(tracks) {
			ends[i] = tracks[i+1].StartTimestamp
		} else {
			ends[i] = OpenEnd
		}
	}
	return ends
}

// isLineBreak 报告 r 是否为换行符（\r 单独处理）
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// scanAnyLines 与 bufio.ScanLines 类似，但接受所有 Unicode 换行符，\r\n 视为一个换行
func scanAnyLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i := 0; i < len(data); {
		if !atEOF && !utf8.FullRune(data[i:]) {
			return 0, nil, nil
		}
		r, size := utf8.DecodeRune(data[i:])
		if r == '\r' {
			switch {
			case i+1 < len(data) && data[i+1] == '\n':
				return i + 2, data[:i], nil
			case i+1 < len(data) || atEOF:
				return i + 1, data[:i], nil
			default:
				// 需要更多数据来判断是否为 \r\n
				return 0, nil, nil
			}
		}
		if isLineBreak(r) {
			return i + size, data[:i], nil
		}
		i += size
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
