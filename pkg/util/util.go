package util

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadTextFileContent 智能读取文本文件内容，自动处理UTF-8和GBK编码
// 返回的内容保证是UTF-8编码的字符串。
func ReadTextFileContent(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content, err := DecodeText(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s as GBK: %w", filepath.Base(path), err)
	}
	return content, nil
}

// DecodeText 去掉 UTF-8 BOM，非 UTF-8 内容按 GBK 解码
func DecodeText(data []byte) (string, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	gbkReader := transform.NewReader(bytes.NewReader(data), simplifiedchinese.GBK.NewDecoder())
	decodedData, err := io.ReadAll(gbkReader)
	if err != nil {
		return "", err
	}

	return string(decodedData), nil
}

// SanitizeFileName 清理文件名，移除或替换不适用于文件路径的字符
func SanitizeFileName(name string) string {
	// 替换所有斜杠为下划线
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")

	// 移除其他不安全的文件名字符 (Windows/Linux通用不推荐的字符)
	invalidChars := []string{":", "*", "?", "\"", "<", ">", "|"}
	for _, char := range invalidChars {
		name = strings.ReplaceAll(name, char, "")
	}
	// 将多个空格替换为一个空格
	return strings.Join(strings.Fields(name), " ")
}

// FormatDurationToFFmpegTime 将 time.Duration 格式化为 FFmpeg 的 HH:MM:SS.ms 格式
func FormatDurationToFFmpegTime(d time.Duration) string {
	d = d.Round(time.Millisecond)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// CUE 中每秒 75 帧
const cueFramesPerSecond = 75

// FormatCueTime 将 time.Duration 格式化为 CUE 的 MM:SS:FF 格式，分钟可以超过 99
func FormatCueTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	frames := d * cueFramesPerSecond / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", m, s, frames)
}

// IsDirectory 辅助函数，检查路径是否为目录
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsAudioFile 判断是否为整轨音频文件
func IsAudioFile(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".wav", ".flac", ".mp3", ".m4a", ".aac", ".ogg", ".opus", ".ape", ".wv", ".webm", ".mka":
		return true
	default:
		return false
	}
}

// IsRelevantAlbumFile 辅助函数，判断文件是否为我们关心的专辑文件（音频或曲目列表）
func IsRelevantAlbumFile(filePath string) bool {
	if IsAudioFile(filePath) {
		return true
	}
	return strings.ToLower(filepath.Ext(filePath)) == ".txt"
}
