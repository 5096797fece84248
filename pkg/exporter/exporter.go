package exporter

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/yleoer/tracklist/pkg/album"
	"github.com/yleoer/tracklist/pkg/tracklist"
	"github.com/yleoer/tracklist/pkg/util"
)

const (
	ChaptersFileName = "chapters.txt"
	SummaryFileName  = "tracklist.txt"
)

// Exporter 负责把解析好的专辑写成 CUE、FFmpeg 章节和曲目表文件
type Exporter struct {
	logger *log.Logger
}

// NewExporter 创建一个新的 Exporter 实例
func NewExporter(logger *log.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// AlbumDir 返回专辑在目标目录中的输出路径: <艺术家>/<专辑名> (<年份>)
func AlbumDir(a *album.Album, targetDir string) string {
	name := util.SanitizeFileName(a.Title)
	if a.Year != "" {
		name = fmt.Sprintf("%s (%s)", name, a.Year)
	}
	return filepath.Join(targetDir, util.SanitizeFileName(a.Artist), name)
}

// ExportAlbum 导出整张专辑，返回写入的文件列表
func (e *Exporter) ExportAlbum(a *album.Album, targetDir string) ([]string, error) {
	if len(a.Tracks) == 0 {
		return nil, fmt.Errorf("album %s has no tracks", a.Path)
	}
	albumOutputDir := AlbumDir(a, targetDir)
	if err := os.MkdirAll(albumOutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create album output directory %s: %w", albumOutputDir, err)
	}

	for _, track := range a.Tracks {
		e.logger.Printf("  Track %02d [%s]: %s - %s", track.Number, util.FormatDurationToFFmpegTime(track.StartTime), track.Title, track.Artist)
	}

	outputs := []struct {
		name    string
		content string
	}{
		{util.SanitizeFileName(a.Title) + ".cue", RenderCue(a)},
		{ChaptersFileName, RenderChapters(a)},
		{SummaryFileName, RenderSummary(a)},
	}
	written := make([]string, 0, len(outputs))
	for _, out := range outputs {
		path := filepath.Join(albumOutputDir, out.name)
		if err := os.WriteFile(path, []byte(out.content), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		e.logger.Printf("  -> Successfully created %s", path)
		written = append(written, path)
	}
	return written, nil
}

// RenderCue 生成 CUE 表
func RenderCue(a *album.Album) string {
	var b strings.Builder
	if a.Year != "" {
		fmt.Fprintf(&b, "REM DATE %s\n", a.Year)
	}
	fmt.Fprintf(&b, "PERFORMER %s\n", cueQuote(a.Artist))
	fmt.Fprintf(&b, "TITLE %s\n", cueQuote(a.Title))

	file := a.Title
	if a.AudioFile != "" {
		file = filepath.Base(a.AudioFile)
	}
	fmt.Fprintf(&b, "FILE %s %s\n", cueQuote(file), cueFileType(file))
	for _, track := range a.Tracks {
		fmt.Fprintf(&b, "  TRACK %02d AUDIO\n", track.Number)
		fmt.Fprintf(&b, "    TITLE %s\n", cueQuote(track.Title))
		fmt.Fprintf(&b, "    PERFORMER %s\n", cueQuote(track.Artist))
		fmt.Fprintf(&b, "    INDEX 01 %s\n", util.FormatCueTime(track.StartTime))
	}
	return b.String()
}

func cueQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "'") + `"`
}

func cueFileType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".mp3":
		return "MP3"
	case ".aiff", ".aif":
		return "AIFF"
	default:
		return "WAVE"
	}
}

// RenderChapters 生成 FFmpeg 的 FFMETADATA1 章节文件，最后一首没有结束时间时省略 END
func RenderChapters(a *album.Album) string {
	var b strings.Builder
	b.WriteString(";FFMETADATA1\n")
	writeMetadata(&b, "title", a.Title)
	writeMetadata(&b, "artist", a.Artist)
	writeMetadata(&b, "date", a.Year)
	for _, track := range a.Tracks {
		b.WriteString("\n[CHAPTER]\nTIMEBASE=1/1000\n")
		fmt.Fprintf(&b, "START=%d\n", track.StartTime.Milliseconds())
		if track.HasEnd {
			fmt.Fprintf(&b, "END=%d\n", track.EndTime.Milliseconds())
		}
		writeMetadata(&b, "title", track.Title)
		writeMetadata(&b, "artist", track.Artist)
	}
	return b.String()
}

var metadataEscaper = strings.NewReplacer(`\`, `\\`, "=", `\=`, ";", `\;`, "#", `\#`, "\n", "\\\n")

func writeMetadata(b *strings.Builder, key, value string) {
	if value != "" {
		fmt.Fprintf(b, "%s=%s\n", key, metadataEscaper.Replace(value))
	}
}

// RenderSummary 生成便于阅读的曲目表
func RenderSummary(a *album.Album) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(fmt.Sprintf("%s - %s", a.Artist, a.Title))
	tw.AppendHeader(table.Row{"#", "Start", "End", "Title", "Artist"})
	for _, track := range a.Tracks {
		end := ""
		if track.HasEnd {
			end = formatOffset(track.EndTime)
		}
		tw.AppendRow(table.Row{track.Number, formatOffset(track.StartTime), end, track.Title, track.Artist})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	return tw.Render() + "\n"
}

func formatOffset(d time.Duration) string {
	return tracklist.FormatTimestamp(int(d / time.Second))
}
