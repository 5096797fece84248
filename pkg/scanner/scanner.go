package scanner

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/yleoer/tracklist/pkg/album"
	"github.com/yleoer/tracklist/pkg/converter"
	"github.com/yleoer/tracklist/pkg/tracklist"
	"github.com/yleoer/tracklist/pkg/util"
)

// DurationsFileName 使用该文件名的曲目列表总是按时长模式解析
const DurationsFileName = "durations.txt"

// ErrNoTracklist 专辑目录中没有曲目列表文件
var ErrNoTracklist = errors.New("no tracklist file found")

const unknownArtist = "Unknown Artist"

var (
	reFullDirName   = regexp.MustCompile(`^(.+?)\s+-\s+(.+?)(?:\s*\((\d{4})\))?$`)
	reSimpleDirName = regexp.MustCompile(`^(.+?)(?:\s*\((\d{4})\))?$`)
)

// AlbumScanner 负责扫描专辑目录并构建 Album 对象
type AlbumScanner struct {
	tracklistFileName string
	duration          bool
	converter         converter.TextConverter
	logger            *log.Logger
}

// NewAlbumScanner 创建一个新的 AlbumScanner 实例
// duration 是曲目列表文件的默认解析模式，durations.txt 不受其影响。
func NewAlbumScanner(tracklistFileName string, duration bool, tc converter.TextConverter, logger *log.Logger) *AlbumScanner {
	return &AlbumScanner{
		tracklistFileName: tracklistFileName,
		duration:          duration,
		converter:         tc,
		logger:            logger,
	}
}

// ScanAlbumDirectory 扫描专辑目录，解析曲目列表并构建 Album 对象
func (s *AlbumScanner) ScanAlbumDirectory(rootPath string) (*album.Album, error) {
	tracklistPath, duration, err := s.findTracklist(rootPath)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("  Found tracklist: %s (duration mode: %v)", tracklistPath, duration)

	content, err := util.ReadTextFileContent(tracklistPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tracklist %s: %w", tracklistPath, err)
	}
	parsed, err := tracklist.ParseTracks(content, duration)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tracklist %s: %w", tracklistPath, err)
	}

	albumObj := &album.Album{
		Path:          rootPath,
		TracklistPath: tracklistPath,
		Duration:      duration,
	}
	albumObj.Artist, albumObj.Title, albumObj.Year = parseArtistTitleYearFromDir(filepath.Base(rootPath))
	albumObj.Artist = s.converter.TradToSim(albumObj.Artist)
	albumObj.Title = s.converter.TradToSim(albumObj.Title)

	albumObj.AudioFile, err = findAudioFile(rootPath)
	if err != nil {
		return nil, err
	}
	if albumObj.AudioFile == "" {
		s.logger.Printf("  WARN: No audio file found in %s, exports will reference the album title.", rootPath)
	}

	for i := range parsed {
		parsed[i].Title = s.converter.TradToSim(parsed[i].Title)
		parsed[i].Artist = s.converter.TradToSim(parsed[i].Artist)
	}
	albumObj.Tracks = album.NewTracks(parsed, albumObj)
	return albumObj, nil
}

// findTracklist 优先使用配置的曲目列表文件，其次是 durations.txt
func (s *AlbumScanner) findTracklist(rootPath string) (string, bool, error) {
	candidates := []struct {
		name     string
		duration bool
	}{
		{s.tracklistFileName, s.duration},
		{DurationsFileName, true},
	}
	for _, c := range candidates {
		if c.name == "" {
			continue
		}
		path := filepath.Join(rootPath, c.name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, c.duration, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", false, fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}
	return "", false, fmt.Errorf("%w in %s", ErrNoTracklist, rootPath)
}

// findAudioFile 返回目录中按名称排序的第一个音频文件
func findAudioFile(rootPath string) (string, error) {
	entries, err := os.ReadDir(rootPath)
	if err != nil {
		return "", fmt.Errorf("failed to read album directory %s: %w", rootPath, err)
	}
	var audio []string
	for _, entry := range entries {
		if !entry.IsDir() && util.IsAudioFile(entry.Name()) {
			audio = append(audio, entry.Name())
		}
	}
	if len(audio) == 0 {
		return "", nil
	}
	sort.Strings(audio)
	return filepath.Join(rootPath, audio[0]), nil
}

// parseArtistTitleYearFromDir 从目录名解析艺术家、专辑名和年份
// 支持 "艺术家 - 专辑名 (年份)" 和 "专辑名 (年份)"，年份可省略。
func parseArtistTitleYearFromDir(dirName string) (artist, title, year string) {
	dirName = strings.TrimSpace(dirName)
	if matches := reFullDirName.FindStringSubmatch(dirName); matches != nil {
		return strings.TrimSpace(matches[1]), strings.TrimSpace(matches[2]), matches[3]
	}
	if matches := reSimpleDirName.FindStringSubmatch(dirName); matches != nil {
		return unknownArtist, strings.TrimSpace(matches[1]), matches[2]
	}
	return unknownArtist, dirName, ""
}
