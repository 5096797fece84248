package album

import (
	"time"

	"github.com/yleoer/tracklist/pkg/tracklist"
)

// Album 代表一张包含曲目列表的专辑
type Album struct {
	Path          string // 专辑根目录
	Artist        string
	Title         string
	Year          string
	AudioFile     string // 整轨音频文件路径，可能为空
	TracklistPath string // 曲目列表文件路径
	Duration      bool   // 曲目列表中的时间是否为时长
	Tracks        []*Track
}

// Track 代表一个音轨
type Track struct {
	Number      int
	Title       string
	Artist      string // 曲目列表中没有艺术家时与专辑艺术家相同
	StartTime   time.Duration
	EndTime     time.Duration
	HasEnd      bool   // 为 false 时曲目持续到文件结尾，EndTime 无意义
	Album       string // 反向引用
	AlbumArtist string // 专辑艺术家
	Year        string
}

// NewTracks 根据解析出的曲目列表构建专辑音轨，结束时间取下一首的开始时间，最后一首没有结束时间
func NewTracks(parsed []tracklist.Track, album *Album) []*Track {
	ends := tracklist.Ends(parsed)
	tracks := make([]*Track, 0, len(parsed))
	for i, p := range parsed {
		track := &Track{
			Number:      i + 1,
			Title:       p.Title,
			Artist:      p.Artist,
			StartTime:   p.Start(),
			Album:       album.Title,
			AlbumArtist: album.Artist,
			Year:        album.Year,
		}
		if track.Artist == "" {
			track.Artist = album.Artist
		}
		if ends[i] != tracklist.OpenEnd {
			track.EndTime = time.Duration(ends[i]) * time.Second
			track.HasEnd = true
		}
		tracks = append(tracks, track)
	}
	return tracks
}
