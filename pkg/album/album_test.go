package album

import (
	"testing"
	"time"

	"github.com/yleoer/tracklist/pkg/tracklist"
)

func TestNewTracks(t *testing.T) {
	parsed := []tracklist.Track{
		{Title: "Intro", Artist: "A", StartTimestamp: 0},
		{Title: "Second Song", StartTimestamp: 195},
	}
	a := &Album{Artist: "Band", Title: "Live", Year: "2001"}

	tracks := NewTracks(parsed, a)
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}

	first := tracks[0]
	if first.Number != 1 || first.Title != "Intro" || first.Artist != "A" {
		t.Errorf("unexpected first track: %+v", first)
	}
	if !first.HasEnd || first.EndTime != 195*time.Second {
		t.Errorf("expected first EndTime 3m15s, got %v", first.EndTime)
	}
	if first.Album != "Live" || first.AlbumArtist != "Band" || first.Year != "2001" {
		t.Errorf("album fields not copied: %+v", first)
	}

	second := tracks[1]
	if second.Number != 2 || second.StartTime != 195*time.Second {
		t.Errorf("unexpected second track: %+v", second)
	}
	if second.Artist != "Band" {
		t.Errorf("expected album artist fallback, got %q", second.Artist)
	}
	if second.HasEnd {
		t.Errorf("last track should be open ended, got %v", second.EndTime)
	}
}

func TestNewTracks_ZeroEndIsNotOpenEnd(t *testing.T) {
	// 时长模式的滞后会让第二首也从 0 开始
	parsed, err := tracklist.ParseTracks("0:00 Intro - A\n3:15 Second Song - B\n", true)
	if err != nil {
		t.Fatal(err)
	}
	tracks := NewTracks(parsed, &Album{Artist: "Band"})

	if !tracks[0].HasEnd || tracks[0].EndTime != 0 {
		t.Errorf("first track should end at 0, got %+v", tracks[0])
	}
	if tracks[1].HasEnd {
		t.Errorf("last track should be open ended, got %+v", tracks[1])
	}
}

func TestNewTracks_Empty(t *testing.T) {
	if tracks := NewTracks(nil, &Album{}); len(tracks) != 0 {
		t.Errorf("expected no tracks, got %d", len(tracks))
	}
}
