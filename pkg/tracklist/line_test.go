package tracklist

import (
	"errors"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		timestamp string
		title     string
		artist    string
	}{
		{"start anchored", "0:30 Intro - Band", "0:30", "Intro", "Band"},
		{"end anchored", "Intro - Band 0:30", "0:30", "Intro", "Band"},
		{"no artist", "No Artist Here 1:05", "1:05", "No Artist Here", ""},
		{"hours", "1:02:03 Long One - Someone", "1:02:03", "Long One", "Someone"},
		{"wide hours", "Marathon - X 123:45:06", "123:45:06", "Marathon", "X"},
		{"two digit minutes", "12:34 Song", "12:34", "Song", ""},
		{"separator after timestamp", "00:10 - Song - Artist", "00:10", "Song", "Artist"},
		{"pipe separator", "Song | 4:20", "4:20", "Song", ""},
		{"first hyphen only", "0:00 A - B - C", "0:00", "A", "B - C"},
		{"surrounding whitespace", "   3:15   Second Song  -  B   ", "3:15", "Second Song", "B"},
		{"both anchors prefer start", "1:00 Song 2:00", "1:00", "Song 2:00", ""},
		{"timestamp only", "4:44", "4:44", "", ""},
		{"unicode title", "0:42 夜曲 - 周杰伦", "0:42", "夜曲", "周杰伦"},
		{"unicode title end anchored", "夜曲 - 周杰伦 3:15", "3:15", "夜曲", "周杰伦"},
		{"full width separator", "3:15　夜曲", "3:15", "夜曲", ""},
		{"hour form backs off to boundary", "1:02:03夜曲", "1:02", ":03夜曲", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timestamp, title, artist, err := ParseLine(tt.line)
			if err != nil {
				t.Fatalf("ParseLine(%q) failed: %v", tt.line, err)
			}
			if timestamp != tt.timestamp {
				t.Errorf("timestamp = %q, expected %q", timestamp, tt.timestamp)
			}
			if title != tt.title {
				t.Errorf("title = %q, expected %q", title, tt.title)
			}
			if artist != tt.artist {
				t.Errorf("artist = %q, expected %q", artist, tt.artist)
			}
		})
	}
}

func TestParseLine_NoTimestamp(t *testing.T) {
	tests := []string{
		"Just some text",
		"Song 1:05 in the middle",
		"Song 1:75",    // 秒数超出范围
		"Song 1:5",     // 秒数只有一位
		"0:30abc Song", // 没有单词边界
		"Track 75:00",
		"夜曲3:15",
		"3:15夜曲",
		"Café3:15",
		"3:15é",
		"Song_3:15",
		"1:2:03 Song", // 有小时时分钟必须是两位
	}

	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			_, _, _, err := ParseLine(line)
			if err == nil {
				t.Fatalf("ParseLine(%q) expected error", line)
			}
			if !errors.Is(err, ErrNoTimestamp) {
				t.Errorf("expected ErrNoTimestamp, got %v", err)
			}
			var noTimestamp *NoTimestampFoundError
			if !errors.As(err, &noTimestamp) {
				t.Fatalf("expected *NoTimestampFoundError, got %T", err)
			}
			if noTimestamp.Line != line {
				t.Errorf("expected line %q, got %q", line, noTimestamp.Line)
			}
		})
	}
}

func TestParseTitle(t *testing.T) {
	tests := []struct {
		input  string
		title  string
		artist string
	}{
		{"Intro", "Intro", ""},
		{"Intro - Band", "Intro", "Band"},
		{"Intro-Band", "Intro", "Band"},
		{"  Spaced  ", "Spaced", ""},
		{"A - B - C", "A", "B - C"},
		{"-Band", "", "Band"},
		{"", "", ""},
	}

	for _, tt := range tests {
		title, artist := ParseTitle(tt.input)
		if title != tt.title || artist != tt.artist {
			t.Errorf("ParseTitle(%q) = (%q, %q), expected (%q, %q)", tt.input, title, artist, tt.title, tt.artist)
		}
	}
}
