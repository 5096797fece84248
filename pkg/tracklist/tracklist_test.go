package tracklist

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

const sampleTracklist = `0:00 Intro - A
3:15 Second Song - B`

func TestParseTracks_Absolute(t *testing.T) {
	tracks, err := ParseTracks(sampleTracklist, false)
	if err != nil {
		t.Fatalf("ParseTracks failed: %v", err)
	}

	expected := []Track{
		{Title: "Intro", Artist: "A", StartTimestamp: 0},
		{Title: "Second Song", Artist: "B", StartTimestamp: 195},
	}
	if !reflect.DeepEqual(tracks, expected) {
		t.Errorf("got %+v, expected %+v", tracks, expected)
	}
}

func TestParseTracks_Duration(t *testing.T) {
	tracks, err := ParseTracks(sampleTracklist, true)
	if err != nil {
		t.Fatalf("ParseTracks failed: %v", err)
	}

	// 每行的时长只影响下一首曲目的开始时间
	expected := []Track{
		{Title: "Intro", Artist: "A", StartTimestamp: 0},
		{Title: "Second Song", Artist: "B", StartTimestamp: 0},
	}
	if !reflect.DeepEqual(tracks, expected) {
		t.Errorf("got %+v, expected %+v", tracks, expected)
	}
}

func TestParseTracks_DurationAccumulates(t *testing.T) {
	content := `
# durations
4:00 One
3:30 Two - X

1:00:00 Three
0:45 Four
`
	tracks, err := ParseTracks(content, true)
	if err != nil {
		t.Fatalf("ParseTracks failed: %v", err)
	}

	starts := make([]int, len(tracks))
	for i, tr := range tracks {
		starts[i] = tr.StartTimestamp
	}
	expected := []int{0, 240, 450, 4050}
	if !reflect.DeepEqual(starts, expected) {
		t.Errorf("starts = %v, expected %v", starts, expected)
	}
	for i := 1; i < len(starts); i++ {
		if starts[i] < starts[i-1] {
			t.Errorf("start offsets decrease at %d: %v", i, starts)
		}
	}
}

func TestParseTracks_SkipsCommentsAndBlankLines(t *testing.T) {
	content := "# header\r\n\r\n  # indented comment\r\n0:00 One\r\n\r\n2:00 Two\r3:00 Three\n"
	tracks, err := ParseTracks(content, false)
	if err != nil {
		t.Fatalf("ParseTracks failed: %v", err)
	}

	expected := []Track{
		{Title: "One", StartTimestamp: 0},
		{Title: "Two", StartTimestamp: 120},
		{Title: "Three", StartTimestamp: 180},
	}
	if !reflect.DeepEqual(tracks, expected) {
		t.Errorf("got %+v, expected %+v", tracks, expected)
	}
}

func TestParseTracks_Empty(t *testing.T) {
	for _, content := range []string{"", "\n\n", "# only comments\n   \n#another"} {
		tracks, err := ParseTracks(content, false)
		if err != nil {
			t.Fatalf("ParseTracks(%q) failed: %v", content, err)
		}
		if tracks == nil || len(tracks) != 0 {
			t.Errorf("ParseTracks(%q) = %#v, expected empty slice", content, tracks)
		}
	}
}

func TestParseTracks_NoTimestampIsFatal(t *testing.T) {
	content := "0:00 One\nbroken line\n2:00 Two"
	tracks, err := ParseTracks(content, false)
	if tracks != nil {
		t.Errorf("expected no partial result, got %+v", tracks)
	}
	if !errors.Is(err, ErrNoTimestamp) {
		t.Fatalf("expected ErrNoTimestamp, got %v", err)
	}
	if !strings.Contains(err.Error(), "broken line") {
		t.Errorf("error should name the offending line: %v", err)
	}
}

func TestParseTracks_Idempotent(t *testing.T) {
	for _, duration := range []bool{false, true} {
		first, err := ParseTracks(sampleTracklist, duration)
		if err != nil {
			t.Fatal(err)
		}
		second, err := ParseTracks(sampleTracklist, duration)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("duration=%v: %+v != %+v", duration, first, second)
		}
	}
}

func TestTrackStart(t *testing.T) {
	tr := Track{StartTimestamp: 195}
	if tr.Start() != 3*time.Minute+15*time.Second {
		t.Errorf("Start() = %v", tr.Start())
	}
}

func TestEnds(t *testing.T) {
	tracks := []Track{{StartTimestamp: 0}, {StartTimestamp: 60}, {StartTimestamp: 150}}
	expected := []int{60, 150, OpenEnd}
	if got := Ends(tracks); !reflect.DeepEqual(got, expected) {
		t.Errorf("Ends() = %v, expected %v", got, expected)
	}
	if got := Ends(nil); len(got) != 0 {
		t.Errorf("Ends(nil) = %v", got)
	}

	// 时长模式下下一首可能从 0 开始，不能与“直到结尾”混淆
	lagged, err := ParseTracks(sampleTracklist, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := Ends(lagged); !reflect.DeepEqual(got, []int{0, OpenEnd}) {
		t.Errorf("Ends(duration tracks) = %v, expected [0 %d]", got, OpenEnd)
	}
}

func TestParseTracks_UnicodeLineBreaks(t *testing.T) {
	content := "0:00 One\u20281:00 Two\u00852:00 Three\v3:00 Four\x1c4:00 Five\f5:00 Six\u20296:00 Seven"
	tracks, err := ParseTracks(content, false)
	if err != nil {
		t.Fatalf("ParseTracks failed: %v", err)
	}

	titles := make([]string, len(tracks))
	for i, tr := range tracks {
		titles[i] = tr.Title
	}
	expected := []string{"One", "Two", "Three", "Four", "Five", "Six", "Seven"}
	if !reflect.DeepEqual(titles, expected) {
		t.Errorf("titles = %v, expected %v", titles, expected)
	}
}
