package converter

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestNopConverter(t *testing.T) {
	c := NewNopConverter()
	for _, s := range []string{"", "Intro", "夜曲", "劉德華"} {
		if got := c.TradToSim(s); got != s {
			t.Errorf("TradToSim(%q) = %q", s, got)
		}
	}
}

func TestOpenCCConverter_Uninitialized(t *testing.T) {
	var buf bytes.Buffer
	c := &openCCConverter{logger: log.New(&buf, "", 0)}

	if got := c.TradToSim("劉德華"); got != "劉德華" {
		t.Errorf("expected original text, got %q", got)
	}
	if !strings.Contains(buf.String(), "WARN") {
		t.Errorf("expected warning, got %q", buf.String())
	}
	if got := c.TradToSim(""); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}
