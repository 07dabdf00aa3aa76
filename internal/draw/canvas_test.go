package draw

import (
	"bytes"
	"strings"
	"testing"
)

func cellsWritten(out string) int {
	return strings.Count(out, "\033[")
}

func TestCanvasRenderOnlyChanges(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	var buf bytes.Buffer

	c.Render(&buf)
	if got := cellsWritten(buf.String()); got != 50 {
		t.Fatalf("first render wrote %d cells, want 50", got)
	}

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("unchanged render wrote %q", buf.String())
	}

	c.FillRect(0, 0, 1, 1)
	buf.Reset()
	c.Render(&buf)
	out := buf.String()
	for _, want := range []string{"\033[1;1H█", "\033[1;2H█"} {
		if !strings.Contains(out, want) {
			t.Errorf("render %q missing %q", out, want)
		}
	}
	if got := cellsWritten(out); got != 2 {
		t.Errorf("render wrote %d cells, want 2", got)
	}

	c.Clear()
	buf.Reset()
	c.Render(&buf)
	if !strings.Contains(buf.String(), "\033[1;1H ") {
		t.Errorf("cleared cell not blanked: %q", buf.String())
	}
}

func TestCanvasForceRedrawAndDirtyText(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	var buf bytes.Buffer
	c.Render(&buf)

	c.MarkTextDirty(3, 2, 4)
	buf.Reset()
	c.Render(&buf)
	if got := cellsWritten(buf.String()); got != 4 {
		t.Errorf("dirty render wrote %d cells, want 4", got)
	}

	c.ForceRedraw()
	buf.Reset()
	c.Render(&buf)
	if got := cellsWritten(buf.String()); got != 50 {
		t.Errorf("forced render wrote %d cells, want 50", got)
	}
}

func TestCanvasOffset(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetOffset(5, 7)
	c.FillRect(0, 0, 0, 0)
	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.Contains(buf.String(), "\033[8;6H▀") {
		t.Errorf("render %q missing offset top-left cell", buf.String())
	}
}

func TestFillCircle(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.FillCircle(10, 10, 3)

	tests := []struct {
		x, y int
		want bool
	}{
		{10, 10, true},
		{12, 10, true},
		{10, 13, true},
		{14, 10, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		if got := c.pixels[tt.y*c.termWidth+tt.x]; got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFillRectClipsToCanvas(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.FillRect(-10, -10, 100, 100)
	for i, p := range c.pixels {
		if !p {
			t.Fatalf("pixel %d not set", i)
		}
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 3)
	cw.WriteAt(1, 1, "hi")
	cw.WriteCentered(10, 2, "abcd")
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if want := "\033[4;3Hhi\033[5;10Habcd"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
