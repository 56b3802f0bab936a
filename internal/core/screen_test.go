package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(8, 3)
	if s.Width() != 8 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 8x3", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		if got := s.Row(y); got != strings.Repeat(" ", 8) {
			t.Errorf("Row(%d) = %q, want blanks", y, got)
		}
	}
}

func TestScreenSetWithColor(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetWithColor(1, 2, '#', ColorGold)

	if got := s.GetCell(1, 2); got.Rune != '#' || got.Color != ColorGold {
		t.Errorf("GetCell(1,2) = %+v, want gold #", got)
	}

	// Out-of-bounds writes are dropped and reads are blank.
	s.SetWithColor(-1, 0, 'X', ColorRed)
	s.SetWithColor(4, 0, 'X', ColorRed)
	s.Set(0, 9, 'X')
	if got := s.GetCell(-1, 0); got.Rune != ' ' || got.Color != ColorDefault {
		t.Errorf("GetCell(-1,0) = %+v, want blank", got)
	}
	if strings.Contains(s.String(), "X") {
		t.Error("out-of-bounds write leaked into the buffer")
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name string
		x    int
		text string
		want string
	}{
		{"inside", 1, "ab", " ab  "},
		{"clipped right", 3, "abcd", "   ab"},
		{"clipped left", -2, "abcd", "cd   "},
		{"multibyte", 0, "←→", "←→   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(5, 1)
			s.DrawText(tt.x, 0, tt.text)
			if got := s.Row(0); got != tt.want {
				t.Errorf("Row = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(9, 1)
	s.DrawTextCentered(0, "abc", ColorCyan)
	if got := s.Row(0); got != "   abc   " {
		t.Errorf("Row = %q", got)
	}
	if s.GetCell(3, 0).Color != ColorCyan {
		t.Error("centered text lost its color")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorGray)

	want := []string{
		"┌──┐",
		"│  │",
		"└──┘",
	}
	for y, line := range want {
		if got := s.Row(y); got != line {
			t.Errorf("Row(%d) = %q, want %q", y, got, line)
		}
	}
}

func TestScreenFillRectAndClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.FillRect(NewRect(1, 1, 2, 2), '█', ColorBlue)
	if s.Get(1, 1) != '█' || s.Get(2, 2) != '█' || s.Get(3, 3) != ' ' {
		t.Errorf("unexpected fill:\n%s", s)
	}
	s.Clear()
	if strings.TrimSpace(strings.ReplaceAll(s.String(), "\n", "")) != "" {
		t.Error("Clear left content behind")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.Set(0, 0, 'A')
	s.Resize(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Error("resize should blank the buffer")
	}
	if lines := strings.Split(s.String(), "\n"); len(lines) != 3 {
		t.Errorf("String has %d lines, want 3", len(lines))
	}
}
