package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"linux/amd64", "2 KiB"},
		{"linux/arm64/v8", "512 B"},
	}
	out := Format(rows, []Alignment{AlignLeft, AlignRight})
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if out[0] != "linux/amd64     2 KiB" {
		t.Fatalf("unexpected row %q", out[0])
	}
	if out[1] != "linux/arm64/v8  512 B" {
		t.Fatalf("unexpected row %q", out[1])
	}
}

func TestFormatWidthShrinksFirstColumn(t *testing.T) {
	rows := [][]string{
		{"a very long instruction label", "0 B"},
		{"short", "2 KiB"},
	}
	out := FormatWidth(rows, []Alignment{AlignLeft, AlignRight}, 20)
	for _, row := range out {
		if got := len([]rune(row)); got > 20 {
			t.Fatalf("row wider than 20 runes: %q (%d)", row, got)
		}
	}
}

func TestFormatEmpty(t *testing.T) {
	if out := Format(nil, nil); out != nil {
		t.Fatalf("expected nil for empty input, got %#v", out)
	}
}
