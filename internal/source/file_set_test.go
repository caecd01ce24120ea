package source

import (
	"testing"
)

func TestAddVirtualAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.rs", []byte("impl Add for T {\n    fn add() {}\n}\n"))

	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag")
	}
	if len(f.LineIdx) != 3 {
		t.Fatalf("expected 3 newlines, got %d", len(f.LineIdx))
	}

	tests := []struct {
		name string
		off  uint32
		line uint32
		col  uint32
	}{
		{"start", 0, 1, 1},
		{"first line middle", 5, 1, 6},
		{"second line start", 17, 2, 1},
		{"second line indent", 21, 2, 5},
		{"last line", 33, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if start.Line != tt.line || start.Col != tt.col {
				t.Errorf("offset %d: got %d:%d, want %d:%d", tt.off, start.Line, start.Col, tt.line, tt.col)
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.rs", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "one" {
		t.Errorf("line 1: %q", got)
	}
	if got := f.GetLine(2); got != "two" {
		t.Errorf("line 2: %q", got)
	}
	if got := f.GetLine(3); got != "three" {
		t.Errorf("line 3 (no trailing newline): %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("line 4 should be empty, got %q", got)
	}
	if got := f.GetLine(0); got != "" {
		t.Errorf("line 0 should be empty, got %q", got)
	}
}

func TestNormalization(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("crlf.rs", []byte("a\nb"))
	if fs.Get(id).Flags&FileNormalizedCRLF != 0 {
		t.Errorf("virtual add must not normalize")
	}

	content, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed {
		t.Fatalf("expected CRLF normalization")
	}
	if string(content) != "a\nb\rc" {
		t.Errorf("lone \\r must survive: %q", content)
	}

	content, hadBOM := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !hadBOM || string(content) != "x" {
		t.Errorf("BOM removal failed: %q", content)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}
	c := a.Cover(b)
	if c.Start != 5 || c.End != 20 {
		t.Errorf("cover: got %v", c)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("cover across files must be a no-op, got %v", got)
	}
}
