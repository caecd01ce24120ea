package binding

// Тесты трёх поверхностных грамматик биндинга и их ошибок.

import (
	"strings"
	"testing"
)

func TestCanonicalForm(t *testing.T) {
	b, err := ParseText("T -> Meter, Foot, Mile")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := b.Placeholder.String(); got != "T" {
		t.Errorf("placeholder: %q", got)
	}
	if len(b.Args) != 3 {
		t.Fatalf("args: %d", len(b.Args))
	}
	want := []string{"Meter", "Foot", "Mile"}
	for i, w := range want {
		if got := b.Args[i].String(); got != w {
			t.Errorf("arg %d: got %q, want %q", i, got, w)
		}
	}
}

func TestBracketedForm(t *testing.T) {
	b, err := ParseText("T in [u32, i32, u64]")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b.Placeholder.String() != "T" || len(b.Args) != 3 {
		t.Fatalf("binding: %v -> %v", b.Placeholder, b.Args)
	}
}

func TestLegacyForm(t *testing.T) {
	b, err := ParseText("Meter, Foot, Mile")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// placeholder — первый аргумент; список включает его самого
	if got := b.Placeholder.String(); got != "Meter" {
		t.Errorf("placeholder: %q", got)
	}
	if len(b.Args) != 3 || b.Args[0].String() != "Meter" {
		t.Errorf("args: %v", b.Args)
	}
}

func TestLegacySingle(t *testing.T) {
	b, err := ParseText("Meter")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(b.Args) != 1 {
		t.Errorf("args: %v", b.Args)
	}
}

func TestWrapperArguments(t *testing.T) {
	// обёртки допустимы в аргументах, но не в placeholder
	b, err := ParseText("T -> &U, &mut V, Box<W>")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"&U", "&mut V", "Box<W>"}
	for i, w := range want {
		if got := b.Args[i].String(); got != w {
			t.Errorf("arg %d: got %q, want %q", i, got, w)
		}
	}
}

func TestScopedPlaceholder(t *testing.T) {
	b, err := ParseText("inner::U -> a::A, b::B")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := b.Placeholder.String(); got != "inner::U" {
		t.Errorf("placeholder: %q", got)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
	}{
		{"empty", "", "BIND-EMPTY-ARGUMENT-LIST"},
		{"canonical empty list", "T ->", "BIND-EMPTY-ARGUMENT-LIST"},
		{"bracketed empty list", "T in []", "BIND-EMPTY-ARGUMENT-LIST"},
		{"reference placeholder", "&T -> U", "BIND-INVALID-PLACEHOLDER"},
		{"reference legacy placeholder", "&T, U", "BIND-INVALID-PLACEHOLDER"},
		{"pointer placeholder", "*const T -> U", "BIND-INVALID-PLACEHOLDER"},
		{"garbage after arrow", "T -> ->", "BIND-MALFORMED"},
		{"missing bracket", "T in u32, i32", "BIND-MALFORMED"},
		{"unclosed bracket", "T in [u32", "BIND-MALFORMED"},
		{"trailing garbage", "T in [u32] extra", "BIND-MALFORMED"},
		{"not a grammar", "T = U", "BIND-MALFORMED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseText(tt.input)
			if err == nil {
				t.Fatalf("expected error for %q", tt.input)
			}
			if !strings.Contains(err.Error(), tt.wantCode) {
				t.Errorf("error %q does not carry code %s", err.Error(), tt.wantCode)
			}
		})
	}
}

func TestTrailingCommaTolerated(t *testing.T) {
	b, err := ParseText("T -> A, B,")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(b.Args) != 2 {
		t.Errorf("args: %v", b.Args)
	}
}

func TestStackNumCopies(t *testing.T) {
	b1, _ := ParseText("T -> A, B")
	b2, _ := ParseText("U -> X, Y, Z")
	s := Stack{b1, b2}
	if got := s.NumCopies(); got != 6 {
		t.Errorf("copies: %d", got)
	}
}
