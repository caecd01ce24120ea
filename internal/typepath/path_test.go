package typepath

import (
	"testing"
)

func TestParseRenderRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare", "T"},
		{"scoped", "a::b::C"},
		{"generic", "Vec<u8>"},
		{"nested generic", "a::b::C<D, E>"},
		{"deeply nested", "Result<Vec<String>, io::Error>"},
		{"reference", "&U"},
		{"mut reference", "&mut U"},
		{"lifetime reference", "&'a mut U"},
		{"raw pointer", "*const u8"},
		{"box style", "Box<dyn Error>"},
		{"lifetime arg", "Cow<'static, str>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ty, err := ParseText(tt.input)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := ty.String(); got != tt.input {
				t.Errorf("round-trip: got %q, want %q", got, tt.input)
			}
		})
	}
}

func TestParseTurbofish(t *testing.T) {
	ty, err := ParseText("Vec::<u8>")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// турбофиш нормализуется в обычную generic-форму
	if got := ty.String(); got != "Vec<u8>" {
		t.Errorf("got %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"dangling scope", "a::"},
		{"unclosed generics", "Vec<u8"},
		{"bare star", "*T"},
		{"trailing tokens", "T, U"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseText(tt.input); err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"same bare", "T", "T", true},
		{"different name", "T", "U", false},
		{"scoped vs bare", "super::T", "T", false},
		{"same scoped", "a::b::C", "a::b::C", true},
		{"generics differ", "Vec<u8>", "Vec<u16>", false},
		{"generics equal", "Vec<u8>", "Vec<u8>", true},
		{"arity differs", "Map<K, V>", "Map<K>", false},
		{"prefix differs", "&U", "U", false},
		{"prefix equal", "&mut U", "&mut U", true},
		{"plain vs generic", "T", "T<X>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := MustParse(tt.a)
			b := MustParse(tt.b)
			if got := a.Equal(b); got != tt.want {
				t.Errorf("%q == %q: got %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLeadName(t *testing.T) {
	if got := MustParse("a::b::C").Path.LeadName(); got != "a" {
		t.Errorf("lead name: %q", got)
	}
	if got := MustParse("T").Path.LeadName(); got != "T" {
		t.Errorf("lead name: %q", got)
	}
}

func TestIsBare(t *testing.T) {
	if !MustParse("T").IsBare() {
		t.Errorf("T must be bare")
	}
	if MustParse("&T").IsBare() {
		t.Errorf("&T must not be bare")
	}
}
