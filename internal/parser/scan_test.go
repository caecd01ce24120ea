package parser

import (
	"strings"
	"testing"

	"implgen/internal/diag"
	"implgen/internal/source"
)

func scanText(t *testing.T, text string) (*File, *diag.Bag) {
	t.Helper()
	fset := source.NewFileSet()
	id := fset.AddVirtual("test.rs", []byte(text))
	bag := diag.NewBag(32)
	f := ScanSource(fset.Get(id), DefaultConfig(), diag.BagReporter{Bag: bag})
	return f, bag
}

func TestScanSingleDecl(t *testing.T) {
	text := "use std::ops::Add;\n\n" +
		"#[expand(T -> Meter, Foot)]\n" +
		"impl Add for T {\n" +
		"    fn add(self, rhs: T) -> T {\n" +
		"        T(self.0 + rhs.0)\n" +
		"    }\n" +
		"}\n\n" +
		"fn main() {}\n"

	f, bag := scanText(t, text)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	decls := f.Decls()
	if len(decls) != 1 {
		t.Fatalf("decls: %d", len(decls))
	}
	d := decls[0]
	if d.Bad {
		t.Fatal("decl marked bad")
	}
	if len(d.Stack) != 1 {
		t.Fatalf("stack: %d", len(d.Stack))
	}
	if got := d.Stack[0].Placeholder.String(); got != "T" {
		t.Errorf("placeholder: %q", got)
	}
	if len(d.Stack[0].Args) != 2 {
		t.Errorf("args: %v", d.Stack[0].Args)
	}

	// span покрывает от '#' до закрывающей скобки impl
	start := strings.Index(text, "#[expand")
	end := strings.Index(text, "}\n\nfn main") + 1
	if int(d.Span.Start) != start || int(d.Span.End) != end {
		t.Errorf("span: %d-%d, want %d-%d", d.Span.Start, d.Span.End, start, end)
	}

	// фрагмент начинается с impl, без атрибута и без пустой строки
	rendered := d.Frag.Render()
	if !strings.HasPrefix(rendered, "impl Add for T {") {
		t.Errorf("fragment starts with %q", rendered[:min(30, len(rendered))])
	}

	if len(d.Frag.Members) != 1 || d.Frag.Members[0].Name != "add" {
		t.Errorf("members: %+v", d.Frag.Members)
	}
}

func TestScanStackedAttrs(t *testing.T) {
	text := "#[expand(T -> A, B)]\n" +
		"#[expand(U in [X, Y, Z])]\n" +
		"impl Convert<U> for T {}\n"

	f, bag := scanText(t, text)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	d := f.Decls()[0]
	if len(d.Stack) != 2 {
		t.Fatalf("stack: %d", len(d.Stack))
	}
	if d.Stack.NumCopies() != 6 {
		t.Errorf("copies: %d", d.Stack.NumCopies())
	}
	if d.Stack[0].Placeholder.String() != "T" || d.Stack[1].Placeholder.String() != "U" {
		t.Errorf("placeholders: %v, %v", d.Stack[0].Placeholder, d.Stack[1].Placeholder)
	}
}

func TestScanForeignAttrKept(t *testing.T) {
	text := "#[expand(T -> A)]\n" +
		"#[allow(dead_code)]\n" +
		"impl Marker for T {}\n"

	f, bag := scanText(t, text)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	rendered := f.Decls()[0].Frag.Render()
	if !strings.HasPrefix(rendered, "#[allow(dead_code)]") {
		t.Errorf("foreign attribute lost: %q", rendered)
	}
}

func TestScanRawRegions(t *testing.T) {
	text := "const N: u32 = 1;\n\n" +
		"#[expand(T -> A)]\n" +
		"impl Marker for T {}\n\n" +
		"const M: u32 = 2;\n"

	f, bag := scanText(t, text)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(f.Regions) != 3 {
		t.Fatalf("regions: %d", len(f.Regions))
	}
	raw := func(sp source.Span) string { return string(f.Source.Content[sp.Start:sp.End]) }
	if got := raw(f.Regions[0].Raw); got != "const N: u32 = 1;\n\n" {
		t.Errorf("leading raw: %q", got)
	}
	if got := raw(f.Regions[2].Raw); got != "\n\nconst M: u32 = 2;\n" {
		t.Errorf("trailing raw: %q", got)
	}
}

func TestScanOverride(t *testing.T) {
	text := "#[expand(DB -> Sqlite, MySql)]\n" +
		"impl Backend for DB {\n" +
		"    #[expand_for(Sqlite -> update_sqlite)]\n" +
		"    fn update(&self) {}\n" +
		"    fn update_sqlite(&self) {}\n" +
		"}\n"

	f, bag := scanText(t, text)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	d := f.Decls()[0]
	ms := d.Frag.Members
	if len(ms) != 2 {
		t.Fatalf("members: %+v", ms)
	}
	if len(ms[0].Overrides) != 1 {
		t.Fatal("default member lost its override marker")
	}
	if got := ms[0].Overrides[0].Type.String(); got != "Sqlite" {
		t.Errorf("override type: %q", got)
	}
	if ms[0].Overrides[0].Alt != "update_sqlite" {
		t.Errorf("override alt: %q", ms[0].Overrides[0].Alt)
	}
	if !ms[1].IsAlternate {
		t.Error("alternate member not marked")
	}
	// сам атрибут вырезан из тела
	if strings.Contains(d.Frag.Render(), "expand_for") {
		t.Error("override attribute survived stripping")
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode diag.Code
	}{
		{
			"not an impl block",
			"#[expand(T -> A)]\nfn free(x: T) {}\n",
			diag.SynExpectImplBlock,
		},
		{
			"attribute without arguments",
			"#[expand]\nimpl Marker for T {}\n",
			diag.SynMalformedAttr,
		},
		{
			"empty argument list",
			"#[expand()]\nimpl Marker for T {}\n",
			diag.BindEmptyArgs,
		},
		{
			"unresolved override target",
			"#[expand(DB -> Sqlite)]\nimpl B for DB {\n" +
				"    #[expand_for(Sqlite -> nope)]\n    fn update(&self) {}\n}\n",
			diag.BindUnresolvedOverride,
		},
		{
			"malformed override",
			"#[expand(DB -> Sqlite)]\nimpl B for DB {\n" +
				"    #[expand_for(Sqlite)]\n    fn update(&self) {}\n}\n",
			diag.BindMalformedOverride,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, bag := scanText(t, tt.input)
			if !bag.HasErrors() {
				t.Fatal("expected diagnostics")
			}
			found := false
			for _, d := range bag.Items() {
				if d.Code == tt.wantCode {
					found = true
				}
			}
			if !found {
				t.Errorf("missing code %s in %v", tt.wantCode, bag.Items())
			}
			for _, d := range f.Decls() {
				if !d.Bad {
					t.Error("failing decl not marked bad")
				}
			}
		})
	}
}

func TestBuildTreeRecovery(t *testing.T) {
	_, bag := scanText(t, "impl Foo {\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynUnclosedDelim {
			found = true
		}
	}
	if !found {
		t.Errorf("missing unclosed-delimiter diagnostic: %v", bag.Items())
	}

	_, bag = scanText(t, "impl Foo {} }\n")
	found = false
	for _, d := range bag.Items() {
		if d.Code == diag.SynStrayCloseDelim {
			found = true
		}
	}
	if !found {
		t.Errorf("missing stray-delimiter diagnostic: %v", bag.Items())
	}
}
