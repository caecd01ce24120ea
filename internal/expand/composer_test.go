package expand

import (
	"strings"
	"testing"

	"implgen/internal/diag"
	"implgen/internal/parser"
	"implgen/internal/source"
)

func scanDecl(t *testing.T, src string) *parser.Decl {
	t.Helper()
	fset := source.NewFileSet()
	id := fset.AddVirtual("test.rs", []byte(src))
	bag := diag.NewBag(16)
	f := parser.ScanSource(fset.Get(id), parser.DefaultConfig(), diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("scan diagnostics: %v", bag.Items())
	}
	decls := f.Decls()
	if len(decls) != 1 {
		t.Fatalf("decls: %d", len(decls))
	}
	return decls[0]
}

func TestSingleLayer(t *testing.T) {
	d := scanDecl(t, "#[expand(T -> Meter, Foot, Mile)]\n"+
		"impl Neg for T {\n"+
		"    fn neg(self) -> T { Self(-self.0) }\n"+
		"}\n")

	frags := Compose(d.Frag, d.Stack)
	if len(frags) != 3 {
		t.Fatalf("copies: %d", len(frags))
	}
	out := Render(frags)
	for _, ty := range []string{"Meter", "Foot", "Mile"} {
		if !strings.Contains(out, "impl Neg for "+ty+" {") {
			t.Errorf("missing copy for %s:\n%s", ty, out)
		}
	}
	if strings.Contains(out, "for T {") {
		t.Errorf("placeholder survived:\n%s", out)
	}
}

func TestCartesianOrdering(t *testing.T) {
	d := scanDecl(t, "#[expand(T -> A, B)]\n"+
		"#[expand(U -> X, Y)]\n"+
		"impl Convert<U> for T {}\n")

	frags := Compose(d.Frag, d.Stack)
	if len(frags) != 4 {
		t.Fatalf("copies: %d", len(frags))
	}
	// последний объявленный слой варьируется быстрее
	want := []string{
		"impl Convert<X> for A {}",
		"impl Convert<Y> for A {}",
		"impl Convert<X> for B {}",
		"impl Convert<Y> for B {}",
	}
	for i, w := range want {
		if got := frags[i].Render(); got != w {
			t.Errorf("copy %d: got %q, want %q", i, got, w)
		}
	}
}

func TestLegacyEquivalence(t *testing.T) {
	legacy := scanDecl(t, "#[expand(Meter, Foot)]\n"+
		"impl Neg for Meter {\n"+
		"    fn neg(self) -> Meter { Self(-self.0) }\n"+
		"}\n")
	canonical := scanDecl(t, "#[expand(Meter -> Meter, Foot)]\n"+
		"impl Neg for Meter {\n"+
		"    fn neg(self) -> Meter { Self(-self.0) }\n"+
		"}\n")

	got := Render(Compose(legacy.Frag, legacy.Stack))
	want := Render(Compose(canonical.Frag, canonical.Stack))
	if got != want {
		t.Errorf("legacy form diverged:\n--- legacy ---\n%s\n--- canonical ---\n%s", got, want)
	}
	// первая копия legacy-формы — это исходный текст без атрибута
	first := Compose(legacy.Frag, legacy.Stack)[0].Render()
	if !strings.Contains(first, "impl Neg for Meter {") ||
		!strings.Contains(first, "fn neg(self) -> Meter { Self(-self.0) }") {
		t.Errorf("identity copy diverged:\n%s", first)
	}
}

func TestOverrideAcrossProduct(t *testing.T) {
	d := scanDecl(t, "#[expand(DB -> Sqlite, MySql, Postgres)]\n"+
		"impl Backend for DB {\n"+
		"    #[expand_for(Sqlite -> update_lite)]\n"+
		"    #[expand_for(MySql -> update_my)]\n"+
		"    fn update(&self) { generic(); }\n"+
		"    fn update_lite(&self) { lite(); }\n"+
		"    fn update_my(&self) { my(); }\n"+
		"}\n")

	frags := Compose(d.Frag, d.Stack)
	if len(frags) != 3 {
		t.Fatalf("copies: %d", len(frags))
	}

	sqlite := frags[0].Render()
	if !strings.Contains(sqlite, "fn update(&self) { lite(); }") || strings.Contains(sqlite, "generic()") {
		t.Errorf("sqlite copy wrong:\n%s", sqlite)
	}
	mysql := frags[1].Render()
	if !strings.Contains(mysql, "fn update(&self) { my(); }") || strings.Contains(mysql, "generic()") {
		t.Errorf("mysql copy wrong:\n%s", mysql)
	}
	postgres := frags[2].Render()
	if !strings.Contains(postgres, "fn update(&self) { generic(); }") ||
		strings.Contains(postgres, "lite()") || strings.Contains(postgres, "my()") {
		t.Errorf("postgres copy wrong:\n%s", postgres)
	}
}

func TestRenderSeparator(t *testing.T) {
	d := scanDecl(t, "#[expand(T -> A, B)]\nimpl Marker for T {}\n")
	out := Render(Compose(d.Frag, d.Stack))
	if out != "impl Marker for A {}\n\nimpl Marker for B {}" {
		t.Errorf("render: %q", out)
	}
}
