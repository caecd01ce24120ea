package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"implgen/internal/diag"
	"implgen/internal/source"
)

func makeBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fset := source.NewFileSet()
	id := fset.AddVirtual("lib.rs", []byte("impl Neg for T {\n    fn neg() {}\n}\n"))

	bag := diag.NewBag(8)
	// span на "Neg" в первой строке
	bag.Add(diag.NewError(diag.SynExpectImplBlock,
		source.Span{File: id, Start: 5, End: 8},
		"something about Neg"))
	return bag, fset
}

func TestPretty(t *testing.T) {
	bag, fset := makeBag(t)
	var sb strings.Builder
	Pretty(&sb, bag, fset, PrettyOpts{})
	got := sb.String()

	if !strings.Contains(got, "lib.rs:1:6: ERROR[SYN-EXPECT-IMPL-BLOCK]: something about Neg") {
		t.Errorf("header wrong:\n%s", got)
	}
	if !strings.Contains(got, "  impl Neg for T {") {
		t.Errorf("context line missing:\n%s", got)
	}
	// каретка под "Neg": 5 пробелов, ^ и два ~
	if !strings.Contains(got, "\n       ^~~\n") {
		t.Errorf("caret misaligned:\n%q", got)
	}
}

func TestPrettyNotes(t *testing.T) {
	fset := source.NewFileSet()
	id := fset.AddVirtual("lib.rs", []byte("let x = 1;\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.BindMalformed, source.Span{File: id, Start: 4, End: 5}, "bad").
		WithNote(source.Span{File: id, Start: 8, End: 9}, "because of this"))

	var sb strings.Builder
	Pretty(&sb, bag, fset, PrettyOpts{ShowNotes: true})
	if !strings.Contains(sb.String(), "note]: because of this") {
		t.Errorf("note missing:\n%s", sb.String())
	}

	sb.Reset()
	Pretty(&sb, bag, fset, PrettyOpts{})
	if strings.Contains(sb.String(), "because of this") {
		t.Errorf("notes shown despite ShowNotes=false:\n%s", sb.String())
	}
}

func TestJSON(t *testing.T) {
	bag, fset := makeBag(t)
	var sb strings.Builder
	if err := JSON(&sb, bag, fset, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count: %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SYN-EXPECT-IMPL-BLOCK" {
		t.Errorf("diag: %+v", d)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 6 {
		t.Errorf("location: %+v", d.Location)
	}
}

func TestJSONMax(t *testing.T) {
	fset := source.NewFileSet()
	id := fset.AddVirtual("lib.rs", []byte("x\n"))
	bag := diag.NewBag(8)
	for range 3 {
		bag.Add(diag.NewError(diag.BindMalformed, source.Span{File: id}, "e"))
	}

	var sb strings.Builder
	if err := JSON(&sb, bag, fset, JSONOpts{Max: 2}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 3 || len(out.Diagnostics) != 2 {
		t.Errorf("truncation: count=%d len=%d", out.Count, len(out.Diagnostics))
	}
}
