package subst

import (
	"strings"
	"testing"

	"implgen/internal/diag"
	"implgen/internal/parser"
	"implgen/internal/source"
)

// substOne scans src, substitutes argument argIdx of the first binding
// layer into the first declaration, and renders the result.
func substOne(t *testing.T, src string, argIdx int) string {
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
	d := decls[0]
	b := d.Stack[0]
	m := NewMatcher(b.Placeholder, b.Args[argIdx])
	out := Substitute(d.Frag, m)
	TemplateSubstitute(out, m)
	DropUnclaimedAlternates(out)
	return out.Render()
}

func TestBasicSubstitution(t *testing.T) {
	src := "#[expand(T -> Meter, Foot)]\n" +
		"impl Add for T {\n" +
		"    type Output = T;\n" +
		"    fn add(self, rhs: T) -> T {\n" +
		"        let result: T = Self(self.0 + rhs.0);\n" +
		"        result\n" +
		"    }\n" +
		"}\n"

	got := substOne(t, src, 0)
	want := "impl Add for Meter {\n" +
		"    type Output = Meter;\n" +
		"    fn add(self, rhs: Meter) -> Meter {\n" +
		"        let result: Meter = Self(self.0 + rhs.0);\n" +
		"        result\n" +
		"    }\n" +
		"}"
	if got != want {
		t.Errorf("substitution mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestIdentitySubstitution(t *testing.T) {
	src := "#[expand(T -> T, Foot)]\n" +
		"impl Neg for T {\n" +
		"    fn neg(self) -> T {\n" +
		"        let x: Vec<T> = Vec::new();\n" +
		"        T::default()\n" +
		"    }\n" +
		"}\n"

	got := substOne(t, src, 0)
	if !strings.Contains(got, "impl Neg for T {") ||
		!strings.Contains(got, "let x: Vec<T> = Vec::new();") ||
		!strings.Contains(got, "T::default()") {
		t.Errorf("identity substitution changed the fragment:\n%s", got)
	}
}

func TestExpressionPaths(t *testing.T) {
	src := "#[expand(T -> Meter)]\n" +
		"impl Default for T {\n" +
		"    fn make() -> T {\n" +
		"        let zero = T::default();\n" +
		"        let one = T::Item::new();\n" +
		"        zero\n" +
		"    }\n" +
		"}\n"

	got := substOne(t, src, 0)
	if !strings.Contains(got, "let zero = Meter::default();") {
		t.Errorf("path expression not rewritten:\n%s", got)
	}
	if !strings.Contains(got, "let one = Meter::Item::new();") {
		t.Errorf("long path expression not rewritten:\n%s", got)
	}
}

func TestBareValueIdentUntouched(t *testing.T) {
	// значение, совпадающее по написанию с placeholder, не является типом
	src := "#[expand(T -> Meter)]\n" +
		"impl Marker for T {\n" +
		"    fn get(&self) -> u32 {\n" +
		"        let T = 1;\n" +
		"        T + 1\n" +
		"    }\n" +
		"}\n"

	got := substOne(t, src, 0)
	if !strings.Contains(got, "let T = 1;") || !strings.Contains(got, "T + 1") {
		t.Errorf("bare value ident was rewritten:\n%s", got)
	}
	if !strings.Contains(got, "impl Marker for Meter {") {
		t.Errorf("impl target not rewritten:\n%s", got)
	}
}

func TestScopedSpellingNotMatched(t *testing.T) {
	src := "#[expand(T -> Meter)]\n" +
		"impl Marker for T {\n" +
		"    fn get(&self) -> super::T {\n" +
		"        super::T::default()\n" +
		"    }\n" +
		"}\n"

	got := substOne(t, src, 0)
	if !strings.Contains(got, "-> super::T {") {
		t.Errorf("super::T in type position was rewritten:\n%s", got)
	}
	if !strings.Contains(got, "super::T::default()") {
		t.Errorf("super::T in expression was rewritten:\n%s", got)
	}
}

func TestScopedPlaceholder(t *testing.T) {
	src := "#[expand(inner::U -> a::A)]\n" +
		"impl Marker for inner::U {\n" +
		"    fn get(&self, x: inner::U, y: U, z: other::U) {}\n" +
		"}\n"

	got := substOne(t, src, 0)
	if !strings.Contains(got, "impl Marker for a::A {") {
		t.Errorf("scoped occurrence not rewritten:\n%s", got)
	}
	if !strings.Contains(got, "x: a::A,") {
		t.Errorf("scoped param not rewritten:\n%s", got)
	}
	if !strings.Contains(got, "y: U,") {
		t.Errorf("bare suffix was rewritten:\n%s", got)
	}
	if !strings.Contains(got, "z: other::U)") {
		t.Errorf("differently scoped spelling was rewritten:\n%s", got)
	}
}

func TestTrailingGenericsCarry(t *testing.T) {
	src := "#[expand(T -> Wrapper)]\n" +
		"impl Marker for T {\n" +
		"    fn get(&self, x: T<u8>, v: Vec<T>) -> T<Vec<u8>> {\n" +
		"        x.convert::<Vec<T>>()\n" +
		"    }\n" +
		"}\n"

	got := substOne(t, src, 0)
	if !strings.Contains(got, "x: Wrapper<u8>,") {
		t.Errorf("trailing generics not carried:\n%s", got)
	}
	if !strings.Contains(got, "v: Vec<Wrapper>)") {
		t.Errorf("nested generic arg not rewritten:\n%s", got)
	}
	if !strings.Contains(got, "-> Wrapper<Vec<u8>> {") {
		t.Errorf("return generics not carried:\n%s", got)
	}
	if !strings.Contains(got, "x.convert::<Vec<Wrapper>>()") {
		t.Errorf("turbofish args not rewritten:\n%s", got)
	}
}

func TestCastAndQualifiedPath(t *testing.T) {
	src := "#[expand(T -> Meter)]\n" +
		"impl Marker for T {\n" +
		"    fn get(&self, x: u64) {\n" +
		"        let a = x as T;\n" +
		"        let b = <T as Default>::default();\n" +
		"    }\n" +
		"}\n"

	got := substOne(t, src, 0)
	if !strings.Contains(got, "let a = x as Meter;") {
		t.Errorf("cast type not rewritten:\n%s", got)
	}
	if !strings.Contains(got, "let b = <Meter as Default>::default();") {
		t.Errorf("qualified path not rewritten:\n%s", got)
	}
}

func TestWrapperArgumentInExpression(t *testing.T) {
	// подстановка не-пути в expression path уходит в квалифицированную форму
	src := "#[expand(T -> Vec<u8>)]\n" +
		"impl Marker for T {\n" +
		"    fn get(&self) -> T {\n" +
		"        T::new()\n" +
		"    }\n" +
		"}\n"

	got := substOne(t, src, 0)
	if !strings.Contains(got, "-> Vec<u8> {") {
		t.Errorf("type position not rewritten:\n%s", got)
	}
	if !strings.Contains(got, "<Vec<u8>>::new()") {
		t.Errorf("expression path not qualified:\n%s", got)
	}
}

func TestTemplateSubstitution(t *testing.T) {
	src := "#[expand(T -> Meter)]\n" +
		"impl Marker for T {\n" +
		"    /// Returns the name of a ${T} value.\n" +
		"    fn name(&self) -> String {\n" +
		"        let tag = \"${T}\";\n" +
		"        format!(\"a ${T} of size {}\", 1)\n" +
		"    }\n" +
		"}\n"

	got := substOne(t, src, 0)
	if !strings.Contains(got, "/// Returns the name of a Meter value.") {
		t.Errorf("doc comment template untouched:\n%s", got)
	}
	if !strings.Contains(got, "let tag = \"Meter\";") {
		t.Errorf("string template untouched:\n%s", got)
	}
	if !strings.Contains(got, "format!(\"a Meter of size {}\", 1)") {
		t.Errorf("macro string template untouched:\n%s", got)
	}
}

func TestMacroBodyTreeUntouched(t *testing.T) {
	src := "#[expand(T -> Meter)]\n" +
		"impl Marker for T {\n" +
		"    fn log(&self) {\n" +
		"        debug_assert!(T::SIZE > 0);\n" +
		"        println!(\"{}\", stringify!(T));\n" +
		"    }\n" +
		"}\n"

	got := substOne(t, src, 0)
	if !strings.Contains(got, "debug_assert!(T::SIZE > 0);") {
		t.Errorf("macro body tokens were rewritten:\n%s", got)
	}
	if !strings.Contains(got, "stringify!(T)") {
		t.Errorf("nested macro body tokens were rewritten:\n%s", got)
	}
}

func TestMacroTokenSplice(t *testing.T) {
	src := "#[expand(T -> Meter)]\n" +
		"impl Marker for T {\n" +
		"    fn build(&self) {\n" +
		"        make_impl!(${T}, 1);\n" +
		"    }\n" +
		"}\n"

	got := substOne(t, src, 0)
	if !strings.Contains(got, "make_impl!(Meter, 1);") {
		t.Errorf("macro token splice failed:\n%s", got)
	}
}

func TestMacroTokenSpliceTrailingSep(t *testing.T) {
	src := "#[expand(T -> Meter)]\n" +
		"impl Marker for T {\n" +
		"    fn build(&self) {\n" +
		"        make_impl!(${T::}, 1);\n" +
		"    }\n" +
		"}\n"

	// висячий `::` — это не имя placeholder'а, сплайс не срабатывает
	got := substOne(t, src, 0)
	if !strings.Contains(got, "make_impl!(${T::}, 1);") {
		t.Errorf("malformed splice was rewritten:\n%s", got)
	}
}

func TestOverrideClaimed(t *testing.T) {
	src := "#[expand(DB -> Sqlite, MySql)]\n" +
		"impl Backend for DB {\n" +
		"    #[expand_for(Sqlite -> update_sqlite)]\n" +
		"    fn update(&self) { generic(); }\n" +
		"    fn update_sqlite(&self) { special(); }\n" +
		"}\n"

	// слой Sqlite: альтернатива переименована, default выброшен
	got := substOne(t, src, 0)
	if strings.Contains(got, "generic();") {
		t.Errorf("default member survived a matching override:\n%s", got)
	}
	if !strings.Contains(got, "fn update(&self) { special(); }") {
		t.Errorf("alternate not renamed into place:\n%s", got)
	}
	if strings.Contains(got, "update_sqlite") {
		t.Errorf("alternate name survived:\n%s", got)
	}

	// слой MySql: default остаётся, непримененная альтернатива исчезает
	got = substOne(t, src, 1)
	if !strings.Contains(got, "fn update(&self) { generic(); }") {
		t.Errorf("default member missing in non-matching copy:\n%s", got)
	}
	if strings.Contains(got, "special();") {
		t.Errorf("unclaimed alternate survived:\n%s", got)
	}
}

func TestOverrideWithScopedArgument(t *testing.T) {
	src := "#[expand(DB -> my::Sqlite, MySql)]\n" +
		"impl Backend for DB {\n" +
		"    #[expand_for(my::Sqlite -> update_s)]\n" +
		"    fn update(&self) { generic(); }\n" +
		"    fn update_s(&self) { special(); }\n" +
		"}\n"

	// аргумент из нескольких токенов удлиняет заголовок; тело и его
	// члены должны остаться на месте
	got := substOne(t, src, 0)
	if !strings.Contains(got, "impl Backend for my::Sqlite {") {
		t.Errorf("header lost tokens:\n%s", got)
	}
	if strings.Contains(got, "generic();") {
		t.Errorf("default member survived a matching override:\n%s", got)
	}
	if !strings.Contains(got, "fn update(&self) { special(); }") {
		t.Errorf("alternate not renamed into place:\n%s", got)
	}

	got = substOne(t, src, 1)
	if !strings.Contains(got, "impl Backend for MySql {") {
		t.Errorf("header lost tokens:\n%s", got)
	}
	if !strings.Contains(got, "fn update(&self) { generic(); }") {
		t.Errorf("default member missing in non-matching copy:\n%s", got)
	}
	if strings.Contains(got, "special();") {
		t.Errorf("unclaimed alternate survived:\n%s", got)
	}
}

func TestWhereClause(t *testing.T) {
	src := "#[expand(T -> Meter)]\n" +
		"impl<U> Convert<U> for T where U: From<T> {\n" +
		"    fn conv(&self) -> U {\n" +
		"        U::from(*self)\n" +
		"    }\n" +
		"}\n"

	got := substOne(t, src, 0)
	if !strings.Contains(got, "impl<U> Convert<U> for Meter where U: From<Meter> {") {
		t.Errorf("where clause not rewritten:\n%s", got)
	}
}
