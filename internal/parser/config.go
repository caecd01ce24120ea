package parser

// Config names the attributes the scanner recognizes. Kept injectable so the
// engine itself stays attribute-name agnostic; the CLI wires the defaults.
type Config struct {
	// Attr is the declaration-level binding attribute name.
	Attr string
	// OverrideAttr is the per-member override attribute name.
	OverrideAttr string
}

// DefaultConfig returns the attribute names the tool ships with.
func DefaultConfig() Config {
	return Config{
		Attr:         "expand",
		OverrideAttr: "expand_for",
	}
}
