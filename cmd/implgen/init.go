package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new implgen project",
	Long: `Initialize a new implgen project by creating a project manifest (implgen.toml)
and an annotated example source file (example.rs). If [path|name] is omitted,
initializes the current directory. If a non-existing name is provided, a
directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit initializes an implgen project at the specified target path (or the
// current working directory when no argument or "." is provided) by creating
// an implgen.toml manifest and an example.rs source file.
//
// It resolves the target path, creates the directory if it does not exist,
// derives a project name from the directory basename (falling back to
// "implgen-project" for invalid names), and refuses to initialize if
// implgen.toml already exists. On success it writes the manifest and example
// file and prints the created files; it returns an error for any filesystem
// or validation failures.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Determine project name from directory basename
	name := filepath.Base(target)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "implgen-project"
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, "implgen.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// Create example.rs if not exists
	examplePath := filepath.Join(target, "example.rs")
	createdExample := false
	if _, err := os.Stat(examplePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(examplePath, []byte(defaultExampleRS()), 0o600); err != nil {
			return fmt.Errorf("failed to write example.rs: %w", err)
		}
		createdExample = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized implgen project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - implgen.toml\n")
	if createdExample {
		fmt.Fprintf(os.Stdout, "  - example.rs\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - example.rs (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest for an implgen project
// using the provided project name.
func buildDefaultManifest(name string) string {
	// Minimal TOML manifest used as a project marker.
	return fmt.Sprintf(`# implgen project manifest
# name: %s

[attributes]
expand = "expand"
expand_for = "expand_for"

[output]
# dir = "expanded"

[cache]
enabled = true
# dir = ""
`, name)
}

// defaultExampleRS returns the annotated source file written on init. It
// demonstrates the placeholder binding and the ${...} template form; running
// `implgen expand example.rs` prints one impl block per bound type.
func defaultExampleRS() string {
	return `// implgen example (placeholder)
// Run ` + "`implgen expand example.rs`" + ` to see the generated copies.

#[expand(T -> Meter, Foot, Mile)]
/// Length units measured in ${T}.
impl T {
    /// Returns the raw value stored in this ${T}.
    pub fn value(&self) -> f64 {
        self.0
    }
}
`
}
