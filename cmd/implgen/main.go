package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"implgen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "implgen",
	Short: "Source-to-source expansion of type-parameterized impl blocks",
	Long: `implgen expands impl blocks written once against a placeholder type
into one copy per concrete type argument, keeping the generated code
readable and individually debuggable.`,
}

func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel workers for directory expansion (0 = all cores)")
	rootCmd.PersistentFlags().String("attr", "", "override the binding attribute name")
	rootCmd.PersistentFlags().String("override-attr", "", "override the per-member attribute name")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
