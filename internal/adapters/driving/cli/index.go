package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the local reference index",
	Long: `Commands for the local vector backend. Reference phrases are embedded
with the configured embedding provider and stored in SQLite.`,
}

var indexImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import reference phrases, one per line",
	Long: `Import reference phrases from a file, one per line. Blank lines and lines
starting with # are skipped. Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndexImport,
}

var indexStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the number of reference entries",
	Args:  cobra.NoArgs,
	RunE:  runIndexStats,
}

func init() {
	indexCmd.AddCommand(indexImportCmd)
	indexCmd.AddCommand(indexStatsCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexImport(cmd *cobra.Command, args []string) error {
	reference, err := requireReference()
	if err != nil {
		return err
	}

	var in io.Reader
	if args[0] == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	lines, err := readPhrases(in)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		cmd.Println("No phrases to import.")
		return nil
	}

	n, err := reference.Import(cmd.Context(), lines)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d reference entries.\n", n)
	return nil
}

func runIndexStats(cmd *cobra.Command, _ []string) error {
	reference, err := requireReference()
	if err != nil {
		return err
	}

	n, err := reference.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("counting entries: %w", err)
	}

	cmd.Printf("Reference entries: %d\n", n)
	return nil
}

// readPhrases returns the non-blank, non-comment lines of r.
func readPhrases(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading phrases: %w", err)
	}
	return lines, nil
}
