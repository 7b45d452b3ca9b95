package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

// ErrProfanityDetected is returned by check --exit-code when the message is flagged.
var ErrProfanityDetected = errors.New("profanity detected")

// maxStdinBytes bounds how much piped input is read.
const maxStdinBytes = 64 << 10

var (
	checkJSON     bool
	checkExitCode bool
)

var (
	cleanStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
	flaggedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

var checkCmd = &cobra.Command{
	Use:   "check [message]",
	Short: "Check a message for profanity",
	Long: `Check one message. The message is taken from the arguments, joined with
spaces, or read from stdin when no arguments are given.

Examples:
  profanity check "you are so dumb and ugly"
  echo "have a nice day" | profanity check --json`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output the verdict as JSON")
	checkCmd.Flags().BoolVar(&checkExitCode, "exit-code", false, "exit with an error when the message is flagged")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	detection, err := requireDetection()
	if err != nil {
		return err
	}

	message, err := readMessage(cmd, args)
	if err != nil {
		return err
	}

	verdict, err := detection.Detect(cmd.Context(), message)
	if err != nil {
		if domain.IsValidationError(err) {
			return fmt.Errorf("invalid message: %w", err)
		}
		return fmt.Errorf("check failed: %w", err)
	}

	if checkJSON {
		data, err := json.Marshal(verdict)
		if err != nil {
			return fmt.Errorf("failed to marshal verdict: %w", err)
		}
		cmd.Println(string(data))
	} else {
		printVerdict(cmd, verdict)
	}

	if checkExitCode && verdict.IsProfanity {
		return ErrProfanityDetected
	}
	return nil
}

// readMessage joins args, or reads piped stdin when there are none.
func readMessage(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no message: pass it as an argument or pipe it on stdin")
	}

	data, err := io.ReadAll(io.LimitReader(in, maxStdinBytes))
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func printVerdict(cmd *cobra.Command, verdict *domain.Verdict) {
	if verdict.IsProfanity {
		cmd.Println(flaggedStyle.Render("✗ Profanity detected"))
		cmd.Printf("  Score:       %.4f\n", verdict.Score)
		cmd.Printf("  Flagged for: %s\n", verdict.FlaggedFor)
		return
	}
	cmd.Println(cleanStyle.Render("✓ Clean"))
	cmd.Printf("  Score:       %.4f %s\n", verdict.Score, mutedStyle.Render("(highest match)"))
}
