package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/placer/internal/engine"
	"github.com/roach88/placer/internal/store"
)

// resultsFile is the output document name, written under --out.
const resultsFile = "assignment_results.json"

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	OutDir   string
	Database string

	// TokenGenerator allows overriding the run token generator (for
	// testing). If nil, defaults to UUIDv7Generator.
	TokenGenerator engine.RunTokenGenerator

	// Now allows overriding the run timestamp (for testing).
	Now func() time.Time
}

// RunSummary is the payload reported after a successful run.
type RunSummary struct {
	Token      string `json:"token"`
	Output     string `json:"output"`
	N1         int    `json:"n1"`
	N2         int    `json:"n2"`
	N3         int    `json:"n3"`
	N4         int    `json:"n4"`
	Unassigned int    `json:"unassigned"`
	Cancelled  int    `json:"cancelled"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <people.json> <activities.json>",
		Short: "Assign people to activities",
		Long: `Run the assignment engine over the given input documents.

The engine seeds everyone at their first choice, optimizes rank by
rank, cancels activities that cannot reach their minimum, rescues
borderline ones, and writes the final assignment document to
<out>/assignment_results.json.

Example:
  placer run data/people.json data/activities.json
  placer run people.json activities.json --out results --db ./placer.db`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssignment(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.OutDir, "out", "results/output", "directory for the result document")
	cmd.Flags().StringVar(&opts.Database, "db", "", "optional SQLite database for run history")

	return cmd
}

func runAssignment(opts *RunOptions, peoplePath, activitiesPath string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	slog.Info("loading input", "people", peoplePath, "activities", activitiesPath)
	people, activities, err := LoadRoster(peoplePath, activitiesPath)
	if err != nil {
		return loadFailure(formatter, err)
	}
	slog.Info("input loaded", "people", len(people), "activities", len(activities))

	eng, err := engine.New(people, activities)
	if err != nil {
		formatter.Error(ErrCodeIntegrity, err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid input", err)
	}

	result := eng.Assign()
	summary := result.Statistics.Summary
	slog.Info("assignment settled",
		"n1", summary.N1, "n2", summary.N2, "n3", summary.N3, "n4", summary.N4,
		"unassigned", summary.Unassigned,
		"cancelled", len(result.CancelledActivities),
	)

	outPath, err := writeResult(opts.OutDir, result)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to write result", err)
	}

	tokenGen := opts.TokenGenerator
	if tokenGen == nil {
		tokenGen = engine.UUIDv7Generator{}
	}
	token := tokenGen.Generate()

	if opts.Database != "" {
		if err := recordRun(opts, token, result); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		slog.Info("run recorded", "token", token, "db", opts.Database)
	}

	if opts.Format == "json" {
		return formatter.Success(RunSummary{
			Token:      token,
			Output:     outPath,
			N1:         summary.N1,
			N2:         summary.N2,
			N3:         summary.N3,
			N4:         summary.N4,
			Unassigned: summary.Unassigned,
			Cancelled:  len(result.CancelledActivities),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s complete.\n", token)
	fmt.Fprintf(out, "  1st choice: %d\n", summary.N1)
	fmt.Fprintf(out, "  2nd choice: %d\n", summary.N2)
	fmt.Fprintf(out, "  3rd choice: %d\n", summary.N3)
	fmt.Fprintf(out, "  4th choice: %d\n", summary.N4)
	fmt.Fprintf(out, "  unassigned: %d\n", summary.Unassigned)
	if len(result.CancelledActivities) > 0 {
		fmt.Fprintf(out, "  cancelled:  %v\n", result.CancelledActivities)
	}
	fmt.Fprintf(out, "Results written to %s\n", outPath)
	return nil
}

// writeResult persists the result document, creating the output
// directory as needed.
func writeResult(dir string, result *engine.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	doc, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	doc = append(doc, '\n')

	path := filepath.Join(dir, resultsFile)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func recordRun(opts *RunOptions, token string, result *engine.Result) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return st.WriteRun(context.Background(), token, now(), result)
}

// loadFailure reports a LoadError on the formatter and converts it to
// an exit error: unreadable inputs are command errors, everything else
// is a validation failure.
func loadFailure(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		formatter.Error(loadErr.Code, loadErr.Message, loadErr.Path)
		if loadErr.Code == ErrCodeNotFound {
			return WrapExitError(ExitCommandError, "cannot read input", err)
		}
		return WrapExitError(ExitFailure, "invalid input", err)
	}
	formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, "load failed", err)
}

// configureLogging sets the default slog handler. Logs go to stderr so
// JSON output on stdout stays parseable.
func configureLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
