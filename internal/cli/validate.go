package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/placer/internal/engine"
)

// ValidationReport holds validation results.
type ValidationReport struct {
	Valid      bool   `json:"valid"`
	People     int    `json:"people"`
	Activities int    `json:"activities"`
	Code       string `json:"code,omitempty"`
	Problem    string `json:"problem,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <people.json> <activities.json>",
		Short: "Validate input documents without running the engine",
		Long: `Validate the people and activities documents.

Checks the document schemas plus referential integrity: duplicate
names, preferences naming unknown activities, and capacity bounds.
No assignment is performed.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, peoplePath, activitiesPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	people, activities, err := LoadRoster(peoplePath, activitiesPath)
	if err != nil {
		return loadFailure(formatter, err)
	}

	formatter.VerboseLog("Loaded %d people and %d activities", len(people), len(activities))

	// Referential integrity lives in the engine constructor; a dry
	// construction is the validation.
	if _, err := engine.New(people, activities); err != nil {
		var ie *engine.InputError
		detail := err.Error()
		if errors.As(err, &ie) {
			detail = ie.Message
			if ie.Subject != "" {
				detail = fmt.Sprintf("%s (%s)", ie.Message, ie.Subject)
			}
		}
		formatter.Error(ErrCodeIntegrity, detail, nil)
		return WrapExitError(ExitFailure, "invalid input", err)
	}

	if opts.Format == "json" {
		return formatter.Success(ValidationReport{
			Valid:      true,
			People:     len(people),
			Activities: len(activities),
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Input valid: %d people, %d activities\n", len(people), len(activities))
	return nil
}
