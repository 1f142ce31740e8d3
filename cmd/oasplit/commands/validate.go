package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/validator"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(g *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <spec_file>",
		Short: "Check the top-level structure of a specification",
		Long: `Check that a document declares an OpenAPI or Swagger version, an info object
with title and version, a non-empty paths object, and, when present, a
components object.

Exit Codes:
  0    Specification is valid
  1    Specification has issues or could not be loaded`,
		Example: `  oasplit validate openapi.yaml
  oasplit --json-output validate openapi.json | jq '.issues'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return HandleValidate(cmd.OutOrStdout(), cmd.ErrOrStderr(), g, args[0])
		},
	}
}

// HandleValidate executes the validate command. An invalid document returns
// ErrInvalidSpec after the issues are printed.
func HandleValidate(stdout, stderr io.Writer, g *GlobalFlags, specPath string) error {
	doc, err := document.LoadFile(specPath, g.Logger(stderr))
	if err != nil {
		return err
	}

	result := validator.Check(doc)
	if g.JSONOutput {
		if err := OutputJSON(stdout, result); err != nil {
			return err
		}
	} else if result.IsValid {
		Writef(stdout, "✓ Specification is valid\n")
	} else {
		Writef(stdout, "✗ Specification has %d issue(s):\n", result.IssueCount)
		for _, issue := range result.Issues {
			Writef(stdout, "  - %s\n", issue)
		}
	}

	if !result.IsValid {
		return ErrInvalidSpec
	}
	return nil
}
