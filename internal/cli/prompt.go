package cli

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newPromptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Interactive menu: 1 generates and signs, 2 verifies the sample document",
		Args:  cobra.NoArgs,
		RunE:  a.runPrompt,
	}
}

func (a *app) runPrompt(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "1: generate and sign a document")
	fmt.Fprintln(out, "2: verify the sample document")
	fmt.Fprint(out, "> ")

	var choice [1]byte
	if _, err := io.ReadFull(cmd.InOrStdin(), choice[:]); err != nil {
		return errors.Wrap(err, "reading choice")
	}
	fmt.Fprintln(out)

	switch choice[0] {
	case '1':
		_, err := a.generate(cmd.Context(), out, cmd.ErrOrStderr(), 0)
		return err
	case '2':
		return verifySample(cmd.Context(), out)
	default:
		fmt.Fprintln(out, "invalid input")
		return nil
	}
}
