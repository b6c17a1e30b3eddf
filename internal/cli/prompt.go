package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readSecret prompts for the API secret without echoing it. Non-terminal
// input is read as a single line from in, leaving the rest for the payload.
var readSecret = func(cmd *cobra.Command, in *bufio.Reader) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Enter API secret: ")
		defer fmt.Fprint(cmd.ErrOrStderr(), "\n")
		secret, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}

	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
