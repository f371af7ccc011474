package auth

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"history/cmd/client/cmd/types"
)

var token string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a bearer token",
	Long: `Checks the token against the server and stores it in the config dir.

Without --token the token is read from the terminal without echo, or from
stdin when it is not a terminal.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		value := token
		if value == "" {
			value, err = readToken(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Login(ctx, value); err != nil {
			return fmt.Errorf("login: %w", err)
		}

		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Logged in")
		return nil
	},
}

func readToken(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Token: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	LoginCmd.Flags().StringVarP(&token, "token", "t", "", "bearer token (prompted when omitted)")
}
