package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd groups the commands that manage the stored bearer token.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored API token",
	Long:  `Log in with a bearer token issued by the server operator, or forget it.`,
}

func init() {
	AuthCmd.AddCommand(LoginCmd, LogoutCmd)
}
