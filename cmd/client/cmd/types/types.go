package types

import (
	"errors"

	"github.com/spf13/cobra"

	"history/internal/app/client"
)

type contextKey string

// ClientAppKey holds the *client.App in a command's context.
const ClientAppKey contextKey = "client_app"

// OutputKey holds the selected output format.
const OutputKey contextKey = "output"

const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// App returns the application set up by the root command.
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, errors.New("client is not initialized")
	}
	return app, nil
}

// Output returns the output format chosen with --output.
func Output(cmd *cobra.Command) string {
	if f, ok := cmd.Context().Value(OutputKey).(string); ok && f != "" {
		return f
	}
	return OutputText
}
