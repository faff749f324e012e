package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Piyush2510verma/Language/internal/app"
)

// runApp builds the services and launches the TUI.
func runApp(cmd *cobra.Command) error {
	svc, err := setup(cmd, setupOptions{logToFile: true})
	if err != nil {
		return err
	}
	defer svc.Close()

	return app.Run(svc.deps)
}
