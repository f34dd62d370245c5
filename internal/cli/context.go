// Package cli provides the command-line interface for partscout.
package cli

import (
	"github.com/partscout/partscout/internal/app"
)

// globalApp holds the Application shared by commands for the lifetime of
// one invocation.
var globalApp *app.Application

// SetApp stores the Application for commands to access.
func SetApp(a *app.Application) {
	globalApp = a
}

// GetApp retrieves the current Application.
func GetApp() *app.Application {
	return globalApp
}
