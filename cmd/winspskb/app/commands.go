package app

import (
	"github.com/spf13/cobra"

	"github.com/propstore/winspskb/cmd/winspskb/cmd/build"
	"github.com/propstore/winspskb/cmd/winspskb/cmd/docs"
	"github.com/propstore/winspskb/cmd/winspskb/cmd/list"
	"github.com/propstore/winspskb/cmd/winspskb/cmd/lookup"
	"github.com/propstore/winspskb/cmd/winspskb/cmd/validate"
)

// NewBuildCommand creates the build command with app dependencies.
func (a *App) NewBuildCommand() *cobra.Command {
	return build.NewCommand(a)
}

// NewLookupCommand creates the lookup command with app dependencies.
func (a *App) NewLookupCommand() *cobra.Command {
	return lookup.NewCommand(a)
}

// NewListCommand creates the list command with app dependencies.
func (a *App) NewListCommand() *cobra.Command {
	return list.NewCommand(a)
}

// NewValidateCommand creates the validate command with app dependencies.
func (a *App) NewValidateCommand() *cobra.Command {
	return validate.NewCommand(a)
}

// NewDocsCommand creates the docs command with app dependencies.
func (a *App) NewDocsCommand() *cobra.Command {
	return docs.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("winspskb %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
