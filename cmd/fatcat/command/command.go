// Package command implements fatcat's mitchellh/cli subcommands: serve,
// migrate, create-admin, accept-editgroup, create-container.
package command

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Factories returns the CommandFactory map the top-level CLI dispatches on.
func Factories(ui cli.Ui, log hclog.Logger) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"serve": func() (cli.Command, error) {
			return &ServeCommand{UI: ui, Log: log}, nil
		},
		"migrate": func() (cli.Command, error) {
			return &MigrateCommand{UI: ui, Log: log}, nil
		},
		"create-admin": func() (cli.Command, error) {
			return &CreateAdminCommand{UI: ui, Log: log}, nil
		},
		"accept-editgroup": func() (cli.Command, error) {
			return &AcceptEditgroupCommand{UI: ui, Log: log}, nil
		},
		"create-container": func() (cli.Command, error) {
			return &CreateContainerCommand{UI: ui, Log: log}, nil
		},
	}
}
