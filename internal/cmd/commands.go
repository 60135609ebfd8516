package cmd

import (
	"io"
	"log/slog"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/openkcm/slack-scim/internal/cmd/base"
	"github.com/openkcm/slack-scim/internal/cmd/commands/resource"
	"github.com/openkcm/slack-scim/internal/cmd/commands/serviceproviderconfigs"
)

// Commands returns the command tree: "users <action>", "groups <action>"
// and "service-provider-configs".
func Commands(log hclog.Logger, logLevel *slog.LevelVar, ui cli.Ui, stdin io.Reader) map[string]cli.CommandFactory {
	b := &base.Command{
		UI:       ui,
		Log:      log,
		LogLevel: logLevel,
		Stdin:    stdin,
	}

	commands := map[string]cli.CommandFactory{
		"service-provider-configs": func() (cli.Command, error) {
			return &serviceproviderconfigs.Command{Command: b}, nil
		},
	}

	for _, kind := range []resource.Kind{resource.Users, resource.Groups} {
		commands[kind.Name] = func() (cli.Command, error) {
			return &resource.GroupCommand{Command: b, Kind: kind}, nil
		}

		for _, action := range resource.Actions {
			commands[kind.Name+" "+string(action)] = func() (cli.Command, error) {
				return &resource.Command{Command: b, Kind: kind, Action: action}, nil
			}
		}
	}

	return commands
}
