package serviceproviderconfigs

import (
	"context"
	"flag"
	"fmt"

	"github.com/openkcm/slack-scim/internal/cmd/base"
)

type Command struct {
	*base.Command

	client base.ClientFlags
}

func (c *Command) Synopsis() string {
	return "Show the capabilities of the SCIM provider"
}

func (c *Command) Help() string {
	return `Usage: slack-scim service-provider-configs [options]

  This command prints the ServiceProviderConfigs resource of the API.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("service-provider-configs", flag.ContinueOnError))
	c.client.Register(f)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(&c.client)
	if err != nil {
		return c.Fail("creating client", err)
	}

	configs, err := client.GetServiceProviderConfigs(context.Background())
	if err != nil {
		return c.Fail("reading service provider configs", err)
	}

	if configs == nil {
		c.UI.Info("No content")
		return 0
	}

	return c.Print(configs.ToDocument())
}
