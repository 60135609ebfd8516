package resource

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/mitchellh/cli"

	"github.com/openkcm/slack-scim/internal/cmd/base"
	"github.com/openkcm/slack-scim/pkg/clients/scim"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionSearch Action = "search"
	ActionPatch  Action = "patch"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var Actions = []Action{ActionCreate, ActionRead, ActionSearch, ActionPatch, ActionUpdate, ActionDelete}

// GroupCommand is the parent of the actions of one kind.
type GroupCommand struct {
	*base.Command

	Kind Kind
}

func (c *GroupCommand) Synopsis() string {
	return fmt.Sprintf("Manage %s", c.Kind.Name)
}

func (c *GroupCommand) Help() string {
	return fmt.Sprintf(`Usage: slack-scim %s <subcommand> [options]

  This command groups subcommands that create, read, search, patch, update
  and delete %s.`, c.Kind.Name, c.Kind.Name)
}

func (c *GroupCommand) Run([]string) int {
	return cli.RunResultHelp
}

type Command struct {
	*base.Command

	Kind   Kind
	Action Action

	client         base.ClientFlags
	document       base.DocumentFlags
	flagID         string
	flagFilter     string
	flagCount      int
	flagStartIndex int
}

func (c *Command) Synopsis() string {
	switch c.Action {
	case ActionCreate:
		return fmt.Sprintf("Create a %s", c.Kind.Singular)
	case ActionRead:
		return fmt.Sprintf("Read a %s by id", c.Kind.Singular)
	case ActionSearch:
		return fmt.Sprintf("Search %s", c.Kind.Name)
	case ActionPatch:
		return fmt.Sprintf("Partially update a %s", c.Kind.Singular)
	case ActionUpdate:
		return fmt.Sprintf("Overwrite a %s", c.Kind.Singular)
	case ActionDelete:
		return fmt.Sprintf("Delete a %s", c.Kind.Singular)
	default:
		return ""
	}
}

func (c *Command) Help() string {
	return fmt.Sprintf("Usage: slack-scim %s %s [options]\n\n  %s.", c.Kind.Name, c.Action, c.Synopsis()) +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet(c.Kind.Name+" "+string(c.Action), flag.ContinueOnError))

	c.client.Register(f)

	switch c.Action {
	case ActionCreate:
		c.document.Register(f)
	case ActionRead, ActionDelete:
		f.StringVar(&c.flagID, "id", "", "(Required) Resource id")
	case ActionPatch, ActionUpdate:
		f.StringVar(&c.flagID, "id", "", "Resource id, defaults to the id of the document")
		c.document.Register(f)
	case ActionSearch:
		f.StringVar(&c.flagFilter, "filter", "", `SCIM filter such as 'userName eq "kaz"'`)
		f.IntVar(&c.flagCount, "count", 0, "Number of results per page, 0 leaves it to the server")
		f.IntVar(&c.flagStartIndex, "start-index", 0, "1-based index of the first result, 0 leaves it to the server")
	}

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	action := fmt.Sprintf("running %s %s", c.Kind.Name, c.Action)

	switch c.Action {
	case ActionDelete:
		err = c.Kind.remove(ctx, client, c.flagID)
		if err != nil {
			return c.Fail(action, err)
		}

		c.UI.Info(fmt.Sprintf("Deleted %s %s", c.Kind.Singular, c.flagID))

		return 0
	case ActionRead:
		return c.output(action, func() (scim.Payload, error) {
			return c.Kind.read(ctx, client, c.flagID)
		})
	case ActionSearch:
		return c.output(action, func() (scim.Payload, error) {
			return c.Kind.search(ctx, client, c.searchParams())
		})
	}

	doc, err := c.document.Document(c.Stdin)
	if err != nil {
		return c.Fail("reading document", err)
	}

	return c.output(action, func() (scim.Payload, error) {
		switch c.Action {
		case ActionCreate:
			return c.Kind.create(ctx, client, doc)
		case ActionPatch:
			return c.Kind.patch(ctx, client, c.flagID, doc)
		default:
			return c.Kind.update(ctx, client, c.flagID, doc)
		}
	})
}

func (c *Command) searchParams() scim.SearchParams {
	params := scim.SearchParams{Filter: c.flagFilter}

	if c.flagCount > 0 {
		params.Count = &c.flagCount
	}

	if c.flagStartIndex > 0 {
		params.StartIndex = &c.flagStartIndex
	}

	return params
}

func (c *Command) output(action string, call func() (scim.Payload, error)) int {
	result, err := call()
	if err != nil {
		return c.Fail(action, err)
	}

	doc := result.ToDocument()
	if doc == nil {
		c.UI.Info("No content")
		return 0
	}

	return c.Print(doc)
}
