package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/fatcat-project/fatcat/internal/acceptance"
	"github.com/fatcat-project/fatcat/internal/catalog"
	"github.com/fatcat-project/fatcat/internal/config"
	"github.com/fatcat-project/fatcat/pkg/database"
)

// AcceptEditgroupCommand runs the acceptance engine against a single
// editgroup, the operator escape hatch for accepting edits outside of
// whatever review workflow a transport layer implements.
type AcceptEditgroupCommand struct {
	UI  cli.Ui
	Log hclog.Logger
}

func (c *AcceptEditgroupCommand) Synopsis() string { return "Accept a pending editgroup" }

func (c *AcceptEditgroupCommand) Help() string {
	return `Usage: fatcat accept-editgroup <editgroup-id>

  Runs the acceptance engine against the given editgroup id, applying
  every pending edit it contains in a single serializable transaction.`
}

func (c *AcceptEditgroupCommand) Run(args []string) int {
	if len(args) != 1 {
		c.UI.Error("expected exactly one argument: <editgroup-id>")
		return 1
	}
	editgroupID, err := uuid.Parse(args[0])
	if err != nil {
		c.UI.Error("malformed editgroup id: " + err.Error())
		return 1
	}

	cfg, err := config.Load(afero.NewOsFs(), "")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	db, err := database.Connect(database.Config{DatabaseURL: cfg.DatabaseURL}, c.Log)
	if err != nil {
		c.UI.Error("connecting to database: " + err.Error())
		return 1
	}

	cat := catalog.New(db)
	engine := acceptance.New(db, cat.Handlers())

	if err := engine.AcceptEditgroup(context.Background(), editgroupID); err != nil {
		c.UI.Error("accepting editgroup: " + err.Error())
		return 1
	}

	c.UI.Output("accepted editgroup " + editgroupID.String())
	return 0
}
