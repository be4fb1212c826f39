package command

import (
	"context"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/fatcat-project/fatcat/internal/catalog"
	"github.com/fatcat-project/fatcat/internal/config"
	"github.com/fatcat-project/fatcat/pkg/database"
	"github.com/fatcat-project/fatcat/pkg/models"
)

// CreateContainerCommand stages a new container (publication venue) edit,
// the operator escape hatch for the require-role/require-editgroup/
// make-edit-context/check-then-write chain every entity mutation runs
// through, outside of whatever transport layer drives it in production.
type CreateContainerCommand struct {
	UI  cli.Ui
	Log hclog.Logger
}

func (c *CreateContainerCommand) Synopsis() string { return "Stage a new container edit" }

func (c *CreateContainerCommand) Help() string {
	return `Usage: fatcat create-container <editor-id> <name>

  Authorizes editor-id as at least an editor, opens a fresh editgroup on
  their behalf, and stages a container revision named name within it.
  Prints the new editgroup id and edit id on success.`
}

func (c *CreateContainerCommand) Run(args []string) int {
	if len(args) != 2 {
		c.UI.Error("expected exactly two arguments: <editor-id> <name>")
		return 1
	}
	editorID, err := uuid.Parse(args[0])
	if err != nil {
		c.UI.Error("malformed editor id: " + err.Error())
		return 1
	}
	name := args[1]

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
	rev := &models.ContainerRevision{Name: name}
	rev.SetRevID(uuid.New())

	edit, ectx, err := catalog.CreateEntity(context.Background(), cat, cat.Container, catalog.MutationRequest{
		EditorID: editorID,
	}, rev)
	if err != nil {
		c.UI.Error("staging container edit: " + err.Error())
		return 1
	}

	c.UI.Output("editgroup " + ectx.EditgroupID.String() + " edit " + edit.GetEditID().String())
	return 0
}
