package command

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/fatcat-project/fatcat/internal/auth"
	"github.com/fatcat-project/fatcat/internal/config"
	"github.com/fatcat-project/fatcat/pkg/database"
	"github.com/fatcat-project/fatcat/pkg/models"
)

// CreateAdminCommand creates a superuser editor and prints a bearer token
// for it, the usual way an operator bootstraps the first account.
type CreateAdminCommand struct {
	UI  cli.Ui
	Log hclog.Logger
}

func (c *CreateAdminCommand) Synopsis() string { return "Create a superuser editor" }

func (c *CreateAdminCommand) Help() string {
	return `Usage: fatcat create-admin <username>

  Creates a superuser editor with the given username and prints a
  signed bearer token for it.`
}

func (c *CreateAdminCommand) Run(args []string) int {
	if len(args) != 1 {
		c.UI.Error("expected exactly one argument: <username>")
		return 1
	}
	username := args[0]

	cfg, err := config.Load(afero.NewOsFs(), "")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if cfg.ActiveKeyID == "" {
		c.UI.Error("no active_key_id configured; cannot issue a token")
		return 1
	}

	db, err := database.Connect(database.Config{DatabaseURL: cfg.DatabaseURL}, c.Log)
	if err != nil {
		c.UI.Error("connecting to database: " + err.Error())
		return 1
	}

	editor := &models.Editor{
		Username:    username,
		IsSuperuser: true,
	}
	if err := db.Create(editor).Error; err != nil {
		c.UI.Error("creating editor: " + err.Error())
		return 1
	}

	keys := auth.NewKeyRing(cfg.SigningKeys, cfg.ActiveKeyID)
	token, err := auth.Issue(keys, editor.EditorID, auth.DefaultTokenLifetime)
	if err != nil {
		c.UI.Error("issuing token: " + err.Error())
		return 1
	}

	c.UI.Output(fmt.Sprintf("created editor %s (%s)", editor.Username, editor.EditorID))
	c.UI.Output("token: " + token)
	return 0
}
