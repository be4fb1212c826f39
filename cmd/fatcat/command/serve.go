package command

import (
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/fatcat-project/fatcat/internal/config"
	"github.com/fatcat-project/fatcat/internal/migrate"
	"github.com/fatcat-project/fatcat/internal/server"
	"github.com/fatcat-project/fatcat/pkg/database"
)

// ServeCommand starts the catalog server: connects to the database,
// applies any pending migrations, and assembles the injected core
// dependencies.
type ServeCommand struct {
	UI  cli.Ui
	Log hclog.Logger
}

func (c *ServeCommand) Synopsis() string { return "Run the catalog server" }

func (c *ServeCommand) Help() string {
	return `Usage: fatcat serve [-config=config.hcl]

  Connects to DATABASE_URL, applies pending migrations, and serves the
  catalog core. The transport layer (HTTP handlers) is outside this
  repository's scope; this command wires the injected dependencies,
  reports readiness and exits. It does not listen or block.`
}

func (c *ServeCommand) Run(args []string) int {
	var configPath string
	for i, a := range args {
		if strings.HasPrefix(a, "-config=") {
			configPath = strings.TrimPrefix(a, "-config=")
		} else if a == "-config" && i+1 < len(args) {
			configPath = args[i+1]
		}
	}

	cfg, err := config.Load(afero.NewOsFs(), configPath)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	db, err := database.Connect(database.Config{DatabaseURL: cfg.DatabaseURL}, c.Log)
	if err != nil {
		c.UI.Error("connecting to database: " + err.Error())
		return 1
	}

	sqlDB, err := db.DB()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if err := migrate.Up(sqlDB, "postgres"); err != nil {
		c.UI.Error("applying migrations: " + err.Error())
		return 1
	}

	srv := server.New(db, cfg, c.Log)
	c.UI.Output("fatcat core ready (catalog=" + srv.Catalog.Release.EntityType() + " ...)")
	return 0
}
