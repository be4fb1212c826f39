package command

import (
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/fatcat-project/fatcat/internal/config"
	"github.com/fatcat-project/fatcat/internal/migrate"
	"github.com/fatcat-project/fatcat/pkg/database"
)

// MigrateCommand applies or rolls back the catalog schema's versioned
// migrations against DATABASE_URL.
type MigrateCommand struct {
	UI  cli.Ui
	Log hclog.Logger
}

func (c *MigrateCommand) Synopsis() string { return "Apply or roll back schema migrations" }

func (c *MigrateCommand) Help() string {
	return `Usage: fatcat migrate [-down] [-config=config.hcl]

  Applies every pending migration against DATABASE_URL. Pass -down to
  roll back every applied migration instead.`
}

func (c *MigrateCommand) Run(args []string) int {
	down := false
	configPath := ""
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-down":
			down = true
		case "-config":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			}
		default:
			if strings.HasPrefix(args[i], "-config=") {
				configPath = strings.TrimPrefix(args[i], "-config=")
			}
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

	if down {
		if err := migrate.Down(sqlDB, "postgres"); err != nil {
			c.UI.Error("rolling back migrations: " + err.Error())
			return 1
		}
		c.UI.Output("migrations rolled back")
		return 0
	}

	if err := migrate.Up(sqlDB, "postgres"); err != nil {
		c.UI.Error("applying migrations: " + err.Error())
		return 1
	}
	c.UI.Output("migrations applied")
	return 0
}
