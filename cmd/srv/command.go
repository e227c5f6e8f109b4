package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   "config.toml",
		Usage:   "Path of the toml configuration file",
		EnvVars: []string{"DOCTHRU_CONFIG"},
	}

	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "docthru"
	app.Usage = "Translation challenge backend"
	app.Flags = []cli.Flag{configFlag}
	app.Before = s.loadConfig
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it serves challenges, applications and feedbacks.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Used to close the challenges whose deadline has passed.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema",
			Category:    "Database",
			Description: `Used to apply the schema migrations, then exit.`,
		},
	}

	s.app = app
}
