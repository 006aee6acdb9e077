package main

import (
	"fmt"
	"os"
	"time"

	"gigflow_backend/database"
	"gigflow_backend/internal/app"
	"gigflow_backend/internal/auth"
	"gigflow_backend/internal/config"
	"gigflow_backend/internal/logger"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		configPath string
		migrate    bool
		issueFor   string
	)

	flagSet := pflag.NewFlagSet("gigflow", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to the YAML config (default: $CONFIG_PATH or "+config.DefaultConfigPath+")")
	flagSet.BoolVar(&migrate, "migrate", false, "apply pending SQL migrations and exit")
	flagSet.StringVar(&issueFor, "issue-token", "", "print a JWT for the given user id and exit (development only)")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	switch {
	case migrate:
		logger.Init(cfg.Server.Env)
		return database.RunMigrations(cfg.Database.DSN)
	case issueFor != "":
		if !cfg.IsDevelopment() {
			return fmt.Errorf("--issue-token is only available in development")
		}
		token, err := auth.IssueToken(cfg.JWT.Secret, issueFor, time.Duration(cfg.JWT.TTL)*time.Minute)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	}

	return app.Run(cfg)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `gigflow: gig marketplace API server.

Usage:
  gigflow [flags]

Flags:
%s`, flagSet.FlagUsages())
}
