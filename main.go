package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/deAdler-alt/Skill-Sense/api"
	"github.com/deAdler-alt/Skill-Sense/config"
	"github.com/deAdler-alt/Skill-Sense/logging"
	"github.com/deAdler-alt/Skill-Sense/session"
	"github.com/deAdler-alt/Skill-Sense/tui"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if base := cmd.String("base-url"); base != "" {
		cfg.API.BaseURL = base
	}

	logFile, err := cfg.LogFile()
	if err != nil {
		return err
	}
	log := logging.New(logFile)
	defer log.Sync()

	tokenPath, err := cfg.TokenPath()
	if err != nil {
		return err
	}
	sess := session.NewStore(tokenPath)
	if err := sess.Load(); err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.RequestTimeout, sess, log,
		api.WithSearchLimit(cfg.Search.Limit),
		api.WithListLimit(cfg.Directory.Limit),
	)

	app := tui.NewApp(cfg, client, sess, log)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		log.Error("tui exited with error", zap.Error(err))
		return err
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "skillsense",
		Usage:  "Terminal client for the SkillSense candidate search service",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Sources: cli.EnvVars("SKILLSENSE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Backend base URL (overrides config)",
				Sources: cli.EnvVars("SKILLSENSE_API_URL"),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
