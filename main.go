package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"yawm/pkg/cli"
	"yawm/pkg/config"
	"yawm/pkg/database"
	"yawm/pkg/ui"
	"yawm/pkg/utils"
)

func main() {
	opts := cli.ParseFlags()

	utils.InitLogger(opts.Verbose)
	defer utils.CloseLogger()

	cfg, styles, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing database: %v\n", err)
		os.Exit(1)
	}

	if cli.HandleCommands(db, opts) {
		return
	}

	p := tea.NewProgram(
		ui.NewModel(db, cfg, styles),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
