package main

import (
	"fmt"
	"os"

	"github.com/benbeisheim/casualchess/internal/config"
	"github.com/benbeisheim/casualchess/internal/model"
	"github.com/benbeisheim/casualchess/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// The terminal belongs to the board, so logs only go to a file.
	log := zap.NewNop()
	if cfg.LogFile != "" {
		if log, err = cfg.Logger(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	defer log.Sync()

	g := model.NewGame("local",
		model.WithLogger(log),
		model.WithOpponent(cfg.OpponentDefault),
		model.WithOpponentDelay(cfg.OpponentDelay),
	)
	defer g.Close()

	if err := tui.Run(g, tea.WithAltScreen()); err != nil {
		log.Error("terminal", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
