package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/vcpgo/internal/calculation"
	"github.com/rgehrsitz/vcpgo/internal/config"
	"github.com/rgehrsitz/vcpgo/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: vcpgo-tui <profile-file>")
		os.Exit(1)
	}
	profilePath := os.Args[1]

	if _, err := os.Stat(profilePath); os.IsNotExist(err) {
		fmt.Printf("Error: Profile file not found: %s\n", profilePath)
		os.Exit(1)
	}

	engine := calculation.NewCalculationEngine()
	if path := os.Getenv(config.EnvTables); path != "" {
		tables, err := config.NewInputParser().LoadTables(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		engine = calculation.NewCalculationEngineWithTables(tables)
	}

	p := tea.NewProgram(
		tui.NewModel(profilePath, engine),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
