package tui

import (
	"github.com/rgehrsitz/vcpgo/internal/config"
	"github.com/rgehrsitz/vcpgo/internal/optimize"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneResults Scene = iota
	SceneDetail
	SceneHelp
)

// String returns the breadcrumb name of the scene
func (s Scene) String() string {
	switch s {
	case SceneResults:
		return "Strategies"
	case SceneDetail:
		return "Detail"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ProfileLoadedMsg signals the profile file has been parsed and validated
type ProfileLoadedMsg struct {
	Config *config.ProfileConfig
}

// SearchCompleteMsg carries the ranked strategies of a finished search
type SearchCompleteMsg struct {
	Result *optimize.SearchResult
	Err    error
}
