package tui

import "github.com/rgehrsitz/vcpgo/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	ColorPrimary = tuistyles.ColorPrimary
	ColorMuted   = tuistyles.ColorMuted
	ColorBorder  = tuistyles.ColorBorder

	AppStyle           = tuistyles.AppStyle
	TitleStyle         = tuistyles.TitleStyle
	SubtitleStyle      = tuistyles.SubtitleStyle
	StatusBarStyle     = tuistyles.StatusBarStyle
	StatusKeyStyle     = tuistyles.StatusKeyStyle
	BorderStyle        = tuistyles.BorderStyle
	ActiveBorderStyle  = tuistyles.ActiveBorderStyle
	HelpKeyStyle       = tuistyles.HelpKeyStyle
	HelpDescStyle      = tuistyles.HelpDescStyle
	ErrorStyle         = tuistyles.ErrorStyle
	InfoStyle          = tuistyles.InfoStyle
	TableHeaderStyle   = tuistyles.TableHeaderStyle
	TableSelectedStyle = tuistyles.TableSelectedStyle
)

var FormatCurrency = tuistyles.FormatCurrency
