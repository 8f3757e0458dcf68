package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/vcpgo/internal/calculation"
	"github.com/rgehrsitz/vcpgo/internal/config"
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/internal/optimize"
	"github.com/rgehrsitz/vcpgo/pkg/dateutil"
)

// Filter restricts the visible strategies to one type
type Filter int

const (
	FilterAll Filter = iota
	FilterFixed
	FilterProgressive
)

func (f Filter) String() string {
	switch f {
	case FilterFixed:
		return string(domain.StrategyFixed)
	case FilterProgressive:
		return string(domain.StrategyProgressive)
	default:
		return "all"
	}
}

// Next cycles all -> fixed -> progressive -> all
func (f Filter) Next() Filter {
	return (f + 1) % 3
}

// Apply returns the results the filter lets through, in rank order
func (f Filter) Apply(res *optimize.SearchResult) []*domain.BenefitResult {
	if res == nil {
		return nil
	}
	switch f {
	case FilterFixed:
		return res.Filter(domain.StrategyFixed)
	case FilterProgressive:
		return res.Filter(domain.StrategyProgressive)
	default:
		return res.Results
	}
}

// Model is the root model of the strategy browser
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	profilePath string
	parser      *config.InputParser
	engine      *calculation.CalculationEngine
	asOf        time.Time

	profile *config.ProfileConfig
	search  *optimize.SearchResult
	filter  Filter
	visible []*domain.BenefitResult

	table   table.Model
	spinner spinner.Model

	loading        bool
	loadingMessage string
	err            error
}

var resultColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Type", Width: 12},
	{Title: "Level", Width: 6},
	{Title: "Months", Width: 7},
	{Title: "Investment", Width: 14},
	{Title: "Pension", Width: 12},
	{Title: "Ratio", Width: 7},
	{Title: "Break-even", Width: 11},
}

// NewModel creates the browser for a profile file. A nil engine uses the
// built-in statutory tables.
func NewModel(profilePath string, engine *calculation.CalculationEngine) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}

	t := table.New(
		table.WithColumns(resultColumns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = TableHeaderStyle
	styles.Selected = TableSelectedStyle
	t.SetStyles(styles)

	return Model{
		currentScene:   SceneResults,
		previousScene:  SceneResults,
		width:          100,
		height:         30,
		profilePath:    profilePath,
		parser:         config.NewInputParser(),
		engine:         engine,
		asOf:           dateutil.FirstOfMonth(time.Now()),
		table:          t,
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(InfoStyle)),
		loading:        true,
		loadingMessage: "Loading profile...",
	}
}

// WithAsOf fixes the month the search runs from instead of the current one
func (m Model) WithAsOf(asOf time.Time) Model {
	m.asOf = asOf
	return m
}

// Init starts the spinner and loads the profile
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadProfileCmd())
}

func (m Model) loadProfileCmd() tea.Cmd {
	parser, path, tables := m.parser, m.profilePath, m.engine.Tables
	return func() tea.Msg {
		cfg, err := parser.LoadProfile(path, tables)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ProfileLoadedMsg{Config: cfg}
	}
}

// searchCmd enumerates the strategy space off the update loop. Schedules
// are kept so the detail scene can show them.
func (m Model) searchCmd() tea.Cmd {
	cfg, engine, asOf := m.profile, m.engine, m.asOf
	return func() tea.Msg {
		if cfg == nil {
			return SearchCompleteMsg{Err: fmt.Errorf("no profile loaded")}
		}
		opts := optimize.SolverOptions{IncludeSchedule: true}
		if cfg.Search != nil {
			opts.Limit = cfg.Search.Limit
		}
		res, err := optimize.NewSolver(engine, opts).Enumerate(context.Background(), cfg.SearchRequest(asOf))
		return SearchCompleteMsg{Result: res, Err: err}
	}
}

// Selected returns the strategy under the cursor, nil when none
func (m Model) Selected() *domain.BenefitResult {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return nil
	}
	return m.visible[i]
}

// best is the top-ranked strategy regardless of filter
func (m Model) best() *domain.BenefitResult {
	if m.search == nil || len(m.search.Results) == 0 {
		return nil
	}
	return m.search.Results[0]
}

// refreshRows rebuilds the table from the current filter
func (m *Model) refreshRows() {
	m.visible = m.filter.Apply(m.search)

	rows := make([]table.Row, 0, len(m.visible))
	for i, r := range m.visible {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			string(r.StrategyType),
			fmt.Sprintf("%d", r.WageLevel),
			fmt.Sprintf("%d", r.MonthsContributed),
			FormatCurrency(r.TotalInvestment),
			FormatCurrency(r.Pension()),
			r.ReturnRatio.StringFixed(2),
			r.BreakEvenMonths.StringFixed(1),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	// title (2) + summary (2) + status (1) + borders (2)
	m.table.SetHeight(max(3, height-7))
}
