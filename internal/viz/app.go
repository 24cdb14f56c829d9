package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/cortexforge/internal/analysis"
	"github.com/san-kum/cortexforge/internal/config"
	"github.com/san-kum/cortexforge/internal/rcd"
)

const (
	sidebarWidth  = 52
	minCanvasW    = 20
	minCanvasH    = 8
	autoRotateRad = 0.01
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
	canvasStyle  = lipgloss.NewStyle().Padding(1, 2)
	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(sidebarWidth)
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// App is the slider front end: five numeric sliders and the drug
// selector, with the phase trajectory redrawn after every change.
type App struct {
	cfg      *config.Config
	initial  *config.Config
	tr       rcd.Trajectory
	report   analysis.Report
	wire     *Wireframe
	err      error
	cursor   int
	preset   int
	camera   *Camera
	canvas   *Canvas
	rotating bool
	log      *slog.Logger
}

// NewApp starts from cfg; r restores it. A nil logger discards.
func NewApp(cfg *config.Config, logger *slog.Logger) App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := App{
		cfg:      cfg.Clone(),
		initial:  cfg.Clone(),
		preset:   -1,
		camera:   NewCamera(),
		canvas:   NewCanvas(60, 22),
		rotating: true,
		log:      logger,
	}
	a.resimulate()
	return a
}

func (a App) Config() *config.Config      { return a.cfg.Clone() }
func (a App) Trajectory() rcd.Trajectory { return a.tr }
func (a App) Err() error                 { return a.err }

func (a App) Init() tea.Cmd { return tick() }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		w := max(msg.Width-sidebarWidth-8, minCanvasW)
		h := max(msg.Height-4, minCanvasH)
		a.canvas = NewCanvas(w, h)
	case tickMsg:
		if a.rotating {
			a.camera.RotateY(autoRotateRad)
		}
		return a, tick()
	}
	return a, nil
}

// rows counts the numeric sliders plus the drug selector.
func (a App) rows() int { return len(config.Options) + 1 }

func (a App) onDrugRow() bool { return a.cursor == len(config.Options) }

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j", "tab":
		if a.cursor < a.rows()-1 {
			a.cursor++
		}
	case "left", "h":
		a.adjust(-1)
	case "right", "l":
		a.adjust(1)
	case "r":
		a.cfg = a.initial.Clone()
		a.preset = -1
		a.resimulate()
	case "p":
		names := config.ListPresets()
		a.preset = (a.preset + 1) % len(names)
		a.cfg = config.GetPreset(names[a.preset])
		a.log.Debug("preset selected", "preset", names[a.preset])
		a.resimulate()
	case " ":
		a.rotating = !a.rotating
	case "x":
		a.camera.RotateX(0.1)
	case "X":
		a.camera.RotateX(-0.1)
	case "y":
		a.camera.RotateY(0.1)
	case "Y":
		a.camera.RotateY(-0.1)
	case "z":
		a.camera.RotateZ(0.1)
	case "Z":
		a.camera.RotateZ(-0.1)
	case "+", "=":
		a.camera.ZoomIn()
	case "-", "_":
		a.camera.ZoomOut()
	}
	return a, nil
}

func (a *App) adjust(dir int) {
	a.cfg = a.cfg.Clone()
	if a.onDrugRow() {
		a.cfg.CycleDrug(dir)
	} else if err := a.cfg.Nudge(config.Options[a.cursor].Name, dir); err != nil {
		a.err = err
		return
	}
	a.resimulate()
}

func (a *App) resimulate() {
	ec, err := a.cfg.Engine()
	if err != nil {
		a.err = err
		a.log.Warn("invalid configuration", "error", err)
		return
	}
	a.err = nil
	a.tr = rcd.Simulate(ec)
	a.report = analysis.Analyze(a.tr)
	a.wire = PhaseWireframe(a.tr)
	a.log.Debug("simulated",
		"timesteps", ec.Timesteps, "alpha", ec.Alpha, "beta", ec.Beta,
		"gamma", ec.Gamma, "shock", ec.ShockIntensity, "drug", ec.Drug.String(),
		"finite", a.tr.Finite())
}

func (a App) View() string {
	a.canvas.Clear()
	Render3D(a.canvas, a.wire, a.camera)

	var s strings.Builder
	s.WriteString(titleStyle.Render("CORTEXFORGE") + "\n")
	s.WriteString(Subtle.Render("symbolic phase trajectory: H-M-R dynamics") + "\n\n")

	for i, o := range config.Options {
		v, _ := a.cfg.Get(o.Name)
		val := fmt.Sprintf("%.2f", v)
		if o.Name == "timesteps" {
			val = fmt.Sprintf("%d", a.cfg.Timesteps)
		}
		line := fmt.Sprintf("%-29s %s %s", o.Label, SliderBar(v, o.Min, o.Max, 10), val)
		s.WriteString(a.row(i, line))
	}
	drug := fmt.Sprintf("%-29s ◂ %s ▸", config.DrugLabel, a.drugName())
	s.WriteString(a.row(len(config.Options), drug) + "\n")

	if a.err != nil {
		s.WriteString(errStyle.Render(a.err.Error()) + "\n\n")
	}

	s.WriteString(StyledSummary(a.tr) + "\n")
	s.WriteString(labelStyle.Render("H ") + Sparkline(a.tr.H, 40) + "\n")
	s.WriteString(labelStyle.Render("M ") + Sparkline(a.tr.M, 40) + "\n")
	s.WriteString(labelStyle.Render("R ") + Sparkline(a.tr.R, 40) + "\n")
	if !a.tr.Finite() {
		s.WriteString(errStyle.Render("trajectory diverged (NaN/Inf)") + "\n")
	}
	if p := a.report.Period.Hope; p > 0 {
		s.WriteString(Subtle.Render(fmt.Sprintf("H period %.1f steps", p)) + "\n")
	}
	s.WriteString("\n" + Subtle.Render("j/k select  h/l adjust  p preset  r reset") + "\n")
	s.WriteString(Subtle.Render("x/y/z rotate  +/- zoom  space spin  q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(a.canvas.Render()),
		sidebarStyle.Render(s.String()),
	)
}

func (a App) row(i int, line string) string {
	if i == a.cursor {
		return activeStyle.Render("▸ "+line) + "\n"
	}
	return "  " + labelStyle.Render(line) + "\n"
}

func (a App) drugName() string {
	d, err := rcd.ParseDrug(a.cfg.DrugEffect)
	if err != nil {
		return a.cfg.DrugEffect
	}
	return d.String()
}

// Run opens the slider UI on the alternate screen and blocks until quit.
func Run(cfg *config.Config, logger *slog.Logger) error {
	_, err := tea.NewProgram(NewApp(cfg, logger), tea.WithAltScreen()).Run()
	return err
}
