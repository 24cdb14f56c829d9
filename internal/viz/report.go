package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cortexforge/internal/rcd"
)

var (
	// ErrNonFinite indicates a trajectory holding NaN or Inf samples.
	ErrNonFinite = errors.New("viz: trajectory contains non-finite values")
	// ErrEmpty indicates a trajectory with no samples.
	ErrEmpty = errors.New("viz: trajectory is empty")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(28)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

var variableLabels = [3]string{"Hope (H)", "Memory (M)", "Reinforcement (R)"}

func finals(tr rcd.Trajectory) [3]float64 {
	p := tr.Final()
	return [3]float64{p.H, p.M, p.R}
}

// Summary reports the final value of each variable to two decimals, one
// per line.
func Summary(tr rcd.Trajectory) string {
	var b strings.Builder
	for i, v := range finals(tr) {
		fmt.Fprintf(&b, "Final %s: %.2f\n", variableLabels[i], v)
	}
	return b.String()
}

// StyledSummary is Summary under a header, rendered for a terminal.
func StyledSummary(tr rcd.Trajectory) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Variable End States") + "\n")
	for i, v := range finals(tr) {
		b.WriteString(MetricLabel.Render("Final "+variableLabels[i]+":") + MetricValue.Render(fmt.Sprintf("%.2f", v)) + "\n")
	}
	return b.String()
}

// SeriesPlot draws H, M and R against the step index.
func SeriesPlot(tr rcd.Trajectory, width, height int) (string, error) {
	if tr.Len() == 0 {
		return "", ErrEmpty
	}
	if !tr.Finite() {
		return "", fmt.Errorf("series plot: %w", ErrNonFinite)
	}
	return asciigraph.PlotMany(
		[][]float64{tr.H, tr.M, tr.R},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Gold, asciigraph.DeepSkyBlue, asciigraph.MediumSeaGreen),
		asciigraph.SeriesLegends(variableLabels[0], variableLabels[1], variableLabels[2]),
		asciigraph.Caption("H-M-R dynamics"),
	), nil
}

// Sparkline renders values sampled down to width cells, colored by
// relative height. Non-finite samples render as a gap.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 || math.IsInf(rng, 0) || math.IsNaN(rng) {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		v := values[i*step]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b.WriteRune(' ')
			continue
		}
		norm := (v - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(SparkMid.Render(c))
		default:
			b.WriteString(SparkLow.Render(c))
		}
	}
	return b.String()
}

// SliderBar draws the position of v within [lo, hi] as a filled bar.
func SliderBar(v, lo, hi float64, width int) string {
	ratio := 0.0
	if hi > lo {
		ratio = (v - lo) / (hi - lo)
	}
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
