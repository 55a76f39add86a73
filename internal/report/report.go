// Package report renders the pipeline result as a fixed-format textual
// report with sections for prices, allocation, the market-clearing check,
// and welfare figures. The core computes; this package only formats.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/econkit/walras/internal/config"
	"github.com/econkit/walras/internal/pipeline"
	"github.com/econkit/walras/pkg/algebra"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))
)

// Renderer formats pipeline results.
type Renderer struct {
	format string
}

// New creates a renderer for the given format (styled, plain, or yaml).
func New(format string) (*Renderer, error) {
	switch format {
	case config.FormatStyled, config.FormatPlain, config.FormatYAML:
		return &Renderer{format: format}, nil
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}

// Render produces the report for one pipeline result.
func (r *Renderer) Render(res *pipeline.Result) (string, error) {
	switch r.format {
	case config.FormatYAML:
		return renderYAML(res)
	case config.FormatPlain:
		return renderText(res, false), nil
	}
	return renderText(res, true), nil
}

func renderText(res *pipeline.Result, styled bool) string {
	style := func(s lipgloss.Style, text string) string {
		if styled {
			return s.Render(text)
		}
		return text
	}

	var b strings.Builder
	b.WriteString(style(titleStyle, "Walrasian equilibrium report") + "\n\n")

	b.WriteString(style(sectionStyle, "Prices") + "\n")
	fmt.Fprintf(&b, "  pz (numeraire) = 1\n")
	fmt.Fprintf(&b, "  px = %s\n", res.Solution.Px)
	fmt.Fprintf(&b, "  py = %s\n\n", res.Solution.Py)

	b.WriteString(style(sectionStyle, "Allocation") + "\n")
	fmt.Fprintf(&b, "  z_alpha = %s\n", res.Solution.ZAlpha)
	fmt.Fprintf(&b, "  z_beta  = %s\n", res.Solution.ZBeta)
	fmt.Fprintf(&b, "  consumer A: x = %s, y = %s\n", res.Welfare.XA, res.Welfare.YA)
	fmt.Fprintf(&b, "  consumer B: x = %s, y = %s\n\n", res.Welfare.XB, res.Welfare.YB)

	b.WriteString(style(sectionStyle, "Market clearing") + "\n")
	if algebra.IsZero(res.Welfare.ExcessDemandY) {
		b.WriteString("  " + style(okStyle, "excess demand for Y is identically 0") + "\n\n")
	} else {
		fmt.Fprintf(&b, "  excess demand for Y: %s\n\n", res.Welfare.ExcessDemandY)
	}

	b.WriteString(style(sectionStyle, "Welfare") + "\n")
	fmt.Fprintf(&b, "  income A  = %s\n", res.Welfare.IncomeA)
	fmt.Fprintf(&b, "  income B  = %s\n", res.Welfare.IncomeB)
	fmt.Fprintf(&b, "  utility A = %s\n", res.Welfare.UtilityA)
	fmt.Fprintf(&b, "  utility B = %s\n", res.Welfare.UtilityB)
	fmt.Fprintf(&b, "  ratio U_A/U_B = %s\n", res.Welfare.WelfareRatio)

	if len(res.Warnings) > 0 {
		b.WriteString("\n" + style(warnStyle, "Warnings") + "\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}
	return b.String()
}

type yamlDocument struct {
	Branch   int               `yaml:"branch"`
	Prices   map[string]string `yaml:"prices"`
	Inputs   map[string]string `yaml:"inputs"`
	Clearing string            `yaml:"excessDemandY"`
	Incomes  map[string]string `yaml:"incomes"`
	Demands  map[string]string `yaml:"demands"`
	Welfare  map[string]string `yaml:"welfare"`
	Warnings []string          `yaml:"warnings,omitempty"`
}

func renderYAML(res *pipeline.Result) (string, error) {
	doc := yamlDocument{
		Branch: res.Solution.BranchIndex,
		Prices: map[string]string{
			"pz": "1",
			"px": res.Solution.Px.String(),
			"py": res.Solution.Py.String(),
		},
		Inputs: map[string]string{
			"z_alpha": res.Solution.ZAlpha.String(),
			"z_beta":  res.Solution.ZBeta.String(),
		},
		Clearing: res.Welfare.ExcessDemandY.String(),
		Incomes: map[string]string{
			"A": res.Welfare.IncomeA.String(),
			"B": res.Welfare.IncomeB.String(),
		},
		Demands: map[string]string{
			"xA": res.Welfare.XA.String(),
			"yA": res.Welfare.YA.String(),
			"xB": res.Welfare.XB.String(),
			"yB": res.Welfare.YB.String(),
		},
		Welfare: map[string]string{
			"utilityA": res.Welfare.UtilityA.String(),
			"utilityB": res.Welfare.UtilityB.String(),
			"ratio":    res.Welfare.WelfareRatio.String(),
		},
	}
	for _, w := range res.Warnings {
		doc.Warnings = append(doc.Warnings, w.String())
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(out), nil
}
