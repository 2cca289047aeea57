// File: cmd/render.go
package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/xkilldash9x/paramctl/internal/compare"
	"github.com/xkilldash9x/paramctl/internal/paramset"
)

// renderTable prints t as a pterm table under a section header. withPaths adds
// the full controller path of every entry.
func renderTable(out io.Writer, title string, tpl paramset.Template, t paramset.Table, withPaths bool) error {
	fmt.Fprint(out, pterm.DefaultSection.Sprint(title))
	fmt.Fprintln(out, pterm.Info.Sprintf("Controller: %s", tpl.Controller()))

	if t.Len() == 0 {
		fmt.Fprintln(out, pterm.Warning.Sprint("No parameters"))
		return nil
	}

	header := []string{"#", "Name", "Value"}
	if withPaths {
		header = append(header, "Path")
	}
	data := pterm.TableData{header}
	for i, e := range t.Entries() {
		row := []string{strconv.Itoa(i + 1), e.Name, formatNumber(e.Value)}
		if withPaths {
			row = append(row, tpl.Path(e.Name))
		}
		data = append(data, row)
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render parameter table: %w", err)
	}
	fmt.Fprintln(out, rendered)
	return nil
}

// renderDiff prints the differences in res, or a success line when there are none.
func renderDiff(out io.Writer, res compare.Result) error {
	if res.Equal() {
		fmt.Fprintln(out, pterm.Success.Sprint("Controller matches the parameter table"))
		return nil
	}

	missing := pterm.NewStyle(pterm.FgRed)
	extra := pterm.NewStyle(pterm.FgYellow)
	changed := pterm.NewStyle(pterm.FgCyan)

	data := pterm.TableData{{"Status", "Name", "Expected", "Actual"}}
	for _, name := range res.Missing {
		data = append(data, []string{missing.Sprint("missing"), name, "", ""})
	}
	for _, c := range res.Changed {
		data = append(data, []string{changed.Sprint("changed"), c.Name, formatNumber(c.Expected), formatNumber(c.Actual)})
	}
	for _, name := range res.Extra {
		data = append(data, []string{extra.Sprint("extra"), name, "", ""})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render diff: %w", err)
	}
	fmt.Fprintln(out, rendered)
	fmt.Fprintln(out, pterm.Warning.Sprintf("%d missing, %d changed, %d extra", len(res.Missing), len(res.Changed), len(res.Extra)))
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
