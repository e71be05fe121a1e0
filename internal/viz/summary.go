package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Summary renders static charts of the named series, suitable for plain
// stdout. Names missing from the set, or with too few samples to plot, are
// skipped.
func Summary(series map[string][]float64, names []string) string {
	var b strings.Builder
	for _, name := range names {
		data, ok := series[name]
		if !ok || len(data) < 2 {
			continue
		}
		plot := asciigraph.Plot(data,
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption(name),
		)
		b.WriteString(plot)
		b.WriteString("\n\n")
	}
	return b.String()
}
