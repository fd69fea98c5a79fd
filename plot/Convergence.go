// Package plot implements plotting of LSPI runs
package plot

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Series is a named sequence of values indexed by iteration
type Series struct {
	Name   string
	Values []float64
}

// Convergence renders an HTML line chart of per-iteration values, such
// as the distances between consecutive weight vectors, to w. Series
// may have different lengths.
func Convergence(w io.Writer, title string, series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("convergence: no series to plot")
	}

	iterations := 0
	for _, s := range series {
		if len(s.Values) > iterations {
			iterations = len(s.Values)
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "iteration",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "distance",
		}),
	)

	xAxis := make([]string, iterations)
	for i := range xAxis {
		xAxis[i] = fmt.Sprintf("%d", i+1)
	}
	line.SetXAxis(xAxis)

	for _, s := range series {
		items := make([]opts.LineData, 0, len(s.Values))
		for _, v := range s.Values {
			items = append(items, opts.LineData{Value: v})
		}
		line.AddSeries(s.Name, items)
	}

	return line.Render(w)
}

// SaveConvergence renders the chart of Convergence to an HTML file
func SaveConvergence(filename, title string, series ...Series) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("saveConvergence: could not create file: %v", err)
	}
	defer f.Close()

	return Convergence(f, title, series...)
}
