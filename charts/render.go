package charts

import (
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	HourFile      = "trips_per_hour.png"
	DayOfWeekFile = "trips_by_dayofweek.png"
	MonthFile     = "trips_by_month.png"
	HeatmapFile   = "heatmap_hour_day.png"
)

var (
	hourColor  = color.RGBA{R: 0x21, G: 0x91, B: 0x8c, A: 0xff}
	weekColor  = color.RGBA{R: 0x8c, G: 0x29, B: 0x81, A: 0xff}
	monthColor = color.RGBA{R: 0xcc, G: 0x47, B: 0x78, A: 0xff}
)

func barPlot(title, xLabel string, labels []string, values plotter.Values, fill color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Number of Trips"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = fill
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

func saveBars(p *plot.Plot, err error) func(path string) error {
	return func(path string) error {
		if err != nil {
			return err
		}
		return p.Save(12*vg.Inch, 7*vg.Inch, path)
	}
}

func renderHourly(c Counts, path string) error {
	labels := make([]string, 24)
	for h := range labels {
		labels[h] = strconv.Itoa(h)
	}
	return saveBars(barPlot("Total Uber Trips per Hour", "Hour of the Day",
		labels, plotter.Values(c.ByHour[:]), hourColor))(path)
}

func renderWeekly(c Counts, path string) error {
	labels := []string{"0", "1", "2", "3", "4", "5", "6"}
	return saveBars(barPlot("Total Uber Trips by Day of the Week", "Day of the Week (0=Mon, 6=Sun)",
		labels, plotter.Values(c.ByDayOfWeek[:]), weekColor))(path)
}

func renderMonthly(c Counts, path string) error {
	return saveBars(monthlyPlot(c))(path)
}

func monthlyPlot(c Counts) (*plot.Plot, error) {
	months := c.Months()
	labels := make([]string, len(months))
	values := make(plotter.Values, len(months))
	for i, m := range months {
		labels[i] = strconv.Itoa(m)
		values[i] = c.ByMonth[m]
	}
	return barPlot("Total Uber Trips by Month", "Month (4=Apr, 9=Sep)",
		labels, values, monthColor)
}

// hourDayGrid exposes Counts.HourDay as a plotter.GridXYZ with days on X
// and hours on Y.
type hourDayGrid struct {
	counts *[24][31]float64
}

func (g hourDayGrid) Dims() (c, r int)   { return 31, 24 }
func (g hourDayGrid) Z(c, r int) float64 { return g.counts[r][c] }
func (g hourDayGrid) X(c int) float64    { return float64(c + 1) }
func (g hourDayGrid) Y(r int) float64    { return float64(r) }

func renderHeatmap(c Counts, path string) error {
	p := plot.New()
	p.Title.Text = "Heatmap of Trips by Hour and Day"
	p.X.Label.Text = "Day of Month"
	p.Y.Label.Text = "Hour of Day"

	h := plotter.NewHeatMap(hourDayGrid{counts: &c.HourDay}, palette.Heat(12, 1))
	if h.Max == h.Min {
		h.Max = h.Min + 1
	}
	p.Add(h)

	return p.Save(12*vg.Inch, 8*vg.Inch, path)
}
