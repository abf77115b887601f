package handlers

import (
	"net/http"
	"path"

	"ridedemand/charts"

	"github.com/gin-gonic/gin"
)

// ChartsURLPrefix is where the chart directory is mounted.
const ChartsURLPrefix = "/charts"

type dashboardChart struct {
	Title string
	URL   string
}

var dashboardCharts = []dashboardChart{
	{"Total trips per hour", path.Join(ChartsURLPrefix, charts.HourFile)},
	{"Total trips by day of the week", path.Join(ChartsURLPrefix, charts.DayOfWeekFile)},
	{"Total trips by month", path.Join(ChartsURLPrefix, charts.MonthFile)},
	{"Trips by hour and day of month", path.Join(ChartsURLPrefix, charts.HeatmapFile)},
}

func Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", gin.H{"Charts": dashboardCharts})
}
