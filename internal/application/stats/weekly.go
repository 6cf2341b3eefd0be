// internal/application/stats/weekly.go
package stats

// WeeklyPoint is one day of the stock-movement chart.
type WeeklyPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"valor"`
}

// weeklyTemplate holds the placeholder series the dashboard shows until
// a transaction history exists to derive real movement from.
var weeklyTemplate = []WeeklyPoint{
	{Name: "Seg", Value: 4000},
	{Name: "Ter", Value: 3000},
	{Name: "Qua", Value: 2000},
	{Name: "Qui", Value: 2780},
	{Name: "Sex", Value: 1890},
	{Name: "Sáb", Value: 2390},
	{Name: "Dom", Value: 3490},
}

// WeeklySeries returns the synthetic 7-day movement series: all zeros
// while the inventory is empty, the placeholder values otherwise.
// TODO: derive from a transactions collection once one exists.
func WeeklySeries(hasData bool) []WeeklyPoint {
	out := make([]WeeklyPoint, len(weeklyTemplate))
	copy(out, weeklyTemplate)
	if !hasData {
		for i := range out {
			out[i].Value = 0
		}
	}
	return out
}
