package model

// Presentation metadata for dashboard charts. The values are fixed for
// compatibility with the frontend palette and must not be derived.

const DefaultChartColor = "#6B7280"

var categoryColors = map[string]string{
	"Food":          "#3B82F6",
	"Bills":         "#EF4444",
	"Travel":        "#10B981",
	"Shopping":      "#F59E0B",
	"Entertainment": "#8B5CF6",
	"Salary":        "#10B981",
	"Freelance":     "#3B82F6",
}

var statusColors = map[string]string{
	TaskStatusCompleted:  "#10B981",
	TaskStatusInProgress: "#F59E0B",
	TaskStatusPending:    "#EF4444",
}

var statusLabels = map[string]string{
	TaskStatusCompleted:  "Completed",
	TaskStatusInProgress: "In Progress",
	TaskStatusPending:    "Pending",
}

// CategoryColor returns the chart color for an expense category, falling
// back to the default color for unrecognized categories.
func CategoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return DefaultChartColor
}

// StatusColor returns the chart color for a task status.
func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return DefaultChartColor
}

// StatusLabel returns the display label for a task status. Unrecognized
// statuses are rendered as-is.
func StatusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return status
}

// CategorySlice is one segment of the expenses-by-category chart.
type CategorySlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// StatusSlice is one segment of the tasks-by-status chart.
type StatusSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}
