package components

import (
	"fmt"
	"strings"
)

// Weekday labels (Monday first)
var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Heat intensity colors for tview
var heatColors = []string{"gray", "blue", "green", "yellow", "red"}

// RenderHeatmap draws the weekday x hour matrix with tview color tags
func RenderHeatmap(matrix [7][24]int, maxValue int) string {
	var sb strings.Builder

	sb.WriteString("      ")
	for h := 0; h < 24; h++ {
		if h%3 == 0 {
			fmt.Fprintf(&sb, "[white]%02d[-]    ", h)
		}
	}
	sb.WriteString("\n")

	for day := range matrix {
		fmt.Fprintf(&sb, "[yellow]%-5s[-] ", weekdays[day])
		for _, val := range matrix[day] {
			fmt.Fprintf(&sb, "[%s]██[-]", heatColors[Intensity(val, maxValue)])
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n      [gray]Low[-] ")
	for _, color := range heatColors {
		fmt.Fprintf(&sb, "[%s]██[-]", color)
	}
	sb.WriteString(" [red]High[-]")

	return sb.String()
}

// Intensity maps a cell value onto a heat color index
func Intensity(val, maxValue int) int {
	if maxValue <= 0 || val <= 0 {
		return 0
	}
	return min(val*(len(heatColors)-1)/maxValue, len(heatColors)-1)
}

// Peak returns the busiest weekday/hour cell and the matrix total
func Peak(matrix [7][24]int) (peakDay, peakHour, total int) {
	best := 0
	for day := range matrix {
		for hour, val := range matrix[day] {
			total += val
			if val > best {
				best = val
				peakDay, peakHour = day, hour
			}
		}
	}
	return peakDay, peakHour, total
}
