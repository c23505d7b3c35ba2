package report

import (
	"fmt"
	"strings"

	"budget-control/internal/production"
)

func MixMarkdown(r production.MixResult) string {
	var b strings.Builder
	b.WriteString("# Production mix\n\n")
	b.WriteString("| Product | Quantity | Margin | At demand cap |\n|---|---:|---:|---|\n")
	for _, p := range r.Products {
		atCap := ""
		if p.AtDemand {
			atCap = "yes"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", p.Name, Quantity(p.Quantity, 2), Money(p.Margin), atCap)
	}
	b.WriteString("\n| Resource | Capacity | Used | Slack | Binding |\n|---|---:|---:|---:|---|\n")
	for _, u := range r.Resources {
		binding := ""
		if u.Binding {
			binding = "yes"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			u.Name, Quantity(u.Capacity, 2), Quantity(u.Used, 2), Quantity(u.Slack, 2), binding)
	}
	fmt.Fprintf(&b, "\n**Total margin: %s**\n", Money(r.TotalMargin))
	return b.String()
}

func CapacityMarkdown(r production.CapacityResult) string {
	var b strings.Builder
	b.WriteString("# Production capacity\n\n")
	b.WriteString("| Item | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Available hours | %s |\n", Quantity(r.AvailableHours, 0))
	fmt.Fprintf(&b, "| Theoretical capacity | %s |\n", Quantity(r.TheoreticalCapacity, 0))
	fmt.Fprintf(&b, "| Labour cost | %s |\n", Money(r.LabourCost))
	fmt.Fprintf(&b, "| Machine cost | %s |\n", Money(r.MachineCost))
	fmt.Fprintf(&b, "| Variable cost | %s |\n", Money(r.VariableCost))
	fmt.Fprintf(&b, "| **Total cost** | **%s** |\n", Money(r.TotalCost))
	fmt.Fprintf(&b, "| Unit cost | %s |\n", Money(r.UnitCost))
	fmt.Fprintf(&b, "| Unit margin | %s |\n", Money(r.UnitMargin))
	fmt.Fprintf(&b, "| Total margin | %s |\n", Money(r.TotalMargin))
	if !r.WithinCapacity {
		b.WriteString("\nPlanned volume exceeds the theoretical capacity.\n")
	}
	if r.UnitMargin < 0 {
		b.WriteString("\nProduction is not profitable at this unit price.\n")
	}
	return b.String()
}

func ScheduleMarkdown(r production.ScheduleResult) string {
	var b strings.Builder
	b.WriteString("# Production schedule\n\n")
	b.WriteString("| Day | Production | Sales | Stock |\n|---:|---:|---:|---:|\n")
	for _, d := range r.Days {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", d.Day, Quantity(d.Production, 0), Quantity(d.Sales, 0), Quantity(d.Stock, 0))
	}
	fmt.Fprintf(&b, "\nFinal stock %s, minimum %s\n", Quantity(r.FinalStock, 0), Quantity(r.MinStock, 0))
	if r.FirstBelowSafety > 0 {
		fmt.Fprintf(&b, "\nStock first falls below the safety stock on day %d.\n", r.FirstBelowSafety)
	}
	return b.String()
}
