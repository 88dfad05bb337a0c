package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/service"
)

// FormatActivityTable is the table view: one row per activity plus a spend
// total.
func FormatActivityTable(activities []*domain.Activity, l service.Lookups) string {
	t := NewTable("ID", "TITLE", "START", "END", "STATUS", "SWIMLANE", "CAMPAIGN", "COST", "REGION").AlignRight(7)
	for _, a := range activities {
		status := Dim("--")
		if st, ok := l.Statuses[a.StatusID]; ok {
			status = Swatch(st.Color, st.Name)
		}
		campaign := l.CampaignName(a.CampaignID)
		if campaign == "" {
			campaign = Dim("--")
		}
		t.Row(
			TruncID(a.ID),
			Bold(Truncate(a.Title, 40)),
			domain.FormatDate(a.StartDate),
			domain.FormatDate(a.EndDate),
			status,
			l.SwimlaneName(a.SwimlaneID),
			campaign,
			Money(a.CostCents, a.Currency),
			string(a.Region),
		)
	}
	footer := fmt.Sprintf("%s %d  %s %s", Dim("activities"), len(activities), Dim("total"), Totals(activities))
	return RenderBox("Activities", t.String()+"\n"+footer)
}

// FormatActivityDetail renders every field of a, with the description as
// markdown.
func FormatActivityDetail(a *domain.Activity, l service.Lookups, width int) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(a.Title) + "\n")
	b.WriteString(Dim(a.ID) + "\n\n")

	var status *domain.Status
	if st, ok := l.Statuses[a.StatusID]; ok {
		status = st
	}
	statusName := "--"
	if status != nil {
		statusName = status.Name
	}
	campaign := l.CampaignName(a.CampaignID)
	if campaign == "" {
		campaign = "--"
	}

	field := func(name, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleMuted.Render(fmt.Sprintf("%-9s", name)), value))
	}
	field("DATES", DateRange(a.StartDate, a.EndDate))
	field("SWIMLANE", l.SwimlaneName(a.SwimlaneID))
	field("STATUS", Swatch(a.DisplayColor(status), statusName))
	field("CAMPAIGN", campaign)
	field("COST", Money(a.CostCents, a.Currency)+" "+Dim(string(a.Currency)))
	field("REGION", string(a.Region))
	if a.Tags != "" {
		field("TAGS", StyleTag.Render(a.Tags))
	}
	if a.Color != "" {
		field("COLOR", Swatch(a.Color, a.Color))
	}

	if desc := Markdown(a.Description, width); desc != "" {
		b.WriteString("\n" + desc + "\n")
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}
