package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/service"
)

// FormatCalendarList renders calendars with the active one marked.
func FormatCalendarList(calendars []*domain.Calendar, activeID string) string {
	t := NewTable("", "ID", "NAME", "CREATED")
	for _, c := range calendars {
		marker := " "
		if c.ID == activeID {
			marker = StyleOK.Render("●")
		}
		t.Row(marker, TruncID(c.ID), Bold(c.Name), Dim(c.CreatedAt.Format("Jan 2, 2006")))
	}
	return RenderBox("Calendars", t.String())
}

// FormatCalendarOverview renders a snapshot's reference data and totals.
func FormatCalendarOverview(snap *service.Snapshot) string {
	var b []string
	b = append(b, fmt.Sprintf("%s  %s", Bold(snap.Calendar.Name), TruncID(snap.Calendar.ID)))
	b = append(b, "")
	b = append(b, fmt.Sprintf("%s  %d", StyleMuted.Render("ACTIVITIES"), len(snap.Activities)))
	b = append(b, fmt.Sprintf("%s  %s", StyleMuted.Render("SPEND     "), Totals(snap.Activities)))
	b = append(b, "")
	b = append(b, Header("Swimlanes"))
	b = append(b, FormatSwimlanes(snap.Swimlanes))
	b = append(b, Header("Statuses"))
	b = append(b, FormatStatuses(snap.Statuses))
	if len(snap.Campaigns) > 0 {
		b = append(b, Header("Campaigns"))
		b = append(b, FormatCampaigns(snap.Campaigns))
	}
	return RenderBox("", strings.TrimRight(strings.Join(b, "\n"), "\n"))
}

func FormatSwimlanes(lanes []*domain.Swimlane) string {
	if len(lanes) == 0 {
		return Dim("No swimlanes yet.") + "\n"
	}
	t := NewTable("#", "ID", "NAME").AlignRight(0)
	for i, sl := range lanes {
		t.Row(strconv.Itoa(i+1), TruncID(sl.ID), sl.Name)
	}
	return t.String()
}

func FormatStatuses(statuses []*domain.Status) string {
	t := NewTable("ID", "STATUS", "COLOR")
	for _, st := range statuses {
		t.Row(TruncID(st.ID), Swatch(st.Color, st.Name), Dim(st.Color))
	}
	return t.String()
}

func FormatCampaigns(campaigns []*domain.Campaign) string {
	if len(campaigns) == 0 {
		return Dim("No campaigns yet.") + "\n"
	}
	t := NewTable("ID", "NAME")
	for _, c := range campaigns {
		t.Row(TruncID(c.ID), c.Name)
	}
	return t.String()
}
