package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/service"
)

var csvHeader = []string{"title", "start", "end", "status", "swimlane", "campaign", "cost", "currency", "region", "tags"}

// WriteCSV writes one row per activity, in the given order, with reference
// IDs resolved to names.
func WriteCSV(w io.Writer, activities []*domain.Activity, l service.Lookups) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, a := range activities {
		record := []string{
			a.Title,
			domain.FormatDate(a.StartDate),
			domain.FormatDate(a.EndDate),
			l.StatusName(a.StatusID),
			l.SwimlaneName(a.SwimlaneID),
			l.CampaignName(a.CampaignID),
			domain.FormatCents(a.CostCents),
			string(a.Currency),
			string(a.Region),
			a.Tags,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing activity %s: %w", a.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
