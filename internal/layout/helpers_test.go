package layout

import (
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
)

var jan2025 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// jan returns 2025-01-<d>.
func jan(d int) time.Time {
	return domain.AddDays(jan2025, d-1)
}

func item(id string, startDay, endDay int) Item {
	return Item{ID: id, Interval: Interval{Start: jan(startDay), End: jan(endDay)}}
}
