package cli

import (
	"strings"
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/layout"
)

// zoomValue is a pflag.Value for --zoom.
type zoomValue struct{ z *layout.Zoom }

func (v zoomValue) String() string {
	if v.z == nil {
		return ""
	}
	return string(*v.z)
}

func (v zoomValue) Set(s string) error {
	z, err := layout.ParseZoom(strings.ToLower(s))
	if err != nil {
		return err
	}
	*v.z = z
	return nil
}

func (zoomValue) Type() string { return "year|quarter|month" }

// rowHeightValue is a pflag.Value for --row-height.
type rowHeightValue struct{ r *layout.RowHeight }

func (v rowHeightValue) String() string {
	if v.r == nil || *v.r == 0 {
		return ""
	}
	return v.r.String()
}

func (v rowHeightValue) Set(s string) error {
	r, err := layout.ParseRowHeight(strings.ToLower(s))
	if err != nil {
		return err
	}
	*v.r = r
	return nil
}

func (rowHeightValue) Type() string { return "compact|standard|expanded" }

// currencyValue is a pflag.Value for --currency.
type currencyValue struct{ c *domain.Currency }

func (v currencyValue) String() string {
	if v.c == nil {
		return ""
	}
	return string(*v.c)
}

func (v currencyValue) Set(s string) error {
	c := domain.Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !domain.ValidCurrencies[c] {
		return domain.Invalid("currency", "invalid currency %q (want USD, GBP or EUR)", s)
	}
	*v.c = c
	return nil
}

func (currencyValue) Type() string { return "USD|GBP|EUR" }

// regionValue is a pflag.Value for --region.
type regionValue struct{ r *domain.Region }

func (v regionValue) String() string {
	if v.r == nil {
		return ""
	}
	return string(*v.r)
}

func (v regionValue) Set(s string) error {
	r := domain.Region(strings.ToUpper(strings.TrimSpace(s)))
	if !domain.ValidRegions[r] {
		return domain.Invalid("region", "invalid region %q (want US, EMEA or ROW)", s)
	}
	*v.r = r
	return nil
}

func (regionValue) Type() string { return "US|EMEA|ROW" }

// dateFlag parses an optional YYYY-MM-DD flag value. ok is false when the
// flag was left empty.
func dateFlag(field, s string) (t time.Time, ok bool, err error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, false, nil
	}
	t, err = domain.ParseDate(s)
	if err != nil {
		return time.Time{}, false, domain.Invalid(field, "%s: %v", field, err)
	}
	return t, true, nil
}
