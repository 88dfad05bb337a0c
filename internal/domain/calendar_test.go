package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	got, err := ValidateName("name", "  Paid Social ")
	require.NoError(t, err)
	assert.Equal(t, "Paid Social", got)

	_, err = ValidateName("name", "\t ")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestStatusValidate(t *testing.T) {
	s := &Status{Name: " Booked ", Color: "#10b981"}
	require.NoError(t, s.Validate())
	assert.Equal(t, "Booked", s.Name)

	for _, bad := range []string{"10B981", "#10B98", "#GGGGGG", ""} {
		s := &Status{Name: "x", Color: bad}
		assert.ErrorIs(t, s.Validate(), ErrInvalid, bad)
	}
}

func TestDefaultStatuses(t *testing.T) {
	require.Len(t, DefaultStatuses, 3)
	assert.Equal(t, "Considering", DefaultStatuses[0].Name)
	for _, s := range DefaultStatuses {
		assert.NoError(t, ValidateHexColor(s.Color))
	}
}

func TestCurrencySymbol(t *testing.T) {
	assert.Equal(t, "$", CurrencyUSD.Symbol())
	assert.Equal(t, "£", CurrencyGBP.Symbol())
	assert.Equal(t, "€", CurrencyEUR.Symbol())
}
