package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"tourdesk/internal/models"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"550", "$550"},
		{"1500", "$1,500"},
		{"1500.5", "$1,500.50"},
		{"27000", "$27,000"},
		{"1234567.891", "$1,234,567.89"},
		{"-2400", "-$2,400"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 1, ClampQuantity(0, 10))
	assert.Equal(t, 1, ClampQuantity(-3, 10))
	assert.Equal(t, 10, ClampQuantity(11, 10))
	assert.Equal(t, 4, ClampQuantity(4, 10))
	assert.Equal(t, 1, ClampQuantity(5, 0))
}

func TestMaxQuantity(t *testing.T) {
	show := models.Show{VIPSeats: 7, StandardSeats: 40}
	assert.Equal(t, 7, MaxQuantity(show, models.TierVIP, DefaultMaxPerOrder))
	assert.Equal(t, 10, MaxQuantity(show, models.TierStandard, DefaultMaxPerOrder))
	assert.Equal(t, 0, MaxQuantity(models.Show{}, models.TierVIP, DefaultMaxPerOrder))
}

func TestTotal(t *testing.T) {
	show := models.Show{StandardPrice: decimal.NewFromInt(650), VIPPrice: decimal.NewFromInt(1500)}
	assert.True(t, decimal.NewFromInt(4500).Equal(Total(show, models.TierVIP, 3)))
	assert.True(t, decimal.NewFromInt(650).Equal(Total(show, models.TierStandard, 1)))
}
