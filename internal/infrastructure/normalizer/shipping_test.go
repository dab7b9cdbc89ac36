package normalizer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassifyShipping_KnownCarrier(t *testing.T) {
	info := ClassifyShipping("SN1", "Giao Hàng Nhanh", "GHN123", decimal.NewFromInt(15000), decimal.NewFromInt(30000))

	assert.Equal(t, "EXPRESS", info.ServiceType)
	assert.True(t, info.SupportsCOD)
	assert.True(t, info.IsExpress)
	assert.True(t, info.HasTracking)
	assert.Equal(t, 2, info.AvgDeliveryDays)
	assert.True(t, info.PlatformSubsidy.Equal(decimal.NewFromInt(15000)))
}

func TestClassifyShipping_UnknownCarrier(t *testing.T) {
	info := ClassifyShipping("SN2", "Some Local Courier", "", decimal.NewFromInt(20000), decimal.NewFromInt(20000))

	assert.Equal(t, "STANDARD", info.ServiceType)
	assert.False(t, info.SupportsCOD)
	assert.False(t, info.HasTracking)
	assert.Equal(t, 4, info.AvgDeliveryDays)
	assert.True(t, info.PlatformSubsidy.IsZero())
}

func TestClassifyShipping_NoNegativeSubsidy(t *testing.T) {
	// Buyer paying more than the billed fee must not produce a negative subsidy
	info := ClassifyShipping("SN3", "SPX", "T1", decimal.NewFromInt(30000), decimal.NewFromInt(25000))
	assert.True(t, info.PlatformSubsidy.IsZero())
}

func TestClassifyShipping_SameDay(t *testing.T) {
	info := ClassifyShipping("SN4", "GrabExpress", "G1", decimal.Zero, decimal.NewFromInt(40000))

	assert.Equal(t, "SAME_DAY", info.ServiceType)
	assert.False(t, info.SupportsCOD)
	assert.Equal(t, 1, info.AvgDeliveryDays)
}
