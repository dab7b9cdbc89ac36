package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeString(t *testing.T) {
	assert.Equal(t, "NEW", StatusNew.String())
	assert.Equal(t, "COMPLETED", StatusCompleted.String())
	assert.Equal(t, "RETURN_AND_REFUNDED", StatusReturnAndRefunded.String())
	assert.Equal(t, "UNKNOWN", StatusCode(0).String())
	assert.Equal(t, "UNKNOWN", StatusCode(99).String())
}

func TestStatusCodeIsValid(t *testing.T) {
	for _, code := range AllStatusCodes() {
		assert.True(t, code.IsValid(), code.String())
	}
	assert.False(t, StatusCode(0).IsValid())
	assert.False(t, StatusCode(13).IsValid())
}

func TestStatusCodeBehavior(t *testing.T) {
	tests := []struct {
		code        StatusCode
		delivered   bool
		cancelled   bool
		returned    bool
		refund      bool
		terminal    bool
		refundable  bool
		cancellable bool
		slaHours    int
	}{
		{StatusNew, false, false, false, false, false, false, true, 24},
		{StatusConfirmed, false, false, false, false, false, true, true, 24},
		{StatusPackaging, false, false, false, false, false, true, true, 48},
		{StatusShipped, false, false, false, false, false, true, false, 120},
		{StatusDelivered, true, false, false, false, false, true, false, 168},
		{StatusCompleted, true, false, false, false, true, false, false, 0},
		{StatusReturning, false, false, false, false, false, false, false, 168},
		{StatusReturned, false, false, true, false, true, false, false, 0},
		{StatusCanceled, false, true, false, false, true, false, false, 0},
		{StatusRefunded, false, false, false, true, true, false, false, 0},
		{StatusReturnAndRefunded, false, false, true, true, true, false, false, 0},
		{StatusReplacement, false, false, false, true, true, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.delivered, tt.code.IsDelivered())
			assert.Equal(t, tt.cancelled, tt.code.IsCancelled())
			assert.Equal(t, tt.returned, tt.code.IsReturned())
			assert.Equal(t, tt.refund, tt.code.IsRefundFamily())
			assert.Equal(t, tt.terminal, tt.code.IsTerminal())
			assert.Equal(t, !tt.terminal, tt.code.IsActive())
			assert.Equal(t, tt.refundable, tt.code.IsRefundable())
			assert.Equal(t, tt.cancellable, tt.code.IsCancellable())
			assert.Equal(t, tt.slaHours, tt.code.SLAHours())
		})
	}
}

func TestPlatform(t *testing.T) {
	assert.True(t, PlatformShopee.IsValid())
	assert.True(t, PlatformLazada.IsValid())
	assert.True(t, PlatformTikTok.IsValid())
	assert.False(t, Platform("AMAZON").IsValid())

	assert.Equal(t, "SP", PlatformShopee.Tag())
	assert.Equal(t, "LZ", PlatformLazada.Tag())
	assert.Equal(t, "TT", PlatformTikTok.Tag())
	assert.Equal(t, "XX", Platform("AMAZON").Tag())

	assert.Len(t, AllPlatforms(), 3)
}

func TestStatusKey(t *testing.T) {
	assert.Equal(t, "SHOPEE_COMPLETED", StatusKey(PlatformShopee, "COMPLETED"))
	assert.Equal(t, "TIKTOK_-1", StatusKey(PlatformTikTok, "-1"))
}
