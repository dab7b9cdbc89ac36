package persistence

import (
	"context"
	"strconv"

	"github.com/ordersync/backend/internal/domain/canonical"
)

// Reference vocabulary for the status master tables. Rows are upserted on
// startup, so adding an entry here is the whole change when a platform grows
// a new status.

// platformStatusEntry declares one known platform status and its mapping
type platformStatusEntry struct {
	code string
	name string
	std  canonical.StatusCode
}

var shopeeVocabulary = []platformStatusEntry{
	{"UNPAID", "Unpaid", canonical.StatusNew},
	{"PENDING", "Pending", canonical.StatusNew},
	{"READY_TO_SHIP", "Ready To Ship", canonical.StatusPackaging},
	{"PROCESSED", "Processed", canonical.StatusPackaging},
	{"RETRY_SHIP", "Retry Ship", canonical.StatusPackaging},
	{"SHIPPED", "Shipped", canonical.StatusShipped},
	{"TO_CONFIRM_RECEIVE", "To Confirm Receive", canonical.StatusDelivered},
	{"COMPLETED", "Completed", canonical.StatusCompleted},
	{"TO_RETURN", "To Return", canonical.StatusReturning},
	{"IN_CANCEL", "In Cancel", canonical.StatusCanceled},
	{"CANCELLED", "Cancelled", canonical.StatusCanceled},
}

var lazadaVocabulary = []platformStatusEntry{
	{"unpaid", "Unpaid", canonical.StatusNew},
	{"pending", "Pending", canonical.StatusConfirmed},
	{"packed", "Packed", canonical.StatusPackaging},
	{"repacked", "Repacked", canonical.StatusPackaging},
	{"ready_to_ship", "Ready To Ship", canonical.StatusPackaging},
	{"shipped", "Shipped", canonical.StatusShipped},
	{"delivered", "Delivered", canonical.StatusDelivered},
	{"confirmed", "Confirmed", canonical.StatusCompleted},
	{"failed", "Delivery Failed", canonical.StatusReturned},
	// Lazada emits both spellings depending on API version
	{"canceled", "Canceled", canonical.StatusCanceled},
	{"cancelled", "Canceled", canonical.StatusCanceled},
}

var tiktokVocabulary = []platformStatusEntry{
	{strconv.Itoa(-1), "Cancelled", canonical.StatusCanceled},
	{strconv.Itoa(0), "Unpaid", canonical.StatusNew},
	{strconv.Itoa(1), "Awaiting Shipment", canonical.StatusConfirmed},
	{strconv.Itoa(2), "Awaiting Collection", canonical.StatusPackaging},
	{strconv.Itoa(3), "In Transit", canonical.StatusShipped},
	{strconv.Itoa(4), "Delivered", canonical.StatusDelivered},
	{strconv.Itoa(5), "Completed", canonical.StatusCompleted},
}

// StatusVocabulary returns the full status master rows for every platform
func StatusVocabulary() []canonical.Status {
	byPlatform := map[canonical.Platform][]platformStatusEntry{
		canonical.PlatformShopee: shopeeVocabulary,
		canonical.PlatformLazada: lazadaVocabulary,
		canonical.PlatformTikTok: tiktokVocabulary,
	}

	rows := make([]canonical.Status, 0, len(shopeeVocabulary)+len(lazadaVocabulary)+len(tiktokVocabulary))
	for _, platform := range canonical.AllPlatforms() {
		for _, entry := range byPlatform[platform] {
			rows = append(rows, canonical.Status{
				StatusKey:          canonical.StatusKey(platform, entry.code),
				Platform:           string(platform),
				PlatformStatusCode: entry.code,
				PlatformStatusName: entry.name,
				StandardCode:       int(entry.std),
				StandardName:       entry.std.String(),
			})
		}
	}
	return rows
}

// SeedVocabulary upserts the status master rows. Safe to run on every start.
func (r *Repositories) SeedVocabulary(ctx context.Context) error {
	_, err := r.Statuses.Upsert(ctx, StatusVocabulary())
	return err
}
