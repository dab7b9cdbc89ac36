package canonical

// ---------------------------------------------------------------------------
// Canonical Status Vocabulary
// ---------------------------------------------------------------------------

// StatusCode is the standardized order status shared by all platforms.
// Every normalization pass recomputes the code from the latest raw snapshot;
// there is no transition validation between passes.
type StatusCode int

const (
	// StatusNew indicates the order was created but not yet confirmed/paid
	StatusNew StatusCode = 1
	// StatusConfirmed indicates payment received or order confirmed by seller
	StatusConfirmed StatusCode = 2
	// StatusPackaging indicates the order is being prepared for handover
	StatusPackaging StatusCode = 3
	// StatusShipped indicates the parcel was handed to the carrier
	StatusShipped StatusCode = 4
	// StatusDelivered indicates the parcel reached the buyer
	StatusDelivered StatusCode = 5
	// StatusCompleted indicates the buyer confirmed receipt (terminal happy path)
	StatusCompleted StatusCode = 6
	// StatusReturning indicates a return is in progress
	StatusReturning StatusCode = 7
	// StatusReturned indicates the goods came back to the seller
	StatusReturned StatusCode = 8
	// StatusCanceled indicates the order was cancelled before fulfillment
	StatusCanceled StatusCode = 9
	// StatusRefunded indicates money was returned without goods movement
	StatusRefunded StatusCode = 10
	// StatusReturnAndRefunded indicates goods returned and money refunded
	StatusReturnAndRefunded StatusCode = 11
	// StatusReplacement indicates the dispute was resolved with a replacement
	StatusReplacement StatusCode = 12
)

// String returns the standardized status name
func (c StatusCode) String() string {
	switch c {
	case StatusNew:
		return "NEW"
	case StatusConfirmed:
		return "CONFIRMED"
	case StatusPackaging:
		return "PACKAGING"
	case StatusShipped:
		return "SHIPPED"
	case StatusDelivered:
		return "DELIVERED"
	case StatusCompleted:
		return "COMPLETED"
	case StatusReturning:
		return "RETURNING"
	case StatusReturned:
		return "RETURNED"
	case StatusCanceled:
		return "CANCELED"
	case StatusRefunded:
		return "REFUNDED"
	case StatusReturnAndRefunded:
		return "RETURN_AND_REFUNDED"
	case StatusReplacement:
		return "REPLACEMENT"
	default:
		return "UNKNOWN"
	}
}

// IsValid returns true if the code is part of the vocabulary
func (c StatusCode) IsValid() bool {
	return c >= StatusNew && c <= StatusReplacement
}

// AllStatusCodes returns the full vocabulary in code order
func AllStatusCodes() []StatusCode {
	return []StatusCode{
		StatusNew, StatusConfirmed, StatusPackaging, StatusShipped,
		StatusDelivered, StatusCompleted, StatusReturning, StatusReturned,
		StatusCanceled, StatusRefunded, StatusReturnAndRefunded, StatusReplacement,
	}
}

// IsDelivered returns true if the goods reached the buyer and stayed there
func (c StatusCode) IsDelivered() bool {
	return c == StatusDelivered || c == StatusCompleted
}

// IsCancelled returns true for cancellation-family codes
func (c StatusCode) IsCancelled() bool {
	return c == StatusCanceled
}

// IsReturned returns true when goods physically came back
func (c StatusCode) IsReturned() bool {
	return c == StatusReturned || c == StatusReturnAndRefunded
}

// IsRefundFamily returns true for codes that imply money went back to the buyer
func (c StatusCode) IsRefundFamily() bool {
	return c == StatusRefunded || c == StatusReturnAndRefunded || c == StatusReplacement
}

// IsTerminal returns true if no further movement is expected
func (c StatusCode) IsTerminal() bool {
	switch c {
	case StatusCompleted, StatusReturned, StatusCanceled,
		StatusRefunded, StatusReturnAndRefunded, StatusReplacement:
		return true
	default:
		return false
	}
}

// IsActive returns true while the order is still moving through fulfillment
func (c StatusCode) IsActive() bool {
	return !c.IsTerminal()
}

// IsRefundable returns true if a refund can still be requested from this state
func (c StatusCode) IsRefundable() bool {
	switch c {
	case StatusConfirmed, StatusPackaging, StatusShipped, StatusDelivered:
		return true
	default:
		return false
	}
}

// IsCancellable returns true if the buyer can still cancel from this state
func (c StatusCode) IsCancellable() bool {
	switch c {
	case StatusNew, StatusConfirmed, StatusPackaging:
		return true
	default:
		return false
	}
}

// SLAHours returns how long an order is expected to stay in this state
// before operations should look at it. Zero means no SLA applies.
func (c StatusCode) SLAHours() int {
	switch c {
	case StatusNew:
		return 24
	case StatusConfirmed:
		return 24
	case StatusPackaging:
		return 48
	case StatusShipped:
		return 120
	case StatusDelivered:
		return 168
	case StatusReturning:
		return 168
	default:
		return 0
	}
}
