package vars

import (
	"sync/atomic"
	"unsafe"

	"design-folio/model"
)

// rateCardPtr holds a pointer to the current rate-card snapshot served by
// the public listing endpoint. Lock-free reads, atomic replacement on cron
// refresh.
var rateCardPtr unsafe.Pointer

// GetRateCards returns the current snapshot. Safe for concurrent access.
func GetRateCards() []model.RateCategory {
	ptr := atomic.LoadPointer(&rateCardPtr)
	if ptr == nil {
		return nil
	}
	return *(*[]model.RateCategory)(ptr)
}

// SetRateCards atomically replaces the snapshot. The input is copied so
// later mutation by the caller cannot leak into readers. Pass nil or an
// empty slice to clear.
func SetRateCards(categories []model.RateCategory) {
	var ptr unsafe.Pointer

	if len(categories) > 0 {
		snapshot := make([]model.RateCategory, len(categories))
		copy(snapshot, categories)
		ptr = unsafe.Pointer(&snapshot)
	}

	atomic.StorePointer(&rateCardPtr, ptr)
}

func init() {
	atomic.StorePointer(&rateCardPtr, nil)
}
