package constant

import "time"

const (
	RateCardSnapshotKey = "ratecard:snapshot"
	LoginThrottleLock   = "auth:login_lock:%s"
	EnquiryEmailLock    = "enquiry:email_lock:%s"
)

const (
	LoginThrottleLockTTL = 1 * time.Minute
	EnquiryEmailLockTTL  = 5 * time.Minute
	RateCardSnapshotTTL  = 10 * time.Minute
)
