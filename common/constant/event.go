package constant

const (
	QueueStreamName = "design_folio_queue_stream"
)

const (
	AllWildcard     = "events.>"
	EnquiryWildcard = "events.enquiry.>"

	SubjectEnquiryReceived = "events.enquiry.received"
)
