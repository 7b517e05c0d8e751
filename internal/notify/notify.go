package notify

// Kind selects the message a dispatch produces.
type Kind string

// Notification kinds.
const (
	KindAssignment        Kind = "assignment"
	KindStatusUpdate      Kind = "status_update"
	KindDeliveryCompleted Kind = "delivery_completed"
)

// Status is the outcome of one channel attempt.
type Status string

// Channel attempt outcomes. Skipped means the channel is not configured;
// it is not an error.
const (
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result is the per-channel outcome of a dispatch.
type Result struct {
	Channel string
	Status  Status
	Err     error
}

// Message is the channel-agnostic notification content. Channels pick the
// recipient field they need.
type Message struct {
	Kind          Kind
	OrderID       string
	PartnerID     string
	PartnerPhone  string
	CustomerName  string
	CustomerPhone string
	Body          string
}
