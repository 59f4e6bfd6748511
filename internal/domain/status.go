package domain

// Severity classifies a status message.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarn    Severity = "warn"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// StatusMessage is the single transient status line. Empty Text means the
// slot is cleared.
type StatusMessage struct {
	Text     string
	Severity Severity
}

// Cleared reports whether the message represents an empty slot.
func (m StatusMessage) Cleared() bool {
	return m.Text == ""
}
