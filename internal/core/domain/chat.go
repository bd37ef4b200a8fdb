package domain

// Conversation roles.
const (
	// RoleUser marks a message authored by the user.
	RoleUser = "user"

	// RoleAssistant marks a message authored by the assistant.
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the persisted conversation log.
// The log is append-only except for an explicit clear-all operation.
type ChatMessage struct {
	// ID is the monotonically increasing message id.
	ID int64

	// Role is RoleUser or RoleAssistant.
	Role string

	// Content is the message text.
	Content string

	// Timestamp is when the message was recorded (Unix seconds).
	// Ordering by timestamp, with ID as tiebreak, defines conversation order.
	Timestamp int64
}
