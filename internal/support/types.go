package support

// FAQ entry as served by /support/faqs.
type FAQ struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Ticket statuses move open -> in_progress -> resolved.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
)

type Ticket struct {
	ID            int    `json:"id"`
	TicketNumber  string `json:"ticket_number"`
	Subject       string `json:"subject"`
	Message       string `json:"message,omitempty"`
	Channel       string `json:"channel,omitempty"`
	Status        string `json:"status"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

// ContactForm opens a ticket through the contact form channel.
type ContactForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
	Channel string `json:"channel"`
}

// AssistantReply is one turn of the scripted assistant.
type AssistantReply struct {
	Answer      string   `json:"answer"`
	Suggestions []string `json:"suggestions"`
}

// DefaultSuggestions are the static chips shown before the assistant has
// offered anything better.
var DefaultSuggestions = []string{
	"How long does shipping take?",
	"How can I track my order?",
	"How do returns/refunds work?",
	"I forgot my password. What should I do?",
	"Why is my review not visible?",
}
