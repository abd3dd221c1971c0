package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either set Subject/Text/HTML directly or name a Template plus Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome" or "order_confirmation"
	Data     map[string]any `json:"data,omitempty"`
}

const (
	TemplateWelcome           = "welcome"
	TemplateOrderConfirmation = "order_confirmation"
)
