package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending
// email. Template selects a known template rendered by the worker;
// otherwise Subject/Text/HTML are used as-is.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "confirmation_code"
	Data     map[string]any `json:"data,omitempty"`
}
