package ports

// Mail is a single outbound message handed to the notifier.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Notifier accepts mail for best-effort asynchronous delivery. Enqueue never
// blocks the caller on delivery and delivery failures never propagate back.
type Notifier interface {
	Enqueue(mail Mail)
}
