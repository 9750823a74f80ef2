package ports

import "context"

// Mailer sends outbound email. Implementations are best-effort: a failed send
// is logged by the caller and never rolls back the state change that
// triggered it.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
