package email

import "context"

// MockMailer records sent mails instead of delivering them
type MockMailer struct {
	Sent []*Email
}

// SendEmail records the mail
func (m *MockMailer) SendEmail(ctx context.Context, mail *Email) error {
	m.Sent = append(m.Sent, mail)
	return nil
}
