package notifyinfra

import (
	"context"
	"encoding/json"

	"github.com/easilyhq/easily/board/notify"
	"github.com/easilyhq/easily/pkg/logx"
)

// ConsoleMailer logs emails instead of sending them. Used when no SMTP
// relay is configured, so local runs still show what would have gone out.
type ConsoleMailer struct{}

// NewConsoleMailer creates a log-only mailer
func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

// Send logs the email as JSON
func (m *ConsoleMailer) Send(ctx context.Context, email *notify.ApplicationEmail) error {
	payload, err := json.Marshal(email)
	if err != nil {
		return err
	}
	logx.Infof("mail (console): %s", payload)
	return nil
}

var _ notify.Mailer = (*ConsoleMailer)(nil)
