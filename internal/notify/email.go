package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// EmailNotifier sends events over SMTP to the session user's address.
type EmailNotifier struct {
	host      string
	port      string
	username  string
	password  string
	recipient string
}

func NewEmailNotifier(host, port, username, password, recipient string) *EmailNotifier {
	return &EmailNotifier{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		recipient: recipient,
	}
}

func (n *EmailNotifier) Notify(event Event) error {
	if n.recipient == "" {
		return fmt.Errorf("email notifier: no recipient address configured")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.username)
	fmt.Fprintf(&msg, "To: %s\r\n", n.recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", event.Title())
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(event.Body())
	msg.WriteString("\r\n")

	addr := n.host + ":" + n.port
	auth := smtp.PlainAuth("", n.username, n.password, n.host)
	if err := smtp.SendMail(addr, auth, n.username, []string{n.recipient}, []byte(msg.String())); err != nil {
		return fmt.Errorf("email notifier: %w", err)
	}
	return nil
}
