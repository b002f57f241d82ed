package notify

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"
)

// sendMailFunc matches smtp.SendMail.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// mailEndpoint delivers through an SMTP relay.
type mailEndpoint struct {
	user, password string
	smtpAddr       string
	from           string
	to             []string
	sendMail       sendMailFunc
}

func newMailEndpoint(address string) (*mailEndpoint, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	domain := u.Hostname()
	if domain == "" {
		return nil, fmt.Errorf("%w: mailto:// needs a domain", ErrInvalidAddress)
	}
	e := &mailEndpoint{sendMail: smtp.SendMail}
	if u.User != nil {
		e.user = u.User.Username()
		e.password, _ = u.User.Password()
	}

	q := u.Query()
	e.smtpAddr = q.Get("smtp")
	if e.smtpAddr == "" {
		e.smtpAddr = "smtp." + domain
	}
	if _, _, err := net.SplitHostPort(e.smtpAddr); err != nil {
		port := "587"
		if u.Port() != "" {
			port = u.Port()
		}
		e.smtpAddr = net.JoinHostPort(e.smtpAddr, port)
	}

	e.from = q.Get("from")
	if e.from == "" {
		if e.user == "" {
			return nil, fmt.Errorf("%w: mailto:// needs a user or a from= parameter", ErrInvalidAddress)
		}
		e.from = e.user + "@" + domain
	}
	for _, to := range strings.Split(q.Get("to"), ",") {
		if to = strings.TrimSpace(to); to != "" {
			e.to = append(e.to, to)
		}
	}
	if len(e.to) == 0 {
		e.to = []string{e.from}
	}
	return e, nil
}

func (e *mailEndpoint) Name() string {
	return "mailto://" + e.from + "@" + e.smtpAddr
}

func (e *mailEndpoint) message(n Notification) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", e.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(e.to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject(n.Title))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	body := strings.ReplaceAll(n.Body, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

// subject folds line breaks into spaces and RFC 2047 encodes the title, so
// a command line in it cannot start another header.
func subject(title string) string {
	title = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(title)
	return mime.QEncoding.Encode("utf-8", title)
}

// Send runs the blocking SMTP exchange in a goroutine so that the attempt
// still honours ctx; a stuck exchange is abandoned, not awaited.
func (e *mailEndpoint) Send(ctx context.Context, n Notification) error {
	var auth smtp.Auth
	if e.password != "" {
		host, _, _ := net.SplitHostPort(e.smtpAddr)
		auth = smtp.PlainAuth("", e.user, e.password, host)
	}
	msg := e.message(n)

	done := make(chan error, 1)
	go func() {
		done <- e.sendMail(e.smtpAddr, auth, e.from, e.to, msg)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
