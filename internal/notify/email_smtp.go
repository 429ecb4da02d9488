package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/technosurge/leadflow/pkg/logging"
)

// SMTPSender sends emails over SMTP with implicit TLS (port 465). This is the
// transport Gmail app passwords use.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	fromName string
	logger   *logging.Logger
}

// SMTPConfig holds configuration for the SMTP sender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

// NewSMTPSender creates a new SMTP email sender. The username doubles as the
// From address.
func NewSMTPSender(cfg SMTPConfig, logger *logging.Logger) *SMTPSender {
	if cfg.Username == "" || cfg.Password == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == 0 {
		cfg.Port = 465
	}
	if cfg.FromName == "" {
		cfg.FromName = "Technosurge"
	}
	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		fromName: cfg.FromName,
		logger:   logger,
	}
}

// Send sends an email over an implicit-TLS SMTP connection.
func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	addr := net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port))

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: s.host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		s.logger.Error("smtp dial failed", "error", err, "addr", addr)
		return fmt.Errorf("notify: smtp dial %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("notify: smtp handshake: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("notify: smtp auth: %w", err)
	}
	if err := client.Mail(s.username); err != nil {
		return fmt.Errorf("notify: smtp mail from: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("notify: smtp rcpt to: %w", err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("notify: smtp data: %w", err)
	}
	if _, err := wc.Write([]byte(s.buildMessage(msg))); err != nil {
		wc.Close()
		return fmt.Errorf("notify: smtp write body: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("notify: smtp close body: %w", err)
	}
	if err := client.Quit(); err != nil {
		s.logger.Debug("smtp quit failed", "error", err)
	}

	s.logger.Info("email sent via smtp", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (s *SMTPSender) buildMessage(msg EmailMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.fromName, s.username)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return b.String()
}

// Ensure interface compliance
var _ EmailSender = (*SMTPSender)(nil)
