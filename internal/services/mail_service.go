package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"strings"
	texttemplate "text/template"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"facturo/pkg/i18n"
)

// OverdueSubject is sent as-is whatever the account locale.
const OverdueSubject = "Rappel : Factures en retard de paiement"

type IMailService interface {
	SendMailToResetPassword(ctx context.Context, to, link string) error
	SendOverdueReminder(ctx context.Context, reminder OverdueReminder) error
}

type OverdueReminder struct {
	To       string
	Name     string
	Invoices []OverdueInvoiceRow
	Link     string
}

type OverdueInvoiceRow struct {
	Number  string
	DueDate string
	Total   string
}

// SMTPConfig holds SMTP and branding settings.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool // implicit TLS, usually 465
	RequireTLS bool // fail when STARTTLS is unavailable

	AppName string
}

type deliverFunc func(ctx context.Context, to string, msg []byte) error

type smtpMailService struct {
	cfg     SMTPConfig
	log     *zap.Logger
	html    *template.Template
	text    *texttemplate.Template
	deliver deliverFunc
	now     func() time.Time
}

func NewSMTPMailService(cfg SMTPConfig, log *zap.Logger) (IMailService, error) {
	html, err := template.New("html").Parse(baseHTMLTemplate)
	if err != nil {
		return nil, err
	}
	text, err := texttemplate.New("text").Parse(plainTextTemplate)
	if err != nil {
		return nil, err
	}

	s := &smtpMailService{
		cfg:  cfg,
		log:  log.Named("mail"),
		html: html,
		text: text,
		now:  time.Now,
	}
	s.deliver = s.sendSMTP
	if cfg.Host == "" {
		s.deliver = s.logOnly
	}
	return s, nil
}

// ------------------- Public API -------------------

func (s *smtpMailService) SendMailToResetPassword(ctx context.Context, to, link string) error {
	tag := i18n.FromContext(ctx)
	subject := i18n.T(tag, i18n.KeyMailResetSubject)
	return s.sendTemplate(ctx, tag, to, subject, EmailData{
		Title:     subject,
		Intro:     i18n.T(tag, i18n.KeyMailResetIntro),
		ButtonURL: link,
		ButtonTxt: i18n.T(tag, i18n.KeyMailResetButton),
	})
}

func (s *smtpMailService) SendOverdueReminder(ctx context.Context, r OverdueReminder) error {
	tag := i18n.FromContext(ctx)
	return s.sendTemplate(ctx, tag, r.To, OverdueSubject, EmailData{
		Title:     OverdueSubject,
		Intro:     i18n.T(tag, i18n.KeyMailOverdueIntro, r.Name),
		Invoices:  r.Invoices,
		ButtonURL: r.Link,
		ButtonTxt: i18n.T(tag, i18n.KeyMailOverdueButton),
	})
}

// ------------------- Rendering -------------------

type EmailData struct {
	Lang      string
	Title     string
	Intro     string
	Invoices  []OverdueInvoiceRow
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int

	ColNumber, ColDueDate, ColTotal string
	LinkFallback, Rights            string
}

const baseHTMLTemplate = `<!doctype html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f4f5f7; color: #1f2933; font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .container { max-width: 600px; margin: 32px auto; background: #ffffff; border-radius: 8px; overflow: hidden; }
    .header { padding: 24px 32px; border-bottom: 1px solid #e4e7eb; font-weight: 700; font-size: 20px; color: #1d4ed8; }
    .content { padding: 32px; }
    h1 { margin: 0 0 16px; font-size: 22px; }
    p { margin: 0 0 16px; line-height: 1.6; }
    table.invoices { width: 100%; border-collapse: collapse; margin: 16px 0 24px; }
    table.invoices th, table.invoices td { padding: 8px; border-bottom: 1px solid #e4e7eb; text-align: left; }
    table.invoices td.amount, table.invoices th.amount { text-align: right; }
    .btn { display: inline-block; padding: 12px 24px; background: #1d4ed8; color: #ffffff !important; text-decoration: none; border-radius: 6px; font-weight: 600; }
    .muted { color: #7b8794; font-size: 13px; }
    .footer { padding: 16px 32px; color: #7b8794; font-size: 12px; text-align: center; border-top: 1px solid #e4e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="content">
      <h1>{{.Title}}</h1>
      <p>{{.Intro}}</p>
      {{if .Invoices}}
      <table class="invoices">
        <thead><tr><th>{{.ColNumber}}</th><th>{{.ColDueDate}}</th><th class="amount">{{.ColTotal}}</th></tr></thead>
        <tbody>
        {{range .Invoices}}<tr><td>{{.Number}}</td><td>{{.DueDate}}</td><td class="amount">{{.Total}}</td></tr>
        {{end}}</tbody>
      </table>
      {{end}}
      {{if .ButtonURL}}
      <p><a class="btn" href="{{.ButtonURL}}">{{.ButtonTxt}}</a></p>
      <p class="muted">{{.LinkFallback}}<br><a href="{{.ButtonURL}}">{{.ButtonURL}}</a></p>
      {{end}}
    </div>
    <div class="footer">&copy; {{.Year}} {{.AppName}}. {{.Rights}}</div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}
{{range .Invoices}}
- {{.Number}} | {{.DueDate}} | {{.Total}}{{end}}
{{if .ButtonURL}}
{{.ButtonTxt}}: {{.ButtonURL}}
{{end}}
(c) {{.Year}} {{.AppName}}
`

func (s *smtpMailService) render(tag language.Tag, data EmailData) (html string, text string, err error) {
	data.Lang = i18n.Code(tag)
	data.AppName = s.cfg.AppName
	data.Year = s.now().Year()
	data.ColNumber = i18n.T(tag, i18n.KeyMailColumnNumber)
	data.ColDueDate = i18n.T(tag, i18n.KeyMailColumnDueDate)
	data.ColTotal = i18n.T(tag, i18n.KeyMailColumnTotal)
	data.LinkFallback = i18n.T(tag, i18n.KeyMailLinkFallback)
	data.Rights = i18n.T(tag, i18n.KeyMailRightsReserved)

	var hb, tb bytes.Buffer
	if err = s.html.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.text.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func (s *smtpMailService) sendTemplate(ctx context.Context, tag language.Tag, to, subject string, data EmailData) error {
	html, text, err := s.render(tag, data)
	if err != nil {
		return fmt.Errorf("render mail: %w", err)
	}
	msg, err := s.buildMessage(to, subject, html, text)
	if err != nil {
		return fmt.Errorf("build mail: %w", err)
	}
	if err := s.deliver(ctx, to, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// buildMessage assembles a multipart/alternative message, plain text first.
func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody string) ([]byte, error) {
	boundary := fmt.Sprintf("alt_%d", s.now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", s.now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	for _, part := range []struct{ contentType, body string }{
		{"text/plain", textBody},
		{"text/html", htmlBody},
	} {
		write("--%s\r\n", boundary)
		write("Content-Type: %s; charset=UTF-8\r\n", part.contentType)
		write("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
		qp := quotedprintable.NewWriter(&msg)
		if _, err := qp.Write([]byte(part.body)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
		write("\r\n")
	}
	write("--%s--\r\n", boundary)
	return msg.Bytes(), nil
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}

// ------------------- SMTP Send -------------------

func (s *smtpMailService) logOnly(_ context.Context, to string, msg []byte) error {
	s.log.Info("smtp disabled, mail not sent", zap.String("to", to), zap.Int("bytes", len(msg)))
	return nil
}

func (s *smtpMailService) sendSMTP(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	var conn net.Conn
	var err error
	if s.cfg.UseSSL {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsCfg}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Close()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
