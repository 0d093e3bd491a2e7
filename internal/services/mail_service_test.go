package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"facturo/pkg/i18n"
)

type capturedMail struct {
	to  string
	msg []byte
}

func newCapturingMailer(t *testing.T) (*smtpMailService, *[]capturedMail) {
	t.Helper()
	svc, err := NewSMTPMailService(SMTPConfig{
		From:     "no-reply@facturo.test",
		FromName: "Facturo Équipe",
		AppName:  "Facturo",
	}, zap.NewNop())
	require.NoError(t, err)

	s := svc.(*smtpMailService)
	s.now = func() time.Time { return time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC) }
	var sent []capturedMail
	s.deliver = func(_ context.Context, to string, msg []byte) error {
		sent = append(sent, capturedMail{to: to, msg: msg})
		return nil
	}
	return s, &sent
}

// parts decodes the message and returns its bodies keyed by content type.
func parts(t *testing.T, raw []byte) (*mail.Message, map[string]string) {
	t.Helper()
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/alternative", mediaType)

	bodies := map[string]string{}
	r := multipart.NewReader(msg.Body, params["boundary"])
	for {
		p, err := r.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		ct, _, err := mime.ParseMediaType(p.Header.Get("Content-Type"))
		require.NoError(t, err)
		body, err := io.ReadAll(p)
		require.NoError(t, err)
		bodies[ct] = string(body)
	}
	return msg, bodies
}

func TestOverdueReminderMessage(t *testing.T) {
	s, sent := newCapturingMailer(t)
	ctx := i18n.WithLocale(context.Background(), language.French)

	err := s.SendOverdueReminder(ctx, OverdueReminder{
		To:   "ada@example.com",
		Name: "Ada Martin",
		Invoices: []OverdueInvoiceRow{
			{Number: "FAC-2024-00007", DueDate: "2024-03-01", Total: "300.00 €"},
		},
		Link: "https://app.example.com/fr/invoices?overdue=true",
	})
	require.NoError(t, err)
	require.Len(t, *sent, 1)
	assert.Equal(t, "ada@example.com", (*sent)[0].to)

	msg, bodies := parts(t, (*sent)[0].msg)
	dec := new(mime.WordDecoder)
	subject, err := dec.DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, OverdueSubject, subject)
	from, err := dec.DecodeHeader(msg.Header.Get("From"))
	require.NoError(t, err)
	assert.Equal(t, "Facturo Équipe <no-reply@facturo.test>", from)

	text := bodies["text/plain"]
	assert.Contains(t, text, "- FAC-2024-00007 | 2024-03-01 | 300.00 €")
	assert.Contains(t, text, "Ada Martin")
	assert.Contains(t, text, "https://app.example.com/fr/invoices?overdue=true")
	assert.Contains(t, text, "(c) 2024 Facturo")

	html := bodies["text/html"]
	assert.Contains(t, html, `<html lang="fr">`)
	assert.Contains(t, html, "<td>FAC-2024-00007</td>")
}

func TestResetMailIsLocalized(t *testing.T) {
	s, sent := newCapturingMailer(t)
	ctx := i18n.WithLocale(context.Background(), language.English)
	link := "https://app.example.com/en/reset-password?email=ada%40example.com&token=abc"

	require.NoError(t, s.SendMailToResetPassword(ctx, "ada@example.com", link))
	require.Len(t, *sent, 1)

	msg, bodies := parts(t, (*sent)[0].msg)
	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, i18n.T(language.English, i18n.KeyMailResetSubject), subject)
	assert.True(t, strings.Contains(bodies["text/plain"], link))
	assert.Contains(t, bodies["text/html"], `<html lang="en">`)
}

func TestDeliveryErrorIsWrapped(t *testing.T) {
	s, _ := newCapturingMailer(t)
	s.deliver = func(context.Context, string, []byte) error { return errMailDown }

	err := s.SendMailToResetPassword(context.Background(), "ada@example.com", "https://x")
	assert.ErrorIs(t, err, errMailDown)
	assert.Contains(t, err.Error(), "ada@example.com")
}

func TestMailWithoutHostOnlyLogs(t *testing.T) {
	svc, err := NewSMTPMailService(SMTPConfig{From: "no-reply@facturo.test"}, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, svc.SendMailToResetPassword(context.Background(), "ada@example.com", "https://x"))
}
