package mailer

import (
	"fmt"

	"timeclass-backend/internal/model"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends the notification mails for claim and approval events.
// With no SMTP host configured it degrades to logging only, so dev
// setups run without a mail server.
type Mailer struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
	log        *zap.Logger
}

func New(host string, port int, user, pass, from, adminEmail string, log *zap.Logger) *Mailer {
	m := &Mailer{from: from, adminEmail: adminEmail, log: log}
	if host != "" {
		m.dialer = gomail.NewDialer(host, port, user, pass)
	}
	return m
}

// ClaimFiled notifies the admin inbox that a teacher disputed a record.
func (m *Mailer) ClaimFiled(claim *model.Claim, teacher *model.Teacher) {
	if m.adminEmail == "" {
		return
	}
	subject := fmt.Sprintf("New claim: %s", claim.Title)
	body := fmt.Sprintf(
		"Teacher %s filed a claim against work-hour record #%d.\n\n%s",
		teacher.Name, claim.WorkHourID, claim.Description,
	)
	m.send(m.adminEmail, subject, body)
}

// AutoApproved notifies a teacher that a pending record was approved
// automatically after the approval window elapsed.
func (m *Mailer) AutoApproved(wh *model.WorkHour, teacher *model.Teacher) {
	if teacher.Email == "" {
		return
	}
	subject := fmt.Sprintf("Work-hours for %s approved", wh.Date)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour work-hour record for %s was approved automatically.",
		teacher.Name, wh.Date,
	)
	m.send(teacher.Email, subject, body)
}

func (m *Mailer) send(to, subject, body string) {
	if m.dialer == nil {
		m.log.Info("mail sending disabled, skipping",
			zap.String("to", to), zap.String("subject", subject))
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("failed to send mail",
			zap.String("to", to), zap.String("subject", subject), zap.Error(err))
	}
}
