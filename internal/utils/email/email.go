package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/niveshak/finplan/internal/config"
	"github.com/niveshak/finplan/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendShortfallAlert notifies a user that their projected retirement corpus
// runs out before life expectancy
func (s *Sender) SendShortfallAlert(to, username string, matrix *models.RetirementMatrix) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Retirement Corpus Shortfall Alert"

	last := matrix.Years[len(matrix.Years)-1]
	body := fmt.Sprintf(
		"Dear %s,\n\n", username,
	)
	body += fmt.Sprintf(
		"Your retirement projection under scenario %q shows the corpus running out at age %d,\n"+
			"which is before your life expectancy of %d.\n\n"+
			"Starting corpus: %.2f\nEmergency fund (kept aside): %.2f\n\n"+
			"Consider increasing your monthly investments or revisiting the scenario assumptions.\n",
		matrix.Scenario.Name, last.Age, matrix.Scenario.LifeExpectancy,
		matrix.Summary.InvestableCorpus, matrix.Summary.EmergencyFund,
	)
	body += "\nBest regards,\nFinplan"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
