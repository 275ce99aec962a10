package mail

import (
	"fmt"
	"log"

	"izmarket/config"

	gomail "gopkg.in/gomail.v2"
)

// Mailer is the fire-and-forget notification sink. A nil Mailer (or a
// Mailer built from an empty config) silently drops every send, so
// callers never guard or block on it.
type Mailer struct {
	dialer     *gomail.Dialer
	sender     string
	adminAlert string
}

// New returns a Mailer. Returns a disabled (nil-dialer) instance when
// SMTP is not configured.
func New(cfg *config.MailConfig) *Mailer {
	m := &Mailer{sender: cfg.Sender, adminAlert: cfg.AdminAlert}
	if cfg.Username == "" {
		log.Printf("[mail] disabled: set MAIL_USERNAME to enable")
		return m
	}
	m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return m
}

func (m *Mailer) send(to, subject, htmlBody string) {
	if m == nil || m.dialer == nil {
		return
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Printf("[mail] send to %s failed: %v", to, err)
		return
	}
	log.Printf("[mail] sent %q to %s", subject, to)
}

// SendWelcome emails the freshly registered user.
func (m *Mailer) SendWelcome(firstName, email string) {
	body := fmt.Sprintf(`<div style="font-family:Arial,sans-serif">
<h2>Bienvenue sur IZMarket</h2>
<p>Bonjour <strong>%s</strong>,</p>
<p>Votre compte a été créé avec succès. Vous pouvez maintenant vous connecter et explorer les annonces.</p>
</div>`, firstName)
	m.send(email, "Bienvenue sur IZMarket", body)
}

// SendRegistrationAlert notifies the admin address of a new signup.
func (m *Mailer) SendRegistrationAlert(firstName, lastName, email, phone string) {
	if m == nil || m.adminAlert == "" {
		return
	}
	if phone == "" {
		phone = "non renseigné"
	}
	body := fmt.Sprintf(`<div style="font-family:Arial,sans-serif">
<h2>Nouvel utilisateur inscrit</h2>
<ul>
<li><b>Nom :</b> %s %s</li>
<li><b>Email :</b> %s</li>
<li><b>Téléphone :</b> %s</li>
</ul>
</div>`, firstName, lastName, email, phone)
	m.send(m.adminAlert, "Nouvel utilisateur sur IZMarket", body)
}
