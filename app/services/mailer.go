package services

import (
	"fmt"

	"github.com/freshmart/api/config"
	"github.com/freshmart/api/pkg/mail"
)

// SMTPMailer sends account email through the configured SMTP server.
type SMTPMailer struct{}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{}
}

// SendPasswordReset delivers the reset link for the given token.
func (m *SMTPMailer) SendPasswordReset(email, token string) error {
	link := fmt.Sprintf("%s/%s",
		config.Get("RESET_URL", "http://www.freshmart-supermarket.com/reset-password"), token)

	body := fmt.Sprintf(`<body style="font-family: Arial, sans-serif; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 40px;">
		<div style="text-align: center; font-size: 1.5em; font-weight: bold;">FreshMart</div>
		<h1 style="color: #007bff; text-align: center;">Password Reset Request</h1>
		<p>Hello,</p>
		<p>You have requested to reset your password for your FreshMart account. Please click the button below to proceed:</p>
		<div style="text-align: center; margin-top: 30px;">
			<a href="%s" style="display: inline-block; padding: 12px 24px; background-color: #28a745; color: #fff; text-decoration: none; border-radius: 6px; font-weight: bold;">Reset Your Password</a>
		</div>
		<p>If the button does not work, please use the link below.</p>
		<a href="%s" style="color: #007bff;">Reset Password Link</a>
		<p style="font-size: 0.9em; color: #777;">This link is valid for a limited time. If you did not request a password reset, please ignore this email.</p>
	</div>
</body>`, link, link)

	return mail.To(email).
		Subject("Password Reset Request").
		Body(body).
		Send()
}
