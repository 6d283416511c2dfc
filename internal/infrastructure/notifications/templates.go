package notifications

import (
	"fmt"
	"html"
	"time"
)

// Message templates for the verification and welcome flows. Content is
// deliberately plain; branding belongs to the product, not the auth core.

const (
	VerificationEmailSubject = "Your Verification Code"
	WelcomeEmailSubject      = "Welcome - Your Account is Ready"
)

// VerificationSMS renders the SMS body carrying a verification code.
func VerificationSMS(code string, ttl time.Duration) string {
	return fmt.Sprintf(
		"Verification Code: %s. This code will expire in %d minutes. Do not share this code with anyone.",
		code, int(ttl.Minutes()),
	)
}

// VerificationEmailBody renders the HTML email carrying a verification code.
func VerificationEmailBody(code string, ttl time.Duration) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Your Verification Code</h2>
    <p>Please use the following code to verify your account:</p>
    <div style="font-size: 32px; font-weight: bold; text-align: center; letter-spacing: 5px; padding: 20px;">%s</div>
    <p style="text-align: center;">This code will expire in %d minutes.</p>
    <p>If you didn't request this code, please ignore this email.</p>
  </body>
</html>`, html.EscapeString(code), int(ttl.Minutes()))
}

// WelcomeEmailBody renders the post-registration welcome email.
func WelcomeEmailBody(name string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Welcome, %s!</h2>
    <p>Your account has been created and your email address is verified.</p>
    <p>You can now sign in with a one-time code sent to this address.</p>
  </body>
</html>`, html.EscapeString(name))
}
