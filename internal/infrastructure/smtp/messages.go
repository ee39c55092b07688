package smtp

import "fmt"

// VerificationMessage builds the subject and HTML body for a verification email.
// The link points at the frontend, which posts the token back to /auth/verify-email.
func VerificationMessage(frontendURL, token string) (subject, body string) {
	link := fmt.Sprintf("%s/verify-email?token=%s", frontendURL, token)
	subject = "Verify your Planventure account"
	body = fmt.Sprintf(`<h1>Welcome to Planventure!</h1>
<p>Thank you for registering. To verify your email address, please click the link below:</p>
<p><a href="%s">Verify Email Address</a></p>
<p>If you did not register for Planventure, please ignore this email.</p>
<p>This link will expire in 24 hours.</p>`, link)
	return subject, body
}

// ResetMessage builds the subject and HTML body for a password reset email.
func ResetMessage(frontendURL, token string) (subject, body string) {
	link := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, token)
	subject = "Reset your Planventure password"
	body = fmt.Sprintf(`<h1>Password Reset Request</h1>
<p>To reset your password, click the link below:</p>
<p><a href="%s">Reset Password</a></p>
<p>If you did not request a password reset, please ignore this email.</p>
<p>This link will expire in 1 hour.</p>`, link)
	return subject, body
}
