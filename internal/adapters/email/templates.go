package email

import "fmt"

// Transactional email builders. Bodies are deliberately plain HTML:
// deliverability beats styling for one-line notifications.

// WelcomeEmail builds the account welcome message with the player's
// passport code.
func WelcomeEmail(to, name, passportCode string) SendRequest {
	return SendRequest{
		To:      []string{to},
		Subject: "Welcome to Pickle+",
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your Pickle+ account is ready. Your player passport code is <strong>%s</strong> — share it at the court to get your matches recorded.</p>",
			name, passportCode),
	}
}

// CoachApprovedEmail builds the coach application approval notice.
func CoachApprovedEmail(to, name string) SendRequest {
	return SendRequest{
		To:      []string{to},
		Subject: "Your coach application was approved",
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Congratulations — your Level 1 coach application has been approved. Your profile now appears in the coach directory and players can book sessions with you.</p>",
			name),
	}
}

// CoachRejectedEmail builds the coach application rejection notice with
// the reviewer's reason.
func CoachRejectedEmail(to, name, reason string) SendRequest {
	return SendRequest{
		To:      []string{to},
		Subject: "Your coach application decision",
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Thank you for applying to coach with Pickle+. We are not able to approve your application at this time.</p><p>Reviewer notes: %s</p><p>You are welcome to apply again once you have addressed the feedback.</p>",
			name, reason),
	}
}
