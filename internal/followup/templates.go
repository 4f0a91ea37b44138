package followup

import (
	"fmt"

	"jobtrack-engine/internal/tracker"
)

// Email is a rendered follow-up message. The engine only fills in the
// context fields; nothing here is ever sent anywhere.
type Email struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// RenderEmail turns a rule's action label into a message template for the
// given application. Unknown actions get a generic nudge.
func RenderEmail(action string, app tracker.Application) Email {
	switch action {
	case "Send initial follow-up":
		return Email{
			Subject: fmt.Sprintf("Following up on %s Application", app.Title),
			Body: fmt.Sprintf(`Dear Hiring Manager,

I hope this email finds you well. I wanted to follow up on my application for the %s position at %s, which I submitted on %s.

I remain very interested in this opportunity and would welcome the chance to discuss how my skills and experience align with your team's needs.

Please let me know if you need any additional information from me.

Thank you for your consideration.

Best regards,
[Your Name]`, app.Title, app.Company, app.CreatedAt.Format("January 2, 2006")),
		}
	case "Follow up on next steps":
		return Email{
			Subject: fmt.Sprintf("Next Steps - %s Position", app.Title),
			Body: fmt.Sprintf(`Dear [Interviewer Name],

Thank you for taking the time to speak with me about the %s position. I enjoyed learning more about %s and the team.

I wanted to follow up on the next steps in the interview process. I'm very excited about this opportunity and look forward to continuing our conversation.

Please let me know if you need any additional information.

Best regards,
[Your Name]`, app.Title, app.Company),
		}
	case "Request feedback":
		return Email{
			Subject: fmt.Sprintf("Following up - %s Interview", app.Title),
			Body: fmt.Sprintf(`Dear [Interviewer Name],

I wanted to follow up on my recent interview for the %s position at %s.

I remain very interested in this role and would appreciate any updates on the hiring timeline or next steps.

Thank you for your time and consideration.

Best regards,
[Your Name]`, app.Title, app.Company),
		}
	case "Check on decision timeline":
		return Email{
			Subject: fmt.Sprintf("Decision Timeline - %s Position", app.Title),
			Body: fmt.Sprintf(`Dear [Hiring Manager],

I wanted to check in regarding the %s position. I'm very enthusiastic about the opportunity to join %s and contribute to the team.

Could you provide an update on the decision timeline?

Thank you for your consideration.

Best regards,
[Your Name]`, app.Title, app.Company),
		}
	case "Respond to offer":
		return Email{
			Subject: fmt.Sprintf("Re: Offer for %s Position", app.Title),
			Body: fmt.Sprintf(`Dear [Hiring Manager],

Thank you for extending the offer for the %s position at %s. I'm excited about this opportunity.

I would like to discuss [compensation/start date/benefits] before making my final decision. Would you be available for a call this week?

Thank you again for this opportunity.

Best regards,
[Your Name]`, app.Title, app.Company),
		}
	}

	return Email{
		Subject: fmt.Sprintf("Following up - %s", app.Title),
		Body:    fmt.Sprintf("Following up on %s at %s", app.Title, app.Company),
	}
}
