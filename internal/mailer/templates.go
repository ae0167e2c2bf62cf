package mailer

import (
	"fmt"
	"html"
)

// ScamAlertEmail builds the warning sent to every verified store when a new
// scam report comes in. Reporter-supplied text is escaped before it reaches
// the HTML body.
func ScamAlertEmail(reportedEmail, description string) (subject, body string) {
	subject = "[Veryfy] Scam alert: suspicious buyer reported"
	body = fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
	<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 40px; border-radius: 10px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
		<h1 style="color: #c0392b; margin-bottom: 20px;">Scam Alert</h1>
		<p style="color: #666; line-height: 1.6; margin-bottom: 30px;">
			A scam report was filed against a buyer. If this address contacts
			your store, proceed with caution.
		</p>
		<div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 20px;">
			<p style="color: #333; margin: 0 0 10px 0;"><strong>Reported email:</strong> %s</p>
			<p style="color: #333; margin: 0;"><strong>What happened:</strong> %s</p>
		</div>
		<p style="color: #999; font-size: 14px;">
			You are receiving this because your store is verified on Veryfy.
		</p>
	</div>
</body>
</html>
`, html.EscapeString(reportedEmail), html.EscapeString(description))
	return subject, body
}

// VerificationDecisionEmail tells a merchant the outcome of their store review.
func VerificationDecisionEmail(storeName string, approved bool, rejectionReason string) (subject, body string) {
	if approved {
		subject = "[Veryfy] Your store has been verified"
		body = fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
	<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 40px; border-radius: 10px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
		<h1 style="color: #27ae60; margin-bottom: 20px;">Verification Approved</h1>
		<p style="color: #666; line-height: 1.6;">
			Congratulations! <strong>%s</strong> is now verified.
			Your trust badges are ready to embed from your dashboard.
		</p>
	</div>
</body>
</html>
`, html.EscapeString(storeName))
		return subject, body
	}

	subject = "[Veryfy] Your store verification was declined"
	body = fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
	<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 40px; border-radius: 10px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
		<h1 style="color: #c0392b; margin-bottom: 20px;">Verification Declined</h1>
		<p style="color: #666; line-height: 1.6; margin-bottom: 20px;">
			We could not verify <strong>%s</strong> at this time.
		</p>
		<div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px;">
			<p style="color: #333; margin: 0;"><strong>Reason:</strong> %s</p>
		</div>
	</div>
</body>
</html>
`, html.EscapeString(storeName), html.EscapeString(rejectionReason))
	return subject, body
}

// PendingReviewDigestEmail is the daily summary sent to admins by the
// scheduler.
func PendingReviewDigestEmail(pendingStores, pendingReports int64) (subject, body string) {
	subject = "[Veryfy] Daily review digest"
	body = fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
	<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 40px; border-radius: 10px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
		<h1 style="color: #333; margin-bottom: 20px;">Review Queue</h1>
		<div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px;">
			<p style="color: #333; margin: 0 0 10px 0;"><strong>Store verifications waiting:</strong> %d</p>
			<p style="color: #333; margin: 0;"><strong>Scam reports waiting:</strong> %d</p>
		</div>
	</div>
</body>
</html>
`, pendingStores, pendingReports)
	return subject, body
}
