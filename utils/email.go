package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	models "github.com/nampd/membership-portal-go/models"
)

// email request payload for ZeptoMail API
type emailRequest struct {
	From     emailAddress  `json:"from"`
	To       []toRecipient `json:"to"`
	Subject  string        `json:"subject"`
	HtmlBody string        `json:"htmlbody"`
}

type emailAddress struct {
	Address string `json:"address"`
}

type toRecipient struct {
	Email emailWithName `json:"email_address"`
}

type emailWithName struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// SendEmail sends an HTML email using the ZeptoMail HTTP API
func SendEmail(to, name, subject, body string) error {
	apiURL := os.Getenv("ZEPTO_API_URL") // e.g. https://api.zeptomail.com/v1.1/email
	apiKey := os.Getenv("ZEPTO_API_KEY") // e.g. Zoho-enczapikey xxxxx
	from := os.Getenv("EMAIL_FROM")      // e.g. noreply@nampd.org

	if apiURL == "" || apiKey == "" || from == "" {
		log.Println("Missing ZEPTO_API_URL, ZEPTO_API_KEY, or EMAIL_FROM")
		return fmt.Errorf("missing required email config")
	}

	payload := emailRequest{
		From: emailAddress{Address: from},
		To: []toRecipient{
			{
				Email: emailWithName{
					Address: to,
					Name:    name,
				},
			},
		},
		Subject:  subject,
		HtmlBody: body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal email payload: %v", err)
		return err
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		log.Printf("Failed to create request: %v", err)
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		log.Printf("ZeptoMail returned status %s", resp.Status)
		return fmt.Errorf("zeptomail API error: %s", resp.Status)
	}

	log.Printf("Email successfully sent to %s", to)
	return nil
}

// NotifyStatusChange emails the member when their application progresses.
// Failures are logged and swallowed; notification is best effort and must
// never block the lifecycle write that triggered it.
func NotifyStatusChange(m models.MemberProfile) {
	var subject, body string
	switch m.Status {
	case models.StatusPendingState:
		subject = "Application approved by your chairman"
		body = fmt.Sprintf("<p>Dear %s,</p><p>Your registration has passed chairman review and is now with the %s state admin.</p>", m.FullName, m.State)
	case models.StatusPendingPayment:
		subject = "Application approved - payment required"
		body = fmt.Sprintf("<p>Dear %s,</p><p>Your registration has been approved. Please pay the registration fee to activate your membership.</p>", m.FullName)
	case models.StatusActive:
		subject = "Welcome to NAMPD"
		body = fmt.Sprintf("<p>Dear %s,</p><p>Your membership is now active. Your NAMPD ID is <b>%s</b>.</p>", m.FullName, m.NampdID)
	case models.StatusRejected:
		subject = "Application update"
		body = fmt.Sprintf("<p>Dear %s,</p><p>Unfortunately your registration was not approved. Contact your state secretariat for details.</p>", m.FullName)
	default:
		return
	}

	if err := SendEmail(m.Email, m.FullName, subject, body); err != nil {
		log.Printf("status notification to %s failed: %v", m.Email, err)
	}
}
