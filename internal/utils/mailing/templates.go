package mailing

import (
	"bytes"
	"html/template"
)

var (
	membershipTemplate = template.Must(template.New("membership").Parse(`<h2>Welcome to VolunteerHub, {{.Name}}!</h2>
<p>We received your <strong>{{.Type}}</strong> membership application. Our team will review it shortly.</p>
<p>You will receive another email once your membership is active.</p>`))

	bloodDonationTemplate = template.Must(template.New("blood").Parse(`<h2>Thank you, {{.Name}}!</h2>
<p>Your blood donation registration (blood type <strong>{{.BloodType}}</strong>) was received.</p>
<p>Preferred date: {{.Date}}. We will contact you to confirm the appointment.</p>`))
)

func MembershipConfirmation(name, membershipType string) (string, error) {
	return render(membershipTemplate, map[string]string{"Name": name, "Type": membershipType})
}

func BloodDonationConfirmation(name, bloodType, date string) (string, error) {
	return render(bloodDonationTemplate, map[string]string{"Name": name, "BloodType": bloodType, "Date": date})
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
