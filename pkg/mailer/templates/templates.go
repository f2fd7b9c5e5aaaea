package templates

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
)

// TemplateConfirmationCode is the registration email carrying the
// one-time code exchanged for an access token.
const TemplateConfirmationCode = "confirmation_code"

const confirmationSubject = "Your YamDB confirmation code"

const confirmationText = `Hello{{if .Username}} {{.Username}}{{end}},

Your YamDB confirmation code is: {{.Code}}

Exchange it for an access token at POST /api/v1/auth/token/ together
with your email address.
`

const confirmationHTML = `<p>Hello{{if .Username}} {{.Username}}{{end}},</p>
<p>Your YamDB confirmation code is: <strong>{{.Code}}</strong></p>
<p>Exchange it for an access token at <code>POST /api/v1/auth/token/</code>
together with your email address.</p>
`

var (
	textTemplates = texttpl.Must(texttpl.New(TemplateConfirmationCode).Parse(confirmationText))
	htmlTemplates = htmltpl.Must(htmltpl.New(TemplateConfirmationCode).Parse(confirmationHTML))
)

// Render renders a known template into (subject, text, html).
func Render(name string, data map[string]any) (string, string, string, error) {
	if name != TemplateConfirmationCode {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var text, html bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&text, name, data); err != nil {
		return "", "", "", err
	}
	if err := htmlTemplates.ExecuteTemplate(&html, name, data); err != nil {
		return "", "", "", err
	}
	return confirmationSubject, text.String(), html.String(), nil
}
