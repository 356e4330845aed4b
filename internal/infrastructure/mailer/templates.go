package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const TemplateVerification = "verification"

var templates = template.Must(template.New(TemplateVerification).Parse(`<html>
<body>
  <p>Hi {{.username}},</p>
  <p>Please confirm your email address to activate your account:</p>
  <p><a href="{{.link}}">Verify email</a></p>
  <p>If you did not sign up, you can ignore this message.</p>
</body>
</html>`))

// Render produces the HTML body for a named template.
func Render(name string, context map[string]string) (string, error) {
	tmpl := templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("unknown email template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, context); err != nil {
		return "", fmt.Errorf("render email template %q: %w", name, err)
	}
	return buf.String(), nil
}
