package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// welcomeHTML is intentionally minimal; styling lives with the
// frontend team's email toolkit, not here.
const welcomeHTML = `<html>
<body style="font-family: sans-serif">
  <h2>Welcome{{if .Name}}, {{.Name}}{{end}}!</h2>
  <p>Your account has been created. You can now sign in with your email address.</p>
</body>
</html>`

const welcomeText = `Welcome{{if .Name}}, {{.Name}}{{end}}! Your account has been created. You can now sign in with your email address.`

var registry = map[string]struct {
	subject string
	text    *template.Template
	html    *template.Template
}{
	"welcome": {
		subject: "Welcome to your new account",
		text:    template.Must(template.New("welcome_text").Parse(welcomeText)),
		html:    template.Must(template.New("welcome_html").Parse(welcomeHTML)),
	},
}

// Render produces subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	t, ok := registry[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var tb, hb bytes.Buffer
	if err := t.text.Execute(&tb, data); err != nil {
		return "", "", "", err
	}
	if err := t.html.Execute(&hb, data); err != nil {
		return "", "", "", err
	}
	return t.subject, tb.String(), hb.String(), nil
}
