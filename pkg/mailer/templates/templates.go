package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

var funcMap = htmpl.FuncMap{
	"now":   func() time.Time { return time.Now().UTC() },
	"upper": strings.ToUpper,
}

// Subjects per template name.
var subjects = map[string]string{
	"welcome":          "Welcome to StayLoop",
	"password_changed": "Your password was changed",
}

// Render renders the named template with data and returns the subject and
// HTML body.
func Render(name string, data map[string]any) (subject, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}

	t, err := htmpl.New(name + ".tmpl").Funcs(funcMap).ParseFS(FS, name+".tmpl")
	if err != nil {
		return "", "", fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render template %s: %w", name, err)
	}
	return subject, buf.String(), nil
}
