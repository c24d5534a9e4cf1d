package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Template names understood by Render.
const (
	ResetPassword     = "reset_password"
	Welcome           = "welcome"
	LoginNotification = "login_notification"
)

var funcs = map[string]any{
	"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
	"upper":      strings.ToUpper,
}

// Render renders a named template to (subject, text, html).
func Render(name string, data map[string]any) (string, string, string, error) {
	html, err := renderHTML(name, data)
	if err != nil {
		return "", "", "", err
	}
	text, err := renderText(name, data)
	if err != nil {
		return "", "", "", err
	}
	return SubjectFor(name), text, html, nil
}

// SubjectFor returns the email subject for a template name.
func SubjectFor(name string) string {
	switch name {
	case ResetPassword:
		return "Password Reset Request"
	case Welcome:
		return "Welcome to Inkwell"
	case LoginNotification:
		return "New login to your account"
	default:
		return "Notification"
	}
}

func renderHTML(name string, data map[string]any) (string, error) {
	t, err := htmpl.New(name + ".html.tmpl").Funcs(htmpl.FuncMap(funcs)).ParseFS(FS, name+".html.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse html template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render html template %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderText(name string, data map[string]any) (string, error) {
	t, err := texttpl.New(name + ".text.tmpl").Funcs(texttpl.FuncMap(funcs)).ParseFS(FS, name+".text.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse text template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render text template %s: %w", name, err)
	}
	return buf.String(), nil
}
