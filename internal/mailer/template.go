package mailer

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/Molmash/molmash/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var requestNoteTmpl = template.Must(template.ParseFS(templateFS, "templates/request_note.html"))

// requestTimeLayout matches the original notification format, e.g. "02.01.2006 15:04:05".
const requestTimeLayout = "02.01.2006 15:04:05"

// RenderRequestNote renders the contact-form notification email body.
func RenderRequestNote(note *domain.RequestNote) (string, error) {
	data := struct {
		Name        string
		Phone       string
		Email       string
		RequestTime string
	}{
		Name:        note.Name,
		Phone:       note.Phone,
		Email:       note.Email,
		RequestTime: note.RequestTime.Format(requestTimeLayout),
	}

	var b strings.Builder
	if err := requestNoteTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render request note template: %w", err)
	}

	return b.String(), nil
}

// FormatRequestTime formats a timestamp the way the notification shows it.
func FormatRequestTime(t time.Time) string {
	return t.Format(requestTimeLayout)
}
