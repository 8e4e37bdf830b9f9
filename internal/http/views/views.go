// Package views holds the embedded HTML templates rendered by the contact
// handlers.
package views

import (
	"embed"
	"html/template"
	"io/fs"
	"time"

	"github.com/yungbote/addressbook-backend/internal/domain/contact"
	"github.com/yungbote/addressbook-backend/internal/services"
)

const (
	ContactForm = "contact.html"
	ShowContact = "showContact.html"
	ListContact = "listContact.html"
	NotFound    = "notFound.html"
	Error       = "error.html"
)

//go:embed templates/*.html
var rawTemplates embed.FS

// Templates is the embedded template filesystem with the "templates/" prefix stripped.
var Templates = mustSub(rawTemplates, "templates")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"isoDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(contact.DateLayout)
	},
}

// Parse compiles every template, each named after its file.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(Templates, "*.html")
}

type FormView struct {
	Contact     *contact.Contact
	DateOfBirth string
	Errors      contact.FieldErrors
}

type ContactView struct {
	Contact *contact.Contact
}

type ListView struct {
	Page services.ContactPage
}

type NotFoundView struct {
	ID string
}

type ErrorView struct {
	Status  int
	Message string
}
