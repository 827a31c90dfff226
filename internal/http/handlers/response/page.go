package response

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates
var templates embed.FS

var pages = template.Must(template.ParseFS(templates, "templates/*.html"))

type PageKind string

const (
	PageResetForm    PageKind = "reset_form"
	PageResetInvalid PageKind = "reset_invalid"
	PageResetSuccess PageKind = "reset_success"
	PageResetError   PageKind = "reset_error"
	PageServerError  PageKind = "server_error"
)

type Page struct {
	Kind    PageKind `json:"kind"`
	Message string   `json:"message"`
	// Action is the form target, it is never rendered into JSON.
	Action string `json:"-"`
}

// RenderPage renders the page as HTML, or as {"kind", "message"} JSON when the client asks for it.
func RenderPage(rw http.ResponseWriter, r *http.Request, page Page, status int) {
	if WantsJSON(r) {
		Render(rw, page, status)
		return
	}

	var content bytes.Buffer
	if err := pages.ExecuteTemplate(&content, string(page.Kind)+".html", page); err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(status)
	rw.Write(content.Bytes())
}
