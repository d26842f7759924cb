package template

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/ghaggin/hbnb/web"
)

const (
	templateDir string = "tmpl"
)

type Renderer struct {
	fs fs.FS
}

func New() *Renderer {
	return NewFS(web.FS)
}

func NewFS(fsys fs.FS) *Renderer {
	return &Renderer{fs: fsys}
}

// Render executes the page tmpl inside base.html. Nothing is written to w
// unless the whole page rendered.
func (r *Renderer) Render(w http.ResponseWriter, status int, tmpl string, td any) error {
	t, err := template.ParseFS(r.fs,
		templateDir+"/"+tmpl,
		templateDir+"/"+"partials.html",
		templateDir+"/"+"base.html",
	)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}

	err = t.ExecuteTemplate(buf, "base", td)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
