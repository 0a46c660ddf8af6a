package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/collabhub/admin-console/errors"
	"github.com/collabhub/admin-console/table"
	"github.com/gorilla/csrf"
	"go.vocdoni.io/dvote/log"
)

const (
	landingPage   = "landing.html"
	loginPage     = "login.html"
	signupPage    = "signup.html"
	termsPage     = "terms.html"
	dashboardPage = "dashboard.html"
	confirmPage   = "confirm.html"
)

// buttonView is what the button partial renders: a row action plus the form
// token its form must carry.
type buttonView struct {
	Button table.Button
	CSRF   template.HTML
}

var templateFuncs = template.FuncMap{
	"buttonData": func(b table.Button, token template.HTML) buttonView {
		return buttonView{Button: b, CSRF: token}
	},
}

// loadPages parses every page template together with the shared layout.
func loadPages(assets fs.FS) (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{landingPage, loginPage, signupPage, termsPage, dashboardPage, confirmPage} {
		tpl, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(assets,
			"assets/templates/layout.html", "assets/templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tpl
	}
	return pages, nil
}

func staticHandler(assets fs.FS) http.Handler {
	sub, err := fs.Sub(assets, "assets/static")
	if err != nil {
		log.Fatalf("static assets not embedded: %v", err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// basePage holds what every page needs.
type basePage struct {
	CSRF   template.HTML
	Alerts []string
}

func newBase(r *http.Request, alerts []string) basePage {
	return basePage{CSRF: csrf.TemplateField(r), Alerts: alerts}
}

// render executes the page into a buffer first so a template failure never
// leaves a half written page.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	page, ok := s.pages[name]
	if !ok {
		errors.ErrTemplateRendering.Withf("unknown page %s", name).Write(w)
		return
	}
	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		errors.ErrTemplateRendering.WithErr(err).Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Warnw("failed to write page", "page", name, "error", err)
	}
}
