package web

import (
	"sync"

	"github.com/99minutos/storefront/internal/core/domain"
)

// Redirects records the last page a controller asked for. The handler that
// ran the controller takes it and answers with a 303 to the page's path.
type Redirects struct {
	mu   sync.Mutex
	page domain.Page
}

func NewRedirects() *Redirects { return &Redirects{} }

func (r *Redirects) Redirect(p domain.Page) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.page = p
}

// Take returns and clears the pending redirect.
func (r *Redirects) Take() (domain.Page, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.page
	r.page = ""
	return p, p != ""
}

var pagePaths = map[domain.Page]string{
	domain.PageHome:          "/",
	domain.PageLogin:         "/login",
	domain.PageSellerConsole: "/seller",
}

// PathFor maps a page to its route; unknown pages go home.
func PathFor(p domain.Page) string {
	if path, ok := pagePaths[p]; ok {
		return path
	}
	return "/"
}
