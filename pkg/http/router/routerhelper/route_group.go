package routerhelper

import (
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup registers handlers on an httprouter.Router under a common path prefix.
type RouteGroup struct {
	r *httprouter.Router
	p string
}

func NewRouteGroup(r *httprouter.Router, p string) *RouteGroup {
	return &RouteGroup{r: r, p: cleanPrefix(p)}
}

func cleanPrefix(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	p = path.Clean("/" + p)
	return p
}

func (g *RouteGroup) NewGroup(p string) *RouteGroup {
	return NewRouteGroup(g.r, g.subPath(p))
}

func (g *RouteGroup) subPath(p string) string {
	if p == "" || p[0] != '/' {
		p = "/" + p
	}
	return g.p + p
}

func (g *RouteGroup) Handle(method, p string, handle httprouter.Handle) {
	g.r.Handle(method, g.subPath(p), handle)
}

func (g *RouteGroup) Handler(method, p string, handler http.Handler) {
	g.r.Handler(method, g.subPath(p), handler)
}

func (g *RouteGroup) GET(p string, handle httprouter.Handle) {
	g.Handle(http.MethodGet, p, handle)
}

func (g *RouteGroup) POST(p string, handle httprouter.Handle) {
	g.Handle(http.MethodPost, p, handle)
}

func (g *RouteGroup) DELETE(p string, handle httprouter.Handle) {
	g.Handle(http.MethodDelete, p, handle)
}
