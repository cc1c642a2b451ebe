package routerhelper

import (
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup. httprouter routes sharing a path prefix.
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{router: router, prefix: prefix}
}

func (g *RouteGroup) Group(prefix string) *RouteGroup {
	return &RouteGroup{router: g.router, prefix: g.path(prefix)}
}

func (g *RouteGroup) path(p string) string {
	joined := path.Join(g.prefix, p)
	if len(p) > 0 && p[len(p)-1] == '/' && joined[len(joined)-1] != '/' {
		joined += "/"
	}
	return joined
}

func (g *RouteGroup) Handle(method, p string, handle httprouter.Handle) {
	g.router.Handle(method, g.path(p), handle)
}

func (g *RouteGroup) Handler(method, p string, handler http.Handler) {
	g.router.Handler(method, g.path(p), handler)
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
