// Package router mounts the API's domain route groups on a gin engine.
package router

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// Route describes one mounted endpoint
type Route struct {
	Group  string
	Method string
	Path   string
}

// Router collects domain groups and mounts them under one prefix
type Router struct {
	engine     *gin.Engine
	prefix     string
	middleware []gin.HandlerFunc
	groups     []*DomainGroup
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIPrefix sets the path every group is mounted under (default "/api")
func WithAPIPrefix(prefix string) RouterOption {
	return func(r *Router) {
		r.prefix = "/" + strings.Trim(prefix, "/")
	}
}

// NewRouter creates a Router on engine
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine: engine,
		prefix: "/api",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prefix returns the API mount path
func (r *Router) Prefix() string {
	return r.prefix
}

// Use adds middleware applied to every API route
func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Register queues a group for Setup
func (r *Router) Register(group *DomainGroup) *Router {
	r.groups = append(r.groups, group)
	return r
}

// Setup mounts every registered group on the engine
func (r *Router) Setup() {
	api := r.engine.Group(r.prefix, r.middleware...)
	for _, g := range r.groups {
		g.RegisterRoutes(api)
	}
}

// Routes lists the endpoints of the registered groups with their full paths
func (r *Router) Routes() []Route {
	var routes []Route
	for _, g := range r.groups {
		for _, rd := range g.routes {
			routes = append(routes, Route{
				Group:  g.name,
				Method: rd.method,
				Path:   joinPath(r.prefix, g.prefix, rd.path),
			})
		}
	}
	return routes
}

func joinPath(parts ...string) string {
	p := path.Join(parts...)
	if p == "" || p[0] != '/' {
		p = "/" + p
	}
	return p
}

// DomainGroup holds the routes of one resource, e.g. /clients
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a group mounted at prefix
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware run before every route of the group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) handle(method, relativePath string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: relativePath, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, relativePath, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, relativePath, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, relativePath, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, relativePath, handlers)
}

// RegisterRoutes mounts the group's routes on rg
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}
