package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	MenuSvcURL string
	StaticDir  string
}

// Gateway serves the storefront pages and forwards API calls to menu-svc.
type Gateway struct {
	config  Config
	client  HTTPClient
	log     logrus.FieldLogger
	sockets *httputil.ReverseProxy
}

func NewGateway(config Config, client HTTPClient, log logrus.FieldLogger) *Gateway {
	if config.StaticDir == "" {
		config.StaticDir = "./frontend"
	}
	gw := &Gateway{
		config: config,
		client: client,
		log:    log.WithField("component", "gateway"),
	}
	if target, err := url.Parse(config.MenuSvcURL); err == nil && target.Host != "" {
		gw.sockets = httputil.NewSingleHostReverseProxy(target)
	}
	return gw
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	log := g.log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path, "target": targetURL})
	log.Debug("proxying request")

	target := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		log.WithError(err).Error("failed to create request")
		http.Error(w, "Failed to create upstream request", http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.WithError(err).Error("upstream unreachable")
		http.Error(w, "Menu service unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.WithError(err).Warn("failed to copy response")
	}
}

// ProxySocket hands websocket upgrades to a reverse proxy, which keeps the
// hijacked connection open in both directions.
func (g *Gateway) ProxySocket(w http.ResponseWriter, r *http.Request) {
	if g.sockets == nil {
		http.Error(w, "Menu service unavailable", http.StatusBadGateway)
		return
	}
	g.sockets.ServeHTTP(w, r)
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path == "/api/menu" || strings.HasPrefix(path, "/api/menu/") ||
		path == "/api/admin" || strings.HasPrefix(path, "/api/admin/") {
		g.ProxyRequest(w, r, g.config.MenuSvcURL)
		return
	}

	if strings.HasPrefix(path, "/api/") {
		g.log.WithField("path", path).Info("unmatched API route")
		http.Error(w, "API route not found", http.StatusNotFound)
		return
	}

	g.servePage(w, r)
}

// servePage returns the requested storefront file, falling back to
// index.html so hash links from table QR codes land on the menu.
func (g *Gateway) servePage(w http.ResponseWriter, r *http.Request) {
	name := filepath.Join(g.config.StaticDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		http.ServeFile(w, r, name)
		return
	}
	http.ServeFile(w, r, filepath.Join(g.config.StaticDir, "index.html"))
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.HandleFunc("/api/menu/ws", g.ProxySocket)
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(g.config.StaticDir))))
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}
