package cli

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/willibrandon/consoledump"
	"github.com/willibrandon/consoledump/configuration"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ if .Label }}{{ .Label }} - {{ end }}consoledump</title>
</head>
<body>
<p>Open the developer tools console to inspect the dump.</p>
{{ dump .Value .Label .Options }}
</body>
</html>
`

// pageData is the data of the page template.
type pageData struct {
	Value   any
	Label   string
	Options consoledump.Options
}

// Server serves the dump of a document to browsers.
type Server struct {
	load   func() (any, error)
	label  string
	logger *log.Logger

	debug *consoledump.DebugSwitch
	ext   *consoledump.Extension
	page  *template.Template

	registry *prometheus.Registry
	dumps    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewServer creates a server for the values returned by load. Dumps are on
// unless config turns debug mode off explicitly.
func NewServer(load func() (any, error), label string, config *configuration.Configuration, logger *log.Logger) *Server {
	if config == nil {
		config = &configuration.Configuration{}
	}
	if logger == nil {
		logger = log.Default()
	}

	debug := consoledump.NewDebugSwitch(config.ConsoleDump.Debug == nil || *config.ConsoleDump.Debug)
	ext := configuration.NewExtensionBuilder().Build(config, consoledump.WithDebugSwitch(debug))

	s := &Server{
		load:     load,
		label:    label,
		logger:   logger,
		debug:    debug,
		ext:      ext,
		page:     template.Must(template.New("page").Funcs(ext.FuncMap()).Parse(pageTemplate)),
		registry: prometheus.NewRegistry(),
		dumps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "consoledump_dumps_total",
				Help: "Total number of dump requests by result",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "consoledump_render_duration_seconds",
			Help:    "Duration of rendering a dump",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	s.registry.MustRegister(s.dumps, s.duration)
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get("/script", s.handleScript)
	r.Get("/debug", s.handleGetDebug)
	r.Put("/debug", s.handleSetDebug)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	value, nonce, ok := s.prepare(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	start := time.Now()
	err := s.page.Execute(&buf, pageData{
		Value:   value,
		Label:   s.label,
		Options: consoledump.Options{ScriptNonce: nonce},
	})
	if err != nil {
		s.fail(w, r, "render page", err)
		return
	}
	s.observe(start)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	setCSP(w, nonce)
	w.Write(buf.Bytes())
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	value, nonce, ok := s.prepare(w, r)
	if !ok {
		return
	}

	start := time.Now()
	html, err := s.ext.Dump(value, s.label, consoledump.Options{ScriptNonce: nonce})
	if err != nil {
		s.fail(w, r, "render script", err)
		return
	}
	s.observe(start)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	setCSP(w, nonce)
	w.Write([]byte(html))
}

func (s *Server) handleGetDebug(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"enabled": s.debug.Enabled()})
}

func (s *Server) handleSetDebug(w http.ResponseWriter, r *http.Request) {
	enabled, err := configuration.ParseBool(r.URL.Query().Get("enabled"))
	if err != nil {
		http.Error(w, "enabled must be a boolean", http.StatusBadRequest)
		return
	}

	s.debug.Set(enabled)
	loggerFromContext(r.Context()).Info("debug mode changed", "enabled", enabled)
	w.WriteHeader(http.StatusNoContent)
}

// prepare loads the document and creates the nonce of a dump response.
func (s *Server) prepare(w http.ResponseWriter, r *http.Request) (value any, nonce string, ok bool) {
	if !s.debug.Enabled() {
		s.dumps.WithLabelValues("disabled").Inc()
	}

	value, err := s.load()
	if err != nil {
		s.fail(w, r, "load document", err)
		return nil, "", false
	}
	return value, uuid.NewString(), true
}

func (s *Server) observe(start time.Time) {
	if s.debug.Enabled() {
		s.dumps.WithLabelValues("ok").Inc()
		s.duration.Observe(time.Since(start).Seconds())
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.dumps.WithLabelValues("error").Inc()
	loggerFromContext(r.Context()).Error(op+" failed", "err", err)
	http.Error(w, op+" failed", http.StatusInternalServerError)
}

// logRequests attaches a request-scoped logger and logs each request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.With("request_id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), logger)))

		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).Round(time.Microsecond))
	})
}

// setCSP allows scripts carrying nonce and nothing else.
func setCSP(w http.ResponseWriter, nonce string) {
	w.Header().Set("Content-Security-Policy", "default-src 'none'; script-src 'nonce-"+nonce+"'")
}
