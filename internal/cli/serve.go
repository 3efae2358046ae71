package cli

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mermaidspec/pkg/buildinfo"
	errs "github.com/matzehuels/mermaidspec/pkg/errors"
	specio "github.com/matzehuels/mermaidspec/pkg/io"
	"github.com/matzehuels/mermaidspec/pkg/observability"
	"github.com/matzehuels/mermaidspec/pkg/pipeline"
)

const (
	defaultAddr       = ":8080"
	maxBodyBytes      = 1 << 20
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, specDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render specs over HTTP",
		Long: `Start an HTTP server that renders spec documents.

Endpoints:
  POST /render         render the request body (JSON, YAML or TOML by Content-Type)
  GET  /specs/{path}   render a spec file below --spec-dir
  GET  /healthz        liveness probe

Both render endpoints accept ?direction=LR and ?markdown=true, and answer
with JSON instead of plain text when the request accepts application/json.
An empty or missing direction renders TD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.config.Serve.Addr != "" {
				addr = c.config.Serve.Addr
			}
			if !cmd.Flags().Changed("spec-dir") && c.config.Serve.SpecDir != "" {
				specDir = c.config.Serve.SpecDir
			}
			srv := newServer(c.newRunner(), specDir, c.pipelineOptions(cmd, pipeline.Options{}), loggerFromContext(cmd.Context()))
			return srv.listenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&specDir, "spec-dir", ".", "directory served by /specs")
	return cmd
}

// =============================================================================
// Server
// =============================================================================

type server struct {
	runner   *pipeline.Runner
	specDir  string
	defaults pipeline.Options
	logger   *log.Logger
}

func newServer(runner *pipeline.Runner, specDir string, defaults pipeline.Options, logger *log.Logger) *server {
	defaults.SetDefaults()
	return &server{runner: runner, specDir: specDir, defaults: defaults, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observeRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/render", s.handleRender)
	r.Get("/specs/*", s.handleSpec)
	return r
}

// listenAndServe serves until ctx is canceled, then shuts down gracefully
// and returns ctx's error.
func (s *server) listenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", addr, "spec_dir", s.specDir, "build", buildinfo.String())
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// observeRequests reports every request to the registered HTTP hooks.
func observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	format, err := bodyFormat(r.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := specio.ReadSpec(bytes.NewReader(body), format)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.runner.Render(r.Context(), g, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	s.writeResult(w, r, res, opts)
}

func (s *server) handleSpec(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if err := errs.ValidatePath(name); err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	path := filepath.Join(s.specDir, filepath.FromSlash(name))
	res, err := s.runner.RenderFile(r.Context(), path, opts)
	if err != nil {
		s.logger.Debug("render spec failed", "path", path, "err", err, "request_id", middleware.GetReqID(r.Context()))
		writeError(w, err)
		return
	}
	s.writeResult(w, r, res, opts)
}

// requestOptions overlays ?direction and ?markdown on the server defaults.
func (s *server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	q := r.URL.Query()
	if d := q.Get("direction"); d != "" {
		opts.Direction = d
	}
	if m := q.Get("markdown"); m != "" {
		b, err := strconv.ParseBool(m)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "markdown must be a boolean, got %q", m)
		}
		opts.Markdown = b
	}
	return opts, nil
}

// bodyFormat picks the decoder for a request body. A missing Content-Type
// is read as JSON.
func bodyFormat(contentType string) (specio.Format, error) {
	if contentType == "" {
		return specio.FormatJSON, nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidInput, err, "bad Content-Type %q", contentType)
	}
	switch mediaType {
	case "application/json":
		return specio.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return specio.FormatYAML, nil
	case "application/toml":
		return specio.FormatTOML, nil
	}
	return "", errs.New(errs.ErrCodeUnsupported, "unsupported Content-Type %q", mediaType)
}

// =============================================================================
// Responses
// =============================================================================

type renderResponse struct {
	Diagram string        `json:"diagram"`
	Stats   statsResponse `json:"stats"`
}

type statsResponse struct {
	Nodes  int `json:"nodes"`
	Edges  int `json:"edges"`
	Routes int `json:"routes"`
	Lines  int `json:"lines"`
}

type errorResponse struct {
	Error string    `json:"error"`
	Code  errs.Code `json:"code,omitempty"`
}

func (s *server) writeResult(w http.ResponseWriter, r *http.Request, res pipeline.Result, opts pipeline.Options) {
	asJSON := strings.Contains(r.Header.Get("Accept"), "application/json")
	contentType := "text/plain; charset=utf-8"
	switch {
	case asJSON:
		contentType = "application/json"
	case opts.Markdown:
		contentType = "text/markdown; charset=utf-8"
	}

	etag := `"` + hashText(contentType, res.Text) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Vary", "Accept")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if asJSON {
		writeJSON(w, http.StatusOK, renderResponse{
			Diagram: res.Text,
			Stats: statsResponse{
				Nodes:  res.Stats.NodeCount,
				Edges:  res.Stats.EdgeCount,
				Routes: res.Stats.RouteCount,
				Lines:  res.Stats.LineCount,
			},
		})
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_ = writeText(w, res.Text)
}

// hashText returns the hex SHA-256 of a representation's content type and
// text, used as the response ETag.
func hashText(contentType, text string) string {
	h := sha256.New()
	h.Write([]byte(contentType))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
		return
	}
	writeJSON(w, errs.HTTPStatus(err), errorResponse{Error: errs.UserMessage(err), Code: errs.GetCode(err)})
}
