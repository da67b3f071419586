package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vmoranv/aolachart/pkg/attr"
	"github.com/vmoranv/aolachart/pkg/attr/graph"
	apperrors "github.com/vmoranv/aolachart/pkg/errors"
)

const (
	serveReadTimeout = 10 * time.Second
	// Chart requests fan out across the whole relation catalogue on a cold
	// cache, so writes get a generous deadline.
	serveWriteTimeout  = 90 * time.Second
	serveShutdownGrace = 5 * time.Second
	headerRequestID    = "X-Request-ID"
	contentTypeJSON    = "application/json"
	contentTypeText    = "text/plain; charset=utf-8"
	contentTypePNG     = "image/png"
	contentTypeSVG     = "image/svg+xml"
)

// serveCommand exposes the relation engine over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve attribute reports, charts, and graphs over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.newEngine(ctx, noCache)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = e.cfg.Addr
			}

			srv := &http.Server{
				Addr:         addr,
				Handler:      c.routes(e),
				ReadTimeout:  serveReadTimeout,
				WriteTimeout: serveWriteTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				c.Logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownGrace)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the API response cache")
	return cmd
}

func (c *CLI) routes(e *engine) http.Handler {
	r := chi.NewRouter()
	r.Use(c.requestID)
	r.Use(c.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentTypeText)
		fmt.Fprintln(w, "ok")
	})

	r.Get("/attributes", c.handleAttributes(e))
	r.Route("/attributes/{id}", func(r chi.Router) {
		r.Get("/report", c.handleReport(e))
		r.Get("/chart.png", c.handleChart(e))
		r.Get("/graph.svg", c.handleGraph(e))
	})

	return r
}

// requestID assigns each request a UUID, echoes it in the response header,
// and attaches a scoped logger to the request context.
func (c *CLI) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)

		logger := c.Logger.With("request_id", id)
		next.ServeHTTP(w, r.WithContext(withLogger(r.Context(), logger)))
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

func (c *CLI) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		loggerFromContext(r.Context()).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

func (c *CLI) handleAttributes(e *engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attrs, err := e.repo.Attributes(r.Context())
		if err != nil {
			httpError(w, r, apperrors.Wrap(apperrors.ErrCodeDataUnavailable, err, "could not fetch the attribute catalogue"))
			return
		}
		w.Header().Set("Content-Type", contentTypeJSON)
		if err := json.NewEncoder(w).Encode(attrs); err != nil {
			loggerFromContext(r.Context()).Error("encode response", "err", err)
		}
	}
}

func (c *CLI) handleReport(e *engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, attack, defend, err := serveAnalyze(r.Context(), e, chi.URLParam(r, "id"))
		if err != nil {
			httpError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", contentTypeText)
		fmt.Fprintln(w, attr.FormatReport(subject, attack, defend))
	}
}

func (c *CLI) handleChart(e *engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		subject, attack, defend, err := serveAnalyze(ctx, e, chi.URLParam(r, "id"))
		if err != nil {
			httpError(w, r, err)
			return
		}
		png, err := e.chartRenderer(loggerFromContext(ctx)).Render(ctx, subject, attack, defend)
		if err != nil {
			httpError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "chart render failed"))
			return
		}
		w.Header().Set("Content-Type", contentTypePNG)
		w.Write(png)
	}
}

func (c *CLI) handleGraph(e *engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		subject, attack, defend, err := serveAnalyze(ctx, e, chi.URLParam(r, "id"))
		if err != nil {
			httpError(w, r, err)
			return
		}
		svg, err := graph.RenderSVG(ctx, graph.ToDOT(subject, attack, defend))
		if err != nil {
			httpError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "graph render failed"))
			return
		}
		w.Header().Set("Content-Type", contentTypeSVG)
		w.Write(svg)
	}
}

// serveAnalyze resolves a numeric id path parameter and computes both bucket
// sets for the subject.
func serveAnalyze(ctx context.Context, e *engine, idParam string) (attr.Attribute, attr.BucketSet, attr.BucketSet, error) {
	id, err := strconv.Atoi(idParam)
	if err != nil {
		return attr.Attribute{}, nil, nil, apperrors.New(apperrors.ErrCodeInvalidInput, "attribute id must be numeric, got %q", idParam)
	}
	if err := apperrors.ValidateAttributeID(id); err != nil {
		return attr.Attribute{}, nil, nil, err
	}

	subject, ok, err := e.repo.Find(ctx, id)
	if err != nil {
		return attr.Attribute{}, nil, nil, apperrors.Wrap(apperrors.ErrCodeDataUnavailable, err, "could not fetch the attribute catalogue")
	}
	if !ok {
		return attr.Attribute{}, nil, nil, apperrors.New(apperrors.ErrCodeAttributeNotFound, "no attribute with id %d", id)
	}

	attack, defend, err := e.relationBuckets(ctx, subject)
	if err != nil {
		return attr.Attribute{}, nil, nil, apperrors.Wrap(apperrors.ErrCodeDataUnavailable, err, "could not fetch relations for %s", subject.Name)
	}
	return subject, attack, defend, nil
}

// httpError maps application error codes to HTTP statuses: not-found codes
// give 404, data-source failures give 502, bad input gives 400, everything
// else 500.
func httpError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeAttributeNotFound, apperrors.ErrCodeNotFound, apperrors.ErrCodePacketNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeDataUnavailable, apperrors.ErrCodeNetwork, apperrors.ErrCodeTimeout:
		status = http.StatusBadGateway
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidAttribute, apperrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}
	if status >= http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("request failed", "err", err)
	}
	http.Error(w, apperrors.UserMessage(err), status)
}
