package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/lexicon/pkg/dictionary"
	"github.com/dmitrymomot/lexicon/pkg/logger"
)

// Handler serves dictionary queries.
type Handler struct {
	query  dictionary.Query
	logger *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger for access and render failures.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler returns a handler answering from q.
func NewHandler(q dictionary.Query, opts ...Option) *Handler {
	h := &Handler{query: q, logger: logger.Discard()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns a router with every query endpoint mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID, middleware.Recoverer, AccessLog(h.logger))

	r.Get("/translate", h.translate)
	r.Get("/translate/format", h.translateFormat)
	r.Get("/translate/plural", h.translatePlural)
	r.Get("/translate/constant", h.translateConstant)
	r.Get("/dictionary/{kind}", h.dictionary)

	return r
}

type lookupParams struct {
	key     string
	scope   string
	culture string
}

func readLookup(r *http.Request) (lookupParams, bool) {
	q := r.URL.Query()
	p := lookupParams{
		key:     q.Get("key"),
		scope:   strings.TrimSpace(q.Get("scope")),
		culture: strings.TrimSpace(q.Get("culture")),
	}
	return p, p.key != ""
}

func (h *Handler) translate(w http.ResponseWriter, r *http.Request) {
	p, ok := readLookup(r)
	if !ok {
		h.badRequest(w, r, "missing key parameter", p)
		return
	}
	respond(h, w, r, http.StatusOK, h.query.Translate(r.Context(), p.key, p.scope, p.culture))
}

func (h *Handler) translateFormat(w http.ResponseWriter, r *http.Request) {
	p, ok := readLookup(r)
	if !ok {
		h.badRequest(w, r, "missing key parameter", p)
		return
	}
	params := r.URL.Query()["param"]
	respond(h, w, r, http.StatusOK, h.query.TranslateFormat(r.Context(), p.key, params, p.scope, p.culture))
}

func (h *Handler) translatePlural(w http.ResponseWriter, r *http.Request) {
	p, ok := readLookup(r)
	if !ok {
		h.badRequest(w, r, "missing key parameter", p)
		return
	}
	raw := r.URL.Query().Get("quantity")
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		h.badRequest(w, r, fmt.Sprintf("quantity %q is not an integer", raw), p)
		return
	}
	respond(h, w, r, http.StatusOK, h.query.TranslatePluralization(r.Context(), p.key, quantity, p.scope, p.culture))
}

func (h *Handler) translateConstant(w http.ResponseWriter, r *http.Request) {
	p, ok := readLookup(r)
	if !ok {
		h.badRequest(w, r, "missing key parameter", p)
		return
	}
	respond(h, w, r, http.StatusOK, h.query.TranslateConstant(r.Context(), p.key, p.scope, p.culture))
}

func (h *Handler) dictionary(w http.ResponseWriter, r *http.Request) {
	p, _ := readLookup(r)
	res := h.query.Dictionary(r.Context(), chi.URLParam(r, "kind"), p.scope, p.culture)

	status := http.StatusOK
	if !res.Status.Success {
		status = http.StatusNotFound
	}
	respond(h, w, r, status, res)
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, message string, p lookupParams) {
	respond(h, w, r, http.StatusBadRequest, failure(message, p.scope, p.culture))
}

// respond writes body as JSON. Encoding failures are logged; the status line
// is already sent by then.
func respond[T any](h *Handler, w http.ResponseWriter, r *http.Request, status int, body dictionary.Result[T]) {
	if err := writeJSON(w, status, body); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render response",
			logger.Component("api"),
			logger.Error(err),
		)
	}
}
