package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/MrJamesThe3rd/tablero/internal/http/clients"
	"github.com/MrJamesThe3rd/tablero/internal/http/collections"
	"github.com/MrJamesThe3rd/tablero/internal/http/costs"
	"github.com/MrJamesThe3rd/tablero/internal/http/incomes"
	"github.com/MrJamesThe3rd/tablero/internal/http/remotesync"
	"github.com/MrJamesThe3rd/tablero/internal/http/reports"
	"github.com/MrJamesThe3rd/tablero/internal/http/respond"
	"github.com/MrJamesThe3rd/tablero/internal/http/settings"
	"github.com/MrJamesThe3rd/tablero/internal/http/summary"
)

type Options struct {
	Timeout     time.Duration
	CORSOrigins []string
	RateLimit   int // requests per minute per IP, 0 disables
	SessionKey  []byte // empty disables authentication
	SSLRedirect bool
}

type Handlers struct {
	Summary     *summary.Handler
	Collections *collections.Handler
	Clients     *clients.Handler
	Costs       *costs.Handler
	Income      *incomes.Handler
	Settings    *settings.Handler
	Sync        *remotesync.Handler
	Reports     *reports.Handler
}

func New(opts Options, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Use(secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        opts.SSLRedirect,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	}).Handler)

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		if opts.RateLimit > 0 {
			r.Use(httprate.Limit(opts.RateLimit, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					respond.JSON(w, http.StatusTooManyRequests, respond.Problem{
						Title:  http.StatusText(http.StatusTooManyRequests),
						Status: http.StatusTooManyRequests,
						Detail: "rate limit exceeded",
					})
				}),
			))
		}

		if len(opts.SessionKey) > 0 {
			r.Use(Session(opts.SessionKey))
		}

		r.Group(h.Summary.Routes)
		r.Route("/collections", h.Collections.Routes)

		r.Route("/clients", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Clients.Routes(r)
		})

		r.Route("/costs", h.Costs.Routes)
		r.Route("/income", h.Income.Routes)

		r.Route("/settings", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Settings.Routes(r)
		})

		r.Route("/sync", h.Sync.Routes)
		r.Route("/reports", h.Reports.Routes)
	})

	return router
}
