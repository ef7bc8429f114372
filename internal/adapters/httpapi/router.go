package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/app"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/ports"
)

// AuthFunc renvoie l'instantané d'authentification pris au début de chaque requête.
type AuthFunc func() ports.AuthContext

type Server struct {
	logger zerolog.Logger
	nav    *app.Navigator
	auth   AuthFunc
	bus    ports.EventBus
}

func NewServer(logger zerolog.Logger, nav *app.Navigator, auth AuthFunc, bus ports.EventBus) *Server {
	if auth == nil {
		auth = func() ports.AuthContext { return ports.AuthContext{} }
	}
	return &Server{logger: logger, nav: nav, auth: auth, bus: bus}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("request_id", "Request-Id"))
	r.Use(hlog.RemoteAddrHandler("remote_ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(hlog.AccessHandler(accessLogFn))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/version", s.handleVersion)
		r.Get("/openapi.json", s.handleOpenAPI)
		// SSE: pas de timeout global sur ce flux
		r.Get("/events", s.handleEvents)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(defaultRequestTimeout))
			if s.nav != nil {
				NewBrowseHandler(s.nav, s.auth).Routes(r)
			}
		})
	})

	return r
}
