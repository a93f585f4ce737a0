// Package server is the HTTP front door. It turns inbound requests into
// engine inputs, emits the redirects the engine decides on and passes
// everything else to the upstream marketplace application.
package server

import (
	"context"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"signpost/internal/community"
	"signpost/internal/config"
	"signpost/internal/domain"
	"signpost/internal/middleware"
	"signpost/internal/redirect"
)

type Server struct {
	config   *config.Config
	mux      *http.ServeMux
	store    *community.Store
	resolver *community.Resolver
	upstream *httputil.ReverseProxy
}

func NewServer(cfg *config.Config, store *community.Store) (*Server, error) {
	s := &Server{
		config:   cfg,
		mux:      http.NewServeMux(),
		store:    store,
		resolver: community.NewResolver(store, cfg.Platform.AppDomain),
	}

	if cfg.Server.Upstream != "" {
		target, err := url.Parse(cfg.Server.Upstream)
		if err != nil {
			return nil, err
		}
		proxy := httputil.NewSingleHostReverseProxy(target)
		proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			log.Error().Err(err).Str("host", r.Host).Str("target", target.String()).Msg("Upstream error")
			http.Error(w, "Bad Gateway: upstream is unreachable", http.StatusBadGateway)
		}
		s.upstream = proxy
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	// Catch-all: every request runs through the redirect decision first.
	s.mux.HandleFunc("/", s.handleFrontDoor)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleFrontDoor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req := requestSnapshot(r)

	comm, searchStatus, err := s.resolver.Resolve(ctx, r.Host)
	if err != nil {
		log.Error().Err(err).Str("host", r.Host).Msg("Community lookup failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	other := domain.Other{CommunitySearchStatus: searchStatus}
	if searchStatus == domain.SearchNotFound {
		count, err := s.store.Count(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Community count failed")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		other.NoCommunities = count == 0
	}

	redirected := false
	err = redirect.NeedsRedirect(req, comm, s.config.RedirectPaths(), s.config.PlatformConfigs(), other, func(target domain.Target) {
		redirected = true
		s.writeRedirect(w, r, target)
	})
	if err != nil {
		// Validation and unknown-reason failures are request-construction
		// bugs, not routing decisions.
		log.Error().Err(err).Str("host", req.Host).Msg("Redirect decision failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if redirected {
		return
	}

	if s.upstream == nil {
		log.Warn().Str("host", req.Host).Msg("No upstream configured for pass-through request")
		http.Error(w, "Bad Gateway: no upstream configured", http.StatusBadGateway)
		return
	}
	s.upstream.ServeHTTP(w, r)
}

func (s *Server) writeRedirect(w http.ResponseWriter, r *http.Request, target domain.Target) {
	location := target.URL
	if location == "" {
		path, ok := s.config.RoutePath(target.RouteName)
		if !ok {
			log.Error().Str("route_name", string(target.RouteName)).Msg("Redirect target references unknown route")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		location = path
	}

	log.Debug().
		Str("reason", string(target.Reason)).
		Str("location", location).
		Int("status", target.Status).
		Msg("Redirecting request")

	http.Redirect(w, r, location, target.Status)
}

func (s *Server) Start(ctx context.Context) error {
	addr := ":" + strconv.Itoa(s.config.Server.Port)

	// Wrap the mux with middleware
	handler := middleware.Chain(
		middleware.PanicRecovery,
		middleware.RequestLogger,
	)(s.mux)

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	log.Info().Str("address", addr).Str("app_domain", s.config.Platform.AppDomain).Msg("Front door starting")

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Info().Msg("Front door shutting down...")
		return server.Shutdown(context.Background())
	}
}
