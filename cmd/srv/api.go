package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/docthru/backend/internal/middleware"
	"github.com/docthru/backend/pkg/prometheus"
	"github.com/docthru/backend/pkg/router"
	"github.com/docthru/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.migrateDB(); err != nil {
		return err
	}

	if err := s.loadPublisher(); err != nil {
		return err
	}

	s.loadRepos()
	s.loadDomains()
	s.loadAccessTokenEngine()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx).ApiServer
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:           s.router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-s.ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown the server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(xcontext.DB(s.ctx), xcontext.Configs(s.ctx), xcontext.Logger(s.ctx), xcontext.SnowFlake(s.ctx))
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	s.router.Handle(http.MethodGet, "/metrics", prometheus.NewHandler())

	// These following APIs need an access token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier(s.accessTokenEngine).Required().Middleware())
	{
		// Challenge API
		router.POST(authRouter, "/createChallenge", s.challengeDomain.Create)
		router.POST(authRouter, "/updateChallenge", s.challengeDomain.Update)
		router.POST(authRouter, "/deleteChallenge", s.challengeDomain.Delete)
		router.POST(authRouter, "/joinChallenge", s.challengeDomain.Join)

		// Application API
		router.GET(authRouter, "/getApplications", s.applicationDomain.GetList)
		router.GET(authRouter, "/getApplication", s.applicationDomain.Get)
		router.POST(authRouter, "/reviewApplication", s.applicationDomain.Review)

		// Feedback API
		router.POST(authRouter, "/createFeedback", s.feedbackDomain.Create)
	}

	// Public API, the access token is optional.
	publicRouter := s.router.Branch()
	publicRouter.Before(middleware.NewAuthVerifier(s.accessTokenEngine).Middleware())
	{
		router.GET(publicRouter, "/getChallenges", s.challengeDomain.GetList)
		router.GET(publicRouter, "/getChallenge", s.challengeDomain.Get)
	}
}
