package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/questboard/backend/internal/middleware"
	"github.com/questboard/backend/internal/model"
	"github.com/questboard/backend/pkg/authenticator"
	"github.com/questboard/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadContext()
	s.loadDatabase()
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	log.Printf("Starting server on port: %s\n", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	log.Printf("server stop")
	return nil
}

type livenessRequest struct{}

type livenessResponse struct {
	Status string `json:"status"`
}

func liveness(context.Context, *livenessRequest) (*livenessResponse, error) {
	return &livenessResponse{Status: "ok"}, nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Public API
	publicRouter := s.router.Branch()
	{
		router.GET(publicRouter, "/", liveness)
		router.GET(publicRouter, "/getQuest", s.questDomain.Get)
		router.GET(publicRouter, "/getListQuest", s.questDomain.GetList)
		router.GET(publicRouter, "/getLeaderBoard", s.statisticDomain.GetLeaderBoard)
		router.GET(publicRouter, "/getGuildStats", s.statisticDomain.GetGuildStats)
		router.GET(publicRouter, "/getChannels", s.channelDomain.GetChannels)
	}

	// These following APIs need authentication with an Access Token.
	tokenEngine := authenticator.NewTokenEngine[model.AccessToken](s.configs.Auth.AccessToken)
	authVerifier := middleware.NewAuthVerifier(tokenEngine)
	authRouter := s.router.Branch()
	authRouter.Before(authVerifier.Middleware())
	{
		// Quest API
		router.POST(authRouter, "/createQuest", s.questDomain.Create)
		router.POST(authRouter, "/acceptQuest", s.questDomain.Accept)
		router.POST(authRouter, "/completeQuest", s.questDomain.Complete)
		router.POST(authRouter, "/reviewQuest", s.questDomain.Review)
		router.POST(authRouter, "/deleteQuest", s.questDomain.Delete)
		router.GET(authRouter, "/getUserQuests", s.questDomain.GetUserQuests)
		router.GET(authRouter, "/getPendingApprovals", s.questDomain.GetPendingApprovals)

		// Statistic API
		router.GET(authRouter, "/getUserStats", s.statisticDomain.GetUserStats)

		// Channel API
		router.POST(authRouter, "/setChannels", s.channelDomain.SetChannels)
	}
}
