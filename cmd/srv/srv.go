package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/questboard/backend/config"
	"github.com/questboard/backend/internal/domain"
	"github.com/questboard/backend/internal/domain/statistic"
	"github.com/questboard/backend/internal/repository"
	"github.com/questboard/backend/pkg/logger"
	"github.com/questboard/backend/pkg/router"
	"github.com/questboard/backend/pkg/xcontext"
	"github.com/questboard/backend/pkg/xredis"

	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	questRepo         repository.QuestRepository
	progressRepo      repository.QuestProgressRepository
	statsRepo         repository.UserStatsRepository
	channelConfigRepo repository.ChannelConfigRepository

	leaderboard     statistic.Leaderboard
	questDomain     domain.QuestDomain
	statisticDomain domain.StatisticDomain
	channelDomain   domain.ChannelDomain

	db          *gorm.DB
	redisClient xredis.Client
	logger      logger.Logger
	configs     *config.Configs
	router      *router.Router
	server      *http.Server
}

func (s *srv) loadConfig() {
	s.configs = &config.Configs{
		Env: getEnv("ENV", "dev"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "mysql"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "questboard"),
			Password: getEnv("MYSQL_PASSWORD", "questboard"),
			Database: getEnv("MYSQL_DATABASE", "questboard"),
		},
		ApiServer: config.ServerConfigs{
			Host:         getEnv("HOST", "localhost"),
			Port:         getEnv("PORT", "8080"),
			MaxLimit:     getEnvAsInt("API_MAX_LIMIT", 25),
			DefaultLimit: getEnvAsInt("API_DEFAULT_LIMIT", 10),
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     getEnv("TOKEN_SECRET", "token_secret"),
				Expiration: getEnvAsDuration("TOKEN_EXPIRATION", "24h"),
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Quest: config.QuestConfigs{
			IDLength:       uint(getEnvAsInt("QUEST_ID_LENGTH", 8)),
			AcceptCooldown: getEnvAsDuration("QUEST_ACCEPT_COOLDOWN", "24h"),
		},
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "dev" || s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadContext() {
	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, *s.configs)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                       s.configs.Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadRedis() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.questRepo = repository.NewQuestRepository()
	s.progressRepo = repository.NewQuestProgressRepository()
	s.statsRepo = repository.NewUserStatsRepository()
	s.channelConfigRepo = repository.NewChannelConfigRepository()
}

func (s *srv) loadDomains() {
	s.leaderboard = statistic.New(s.statsRepo, s.redisClient)
	s.questDomain = domain.NewQuestDomain(s.questRepo, s.progressRepo, s.statsRepo, s.leaderboard)
	s.statisticDomain = domain.NewStatisticDomain(s.statsRepo, s.leaderboard)
	s.channelDomain = domain.NewChannelDomain(s.channelConfigRepo)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return n
}

func getEnvAsDuration(key, fallback string) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		value = fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}

	return d
}
