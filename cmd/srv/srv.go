package main

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/docthru/backend/config"
	"github.com/docthru/backend/internal/domain"
	"github.com/docthru/backend/internal/model"
	"github.com/docthru/backend/internal/repository"
	"github.com/docthru/backend/migration"
	"github.com/docthru/backend/pkg/authenticator"
	"github.com/docthru/backend/pkg/kafka"
	"github.com/docthru/backend/pkg/logger"
	"github.com/docthru/backend/pkg/pubsub"
	"github.com/docthru/backend/pkg/router"
	"github.com/docthru/backend/pkg/xcontext"
	"github.com/docthru/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	server *http.Server
	router *router.Router

	publisher   pubsub.Publisher
	redisClient xredis.Client

	userRepo        repository.UserRepository
	challengeRepo   repository.ChallengeRepository
	applicationRepo repository.ApplicationRepository
	participantRepo repository.ParticipantRepository
	workRepo        repository.WorkRepository
	feedbackRepo    repository.FeedbackRepository

	challengeDomain   domain.ChallengeDomain
	applicationDomain domain.ApplicationDomain
	feedbackDomain    domain.FeedbackDomain

	accessTokenEngine authenticator.TokenEngine[model.AccessToken]
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(cctx.Context, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger("docthru", cfg.Log.Level))

	node, err := snowflake.NewNode(cfg.SnowFlake.NodeID)
	if err != nil {
		return err
	}
	s.ctx = xcontext.WithSnowFlake(s.ctx, node)

	return nil
}

func (s *srv) newDatabase() (*gorm.DB, error) {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.File)
	default:
		dialector = mysql.New(mysql.Config{
			DSN:                    cfg.ConnectionString(),
			DefaultStringSize:      256,
			DontSupportRenameIndex: true,
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "sqlite" {
		// sqlite serializes writers anyway.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return db, nil
}

func (s *srv) loadDatabase() error {
	db, err := s.newDatabase()
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) migrateDB() error {
	return migration.Migrate(s.ctx)
}

func (s *srv) loadPublisher() error {
	cfg := xcontext.Configs(s.ctx).Kafka
	if !cfg.Enabled() {
		xcontext.Logger(s.ctx).Infof("Kafka is not configured, events are dropped")
		s.publisher = pubsub.NewNoopPublisher()
		return nil
	}

	publisher, err := kafka.NewPublisher(cfg.ClientID, cfg.Addrs)
	if err != nil {
		return err
	}

	s.publisher = publisher
	return nil
}

func (s *srv) loadRedisClient() error {
	if !xcontext.Configs(s.ctx).Redis.Enabled() {
		xcontext.Logger(s.ctx).Infof("Redis is not configured, cron jobs run without lock")
		return nil
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		return err
	}

	s.redisClient = client
	return nil
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.challengeRepo = repository.NewChallengeRepository()
	s.applicationRepo = repository.NewApplicationRepository()
	s.participantRepo = repository.NewParticipantRepository()
	s.workRepo = repository.NewWorkRepository()
	s.feedbackRepo = repository.NewFeedbackRepository()
}

func (s *srv) loadDomains() {
	s.challengeDomain = domain.NewChallengeDomain(
		s.challengeRepo, s.applicationRepo, s.participantRepo,
		s.workRepo, s.feedbackRepo, s.userRepo, s.publisher)
	s.applicationDomain = domain.NewApplicationDomain(s.applicationRepo, s.userRepo, s.publisher)
	s.feedbackDomain = domain.NewFeedbackDomain(s.workRepo, s.feedbackRepo)
}

func (s *srv) loadAccessTokenEngine() {
	cfg := xcontext.Configs(s.ctx).Auth
	s.accessTokenEngine = authenticator.NewTokenEngine[model.AccessToken](cfg.TokenSecret, cfg.AccessToken)
}
