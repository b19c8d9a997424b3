package app

import (
	"context"

	gameAPI "monad_spin/internal/api/game"
	tokenAPI "monad_spin/internal/api/token"
	walletAPI "monad_spin/internal/api/wallet"
	"monad_spin/internal/config"
	"monad_spin/internal/config/env"
	"monad_spin/internal/repository"
	"monad_spin/internal/repository/journal_repo"
	"monad_spin/internal/repository/session_repo"
	"monad_spin/internal/service"
	"monad_spin/internal/service/game"
	"monad_spin/internal/service/journal"
	"monad_spin/internal/service/token"
	"monad_spin/internal/service/wallet"
	"monad_spin/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Logger
	loggerCfg config.LoggerConfig

	// Journal bits
	journalRepo repository.JournalRepository
	journalServ service.JournalService

	// Wallet bits
	walletCfg  config.WalletConfig
	walletGate service.WalletGateway
	walletHand *walletAPI.Handler

	// Token bits
	contractCfg config.ContractConfig
	tokenGate   service.TokenGateway
	tokenHand   *tokenAPI.Handler

	// Game bits
	gameCfg     config.GameConfig
	sessionRepo repository.SessionRepository
	gameServ    service.GameService
	gameHand    *gameAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LoggerCfg() config.LoggerConfig {
	if sp.loggerCfg == nil {
		cfg, err := env.NewLoggerConfig()
		if err != nil {
			panic("failed to get logger config: " + err.Error())
		}
		sp.loggerCfg = cfg
	}
	return sp.loggerCfg
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) JournalRepository(ctx context.Context) repository.JournalRepository {
	if sp.journalRepo == nil {
		sp.journalRepo = journal_repo.NewJournalRepository(sp.DBClient(ctx))
	}
	return sp.journalRepo
}

// JournalService - без PG_DSN журнал не пишется и база не нужна
func (sp *ServiceProvider) JournalService(ctx context.Context) service.JournalService {
	if sp.journalServ == nil {
		if !sp.PgConfig().Enabled() {
			logger.GetLogger().Info("PG_DSN is not set, game journal disabled")
			sp.journalServ = journal.NewNopJournal()
			return sp.journalServ
		}
		sp.journalServ = journal.NewJournalService(
			sp.JournalRepository(ctx),
			sp.TXManager(ctx),
			logger.GetLogger().Named("journal"),
		)
	}
	return sp.journalServ
}

func (sp *ServiceProvider) WalletCfg() config.WalletConfig {
	if sp.walletCfg == nil {
		cfg, err := env.NewWalletConfig()
		if err != nil {
			panic("failed to get wallet config: " + err.Error())
		}
		sp.walletCfg = cfg
	}
	return sp.walletCfg
}

func (sp *ServiceProvider) WalletGateway() service.WalletGateway {
	if sp.walletGate == nil {
		l := logger.GetLogger().Named("wallet")
		sp.walletGate = wallet.NewWalletGateway(sp.WalletCfg(), wallet.NewDialer(sp.WalletCfg(), l), l)
	}
	return sp.walletGate
}

func (sp *ServiceProvider) WalletHandler(ctx context.Context) *walletAPI.Handler {
	if sp.walletHand == nil {
		sp.walletHand = walletAPI.NewHandler(walletAPI.HandlerDeps{
			Serv:   sp.GameService(ctx),
			Logger: logger.GetLogger(),
		})
	}
	return sp.walletHand
}

func (sp *ServiceProvider) ContractCfg() config.ContractConfig {
	if sp.contractCfg == nil {
		cfg, err := env.NewContractConfig()
		if err != nil {
			panic("failed to get contract config: " + err.Error())
		}
		sp.contractCfg = cfg
	}
	return sp.contractCfg
}

func (sp *ServiceProvider) TokenGateway() service.TokenGateway {
	if sp.tokenGate == nil {
		g, err := token.NewTokenGateway(sp.ContractCfg(), logger.GetLogger().Named("token"))
		if err != nil {
			panic("failed to create token gateway: " + err.Error())
		}
		sp.tokenGate = g
	}
	return sp.tokenGate
}

func (sp *ServiceProvider) TokenHandler(ctx context.Context) *tokenAPI.Handler {
	if sp.tokenHand == nil {
		sp.tokenHand = tokenAPI.NewHandler(tokenAPI.HandlerDeps{
			Serv:   sp.GameService(ctx),
			Logger: logger.GetLogger(),
		})
	}
	return sp.tokenHand
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfig()
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) SessionRepository() repository.SessionRepository {
	if sp.sessionRepo == nil {
		sp.sessionRepo = session_repo.NewSessionRepository()
	}
	return sp.sessionRepo
}

func (sp *ServiceProvider) GameService(ctx context.Context) service.GameService {
	if sp.gameServ == nil {
		sp.gameServ = game.NewGameService(game.Deps{
			Wallet:        sp.WalletGateway(),
			Token:         sp.TokenGateway(),
			Journal:       sp.JournalService(ctx),
			Repo:          sp.SessionRepository(),
			GameCfg:       sp.GameCfg(),
			TargetChainID: sp.WalletCfg().TargetChainID(),
			Logger:        logger.GetLogger().Named("game"),
		})
	}
	return sp.gameServ
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(gameAPI.HandlerDeps{
			Serv:          sp.GameService(ctx),
			SpinDuration:  sp.GameCfg().SpinDuration(),
			TargetChainID: sp.WalletCfg().TargetChainID(),
			Logger:        logger.GetLogger(),
		})
	}
	return sp.gameHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(logger.Middleware)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		gameHandler := sp.GameHandler(ctx)
		r.Get("/state", gameHandler.State)
		r.Get("/rewards", gameHandler.Rewards)
		r.Get("/networks", gameHandler.Networks)
		r.Route("/game", func(rr chi.Router) {
			rr.Post("/spin", gameHandler.Spin)
			rr.Post("/claim", gameHandler.Claim)
		})

		walletHandler := sp.WalletHandler(ctx)
		r.Route("/wallet", func(rr chi.Router) {
			rr.Post("/connect", walletHandler.Connect)
			rr.Post("/disconnect", walletHandler.Disconnect)
			rr.Post("/switch-network", walletHandler.SwitchNetwork)
		})

		tokenHandler := sp.TokenHandler(ctx)
		r.Route("/token", func(rr chi.Router) {
			rr.Get("/stats", tokenHandler.Stats)
			rr.Post("/claim", tokenHandler.Claim)
			rr.Post("/convert", tokenHandler.Convert)
			rr.Post("/watch-asset", tokenHandler.WatchAsset)
		})

		sp.router = r
	}

	return sp.router
}

// Close освобождает пул базы, если он создавался
func (sp *ServiceProvider) Close() {
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	logger.Sync()
}
