package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"monad_spin/internal/config"
	"monad_spin/internal/model"
	"monad_spin/internal/repository"
	"monad_spin/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// journalTimeout - сколько ждём запись в журнал
const journalTimeout = 3 * time.Second

// Deps - зависимости координатора
type Deps struct {
	Wallet  service.WalletGateway
	Token   service.TokenGateway
	Journal service.JournalService
	Repo    repository.SessionRepository
	GameCfg config.GameConfig
	// TargetChainID - сеть, на которую переключаемся после подключения
	TargetChainID uint64
	// Rand - источник случайности, nil - от текущего времени
	Rand   *rand.Rand
	Logger *zap.Logger
}

type serv struct {
	wallet  service.WalletGateway
	token   service.TokenGateway
	journal service.JournalService
	repo    repository.SessionRepository
	cfg     config.GameConfig
	table   model.RewardTable
	target  uint64
	logger  *zap.Logger

	rndMtx sync.Mutex
	rnd    *rand.Rand

	connectGroup singleflight.Group

	// lifeMtx упорядочивает смену сессии: фиксацию connect, disconnect и смену сети.
	// generation растёт при каждом disconnect, connect с устаревшим поколением не фиксируется
	lifeMtx    sync.Mutex
	generation uint64

	// Фоновые задачи текущей сессии
	bgMtx    sync.Mutex
	bgCancel context.CancelFunc
	bgWG     *sync.WaitGroup

	journalWG sync.WaitGroup

	// Цикл событий кошелька
	events   *eventQueue
	loopMtx  sync.Mutex
	loopStop context.CancelFunc
	loopDone chan struct{}
}

// NewGameService Создать координатор игры
func NewGameService(deps Deps) service.GameService {
	rnd := deps.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &serv{
		wallet:  deps.Wallet,
		token:   deps.Token,
		journal: deps.Journal,
		repo:    deps.Repo,
		cfg:     deps.GameCfg,
		table:   deps.GameCfg.RewardTable(),
		target:  deps.TargetChainID,
		logger:  deps.Logger,
		rnd:     rnd,
		events:  newEventQueue(),
	}
}

func (s *serv) Snapshot() model.Session {
	return s.repo.Snapshot()
}

func (s *serv) Rewards() model.RewardTable {
	return s.table
}

func (s *serv) Networks() model.Networks {
	return s.wallet.Networks()
}

// setError сохраняет сообщение об ошибке для текущей сессии
func (s *serv) setError(sessionID string, err error) {
	_ = s.repo.Update(func(sess *model.Session) error {
		if sess.ID == sessionID {
			sess.Error = err.Error()
		}
		return nil
	})
}

// setNotice показывает сообщение об успехе на NoticeTTL
func (s *serv) setNotice(sessionID, notice string) {
	var at time.Time
	_ = s.repo.Update(func(sess *model.Session) error {
		if sess.ID != sessionID {
			return nil
		}
		at = time.Now()
		sess.Notice = notice
		sess.NoticeAt = at
		return nil
	})
	if at.IsZero() {
		return
	}

	time.AfterFunc(s.cfg.NoticeTTL(), func() {
		_ = s.repo.Update(func(sess *model.Session) error {
			if sess.ID == sessionID && sess.NoticeAt.Equal(at) {
				sess.Notice = ""
				sess.NoticeAt = time.Time{}
			}
			return nil
		})
	})
}

// record пишет событие в журнал с адресом и сетью текущей сессии.
// Запись идёт в фоне, игра её не ждёт
func (s *serv) record(sess model.Session, eventType model.JournalEventType, points int64, details, txHash string) {
	event := model.JournalEvent{
		SessionID: sess.ID,
		Type:      eventType,
		Points:    points,
		Details:   details,
		TxHash:    txHash,
	}
	if sess.Wallet != nil {
		event.Address = sess.Wallet.Address.Hex()
		event.ChainID = sess.Wallet.ChainID
	}

	s.journalWG.Add(1)
	go func() {
		defer s.journalWG.Done()
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()
		if eventType == model.JournalPointsConverted {
			s.journal.RecordConversion(ctx, event)
			return
		}
		s.journal.Record(ctx, event)
	}()
}
