package journal_repo

import (
	"context"

	"monad_spin/internal/model"
	"monad_spin/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	eventsTable  = "game_events"
	colSessionID = "session_id"
	colAddress   = "address"
	colChainID   = "chain_id"
	colEventType = "event_type"
	colPoints    = "points"
	colDetails   = "details"
	colTxHash    = "tx_hash"
	colCreatedAt = "created_at"

	totalsTable        = "wallet_totals"
	colConvertedPoints = "converted_points"
	colUpdatedAt       = "updated_at"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewJournalRepository(dbc *pgxpool.Pool) repository.JournalRepository {
	return &repo{
		dbc: dbc,
	}
}

// InsertEvent - добавляет запись в журнал игры.
// Внутри trm транзакции пишет через неё, иначе напрямую в пул
func (r *repo) InsertEvent(ctx context.Context, event model.JournalEvent) error {
	// Формируем запрос
	query := sq.Insert(eventsTable).
		Columns(colSessionID, colAddress, colChainID, colEventType, colPoints, colDetails, colTxHash, colCreatedAt).
		Values(event.SessionID, event.Address, int64(event.ChainID), string(event.Type), event.Points, event.Details, event.TxHash, event.CreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

// AddConvertedPoints - увеличивает счётчик сконвертированных очков кошелька.
// Если записи нет, создается новая
func (r *repo) AddConvertedPoints(ctx context.Context, address string, points int64) error {
	query := sq.Insert(totalsTable).
		Columns(colAddress, colConvertedPoints, colUpdatedAt).
		Values(address, points, sq.Expr("now()")).
		Suffix("ON CONFLICT (" + colAddress + ") DO UPDATE SET " +
			colConvertedPoints + " = " + totalsTable + "." + colConvertedPoints + " + EXCLUDED." + colConvertedPoints + ", " +
			colUpdatedAt + " = now()").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}
