package token

import (
	"context"
	"errors"
	"math/big"
	"time"

	"monad_spin/internal/model"
	"monad_spin/pkg/units"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

var errUnexpectedOutput = errors.New("unexpected contract output")

// GetTokenStats читает getUserStats(address) одним вызовом
func (s *serv) GetTokenStats(ctx context.Context, address common.Address) (*model.TokenStats, error) {
	sess, err := s.currentSession()
	if err != nil {
		return nil, err
	}

	values, err := s.call(ctx, sess, "getUserStats", address)
	if err != nil {
		return nil, model.NewError(model.ErrorCodeRead, "failed to read token stats", err)
	}

	// balance, totalClaimed, lastClaimTime, timeUntilNextClaim, claimableAmount, gamePoints
	fields := make([]*big.Int, 6)
	for i := range fields {
		if fields[i], err = abiBig(values, i); err != nil {
			return nil, model.NewError(model.ErrorCodeRead, "failed to decode token stats", err)
		}
	}

	decimals := s.cfg.TokenDecimals()
	stats := &model.TokenStats{
		Balance:            units.FromWei(fields[0], decimals),
		TotalClaimed:       units.FromWei(fields[1], decimals),
		TimeUntilNextClaim: time.Duration(fields[3].Int64()) * time.Second,
		ClaimableAmount:    units.FromWei(fields[4], decimals),
		GamePoints:         fields[5],
	}
	if ts := fields[2].Int64(); ts > 0 {
		stats.LastClaimTime = time.Unix(ts, 0).UTC()
	}
	return stats, nil
}

// GetContractInfo читает параметры токена параллельными eth_call
func (s *serv) GetContractInfo(ctx context.Context) (*model.ContractInfo, error) {
	sess, err := s.currentSession()
	if err != nil {
		return nil, err
	}

	var (
		name, symbol                    string
		decimals                        uint8
		totalSupply, maxClaim, cooldown *big.Int
		claimFee, contractBalance       *big.Int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		values, err := s.call(gctx, sess, "name")
		if err != nil {
			return err
		}
		return unpackOne(values, &name)
	})
	g.Go(func() error {
		values, err := s.call(gctx, sess, "symbol")
		if err != nil {
			return err
		}
		return unpackOne(values, &symbol)
	})
	g.Go(func() error {
		values, err := s.call(gctx, sess, "decimals")
		if err != nil {
			return err
		}
		return unpackOne(values, &decimals)
	})
	bigReads := []struct {
		method string
		dst    **big.Int
	}{
		{"totalSupply", &totalSupply},
		{"MAX_CLAIM_AMOUNT", &maxClaim},
		{"CLAIM_COOLDOWN", &cooldown},
		{"CLAIM_FEE", &claimFee},
		{"getContractBalance", &contractBalance},
	}
	for _, r := range bigReads {
		g.Go(func() error {
			v, err := s.callBig(gctx, sess, r.method)
			if err != nil {
				return err
			}
			*r.dst = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, model.NewError(model.ErrorCodeRead, "failed to read contract info", err)
	}

	return &model.ContractInfo{
		Name:            name,
		Symbol:          symbol,
		Decimals:        decimals,
		TotalSupply:     units.FromWei(totalSupply, decimals),
		MaxClaimAmount:  units.FromWei(maxClaim, decimals),
		ClaimCooldown:   time.Duration(cooldown.Int64()) * time.Second,
		ClaimFee:        units.FromWei(claimFee, units.EtherDecimals),
		ContractBalance: units.FromWei(contractBalance, decimals),
	}, nil
}

func unpackOne[T any](values []interface{}, dst *T) error {
	if len(values) == 0 {
		return errUnexpectedOutput
	}
	v, ok := values[0].(T)
	if !ok {
		return errUnexpectedOutput
	}
	*dst = v
	return nil
}
