package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

const selectStateSQL = `
SELECT owner_account, contract_account, remaining, total_init, total_remaining,
       total_premium_remaining, token_pool_remaining::text, native_leaderboard,
       token_leaderboard, participants, total_participants, created_at, updated_at
FROM box_state WHERE id = $1`

const insertStateSQL = `
INSERT INTO box_state (id, owner_account, contract_account, remaining, total_init, total_remaining,
       total_premium_remaining, token_pool_remaining, native_leaderboard, token_leaderboard,
       participants, total_participants, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text::numeric, $9, $10, $11, $12, $13, $14)
ON CONFLICT (id) DO NOTHING`

const updateStateSQL = `
UPDATE box_state SET owner_account = $2, contract_account = $3, remaining = $4, total_init = $5,
       total_remaining = $6, total_premium_remaining = $7, token_pool_remaining = $8::text::numeric,
       native_leaderboard = $9, token_leaderboard = $10, participants = $11,
       total_participants = $12, created_at = $13, updated_at = $14
WHERE id = $1`

const selectAccountSQL = `
SELECT account_id, native_reward_total::text, token_reward_total::text, boxes_opened,
       premium_opened, additional_premium
FROM account_records`

const upsertAccountSQL = `
INSERT INTO account_records (account_id, native_reward_total, token_reward_total, boxes_opened,
       premium_opened, additional_premium, updated_at)
VALUES ($1, $2::text::numeric, $3::text::numeric, $4, $5, $6, now())
ON CONFLICT (account_id) DO UPDATE SET
       native_reward_total = EXCLUDED.native_reward_total,
       token_reward_total = EXCLUDED.token_reward_total,
       boxes_opened = EXCLUDED.boxes_opened,
       premium_opened = EXCLUDED.premium_opened,
       additional_premium = EXCLUDED.additional_premium,
       updated_at = now()`

// GetState returns the committed box state
func (s *Store) GetState(ctx context.Context) (*domain.BoxState, error) {
	return getState(ctx, s.db, selectStateSQL)
}

// GetStateForUpdate locks and returns the box state
func (t *Tx) GetStateForUpdate(ctx context.Context) (*domain.BoxState, error) {
	return getState(ctx, t.tx, selectStateSQL+" FOR UPDATE")
}

// CreateState inserts the singleton state row
func (t *Tx) CreateState(ctx context.Context, state *domain.BoxState) error {
	args, err := stateArgs(state)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, insertStateSQL, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertState, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyInitialized
	}
	return nil
}

// SaveState writes state back to the singleton row
func (t *Tx) SaveState(ctx context.Context, state *domain.BoxState) error {
	args, err := stateArgs(state)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, updateStateSQL, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateState, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotInitialized
	}
	return nil
}

// GetAccount returns the committed record of account or a zero record
func (s *Store) GetAccount(ctx context.Context, account string) (*domain.AccountRecord, error) {
	return getAccount(ctx, s.db, account, "")
}

// GetAccountForUpdate locks and returns the record of account or a zero record
func (t *Tx) GetAccountForUpdate(ctx context.Context, account string) (*domain.AccountRecord, error) {
	return getAccount(ctx, t.tx, account, " FOR UPDATE")
}

// GetAccounts returns the records of the known accounts among accounts
func (s *Store) GetAccounts(ctx context.Context, accounts []string) (map[string]*domain.AccountRecord, error) {
	rows, err := s.db.Query(ctx, selectAccountSQL+" WHERE account_id = ANY($1)", accounts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadAccounts, err)
	}
	defer rows.Close()

	out := make(map[string]*domain.AccountRecord, len(accounts))
	for rows.Next() {
		rec, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out[rec.AccountID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadAccounts, err)
	}
	return out, nil
}

// SaveAccount upserts rec
func (t *Tx) SaveAccount(ctx context.Context, rec *domain.AccountRecord) error {
	_, err := t.tx.Exec(ctx, upsertAccountSQL,
		rec.AccountID,
		rec.NativeRewardTotal.String(),
		rec.TokenRewardTotal.String(),
		int64(rec.BoxesOpened),
		int64(rec.PremiumOpened),
		int64(rec.AdditionalPremium),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertAccount, err)
	}
	return nil
}

func getState(ctx context.Context, q querier, sql string) (*domain.BoxState, error) {
	var (
		state                             domain.BoxState
		remaining                         []int64
		totalInit, totalRem, totalPremRem int64
		pool                              string
		nativeBoard, tokenBoard, roster   []byte
		totalParticipants                 int64
		createdAt, updatedAt              time.Time
	)

	err := q.QueryRow(ctx, sql, stateRowID).Scan(
		&state.Owner, &state.Contract, &remaining, &totalInit, &totalRem, &totalPremRem,
		&pool, &nativeBoard, &tokenBoard, &roster, &totalParticipants, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadState, err)
	}

	for i := 0; i < domain.TierCount && i < len(remaining); i++ {
		state.Inventory.Remaining[i] = toUint32(remaining[i])
	}
	state.Inventory.TotalInit = toUint32(totalInit)
	state.Inventory.TotalRemaining = toUint32(totalRem)
	state.Inventory.TotalPremiumRemaining = toUint32(totalPremRem)
	state.TotalParticipants = toUint32(totalParticipants)
	state.CreatedAt = createdAt.UTC()
	state.UpdatedAt = updatedAt.UTC()

	if state.TokenPoolRemaining, err = parseAmount(pool); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(nativeBoard, &state.NativeLeaderboard); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeState, err)
	}
	if err := json.Unmarshal(tokenBoard, &state.TokenLeaderboard); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeState, err)
	}
	if err := json.Unmarshal(roster, &state.Participants); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeState, err)
	}
	return &state, nil
}

func stateArgs(state *domain.BoxState) ([]any, error) {
	remaining := make([]int64, domain.TierCount)
	for i, n := range state.Inventory.Remaining {
		remaining[i] = int64(n)
	}

	nativeBoard, err := marshalList(state.NativeLeaderboard)
	if err != nil {
		return nil, err
	}
	tokenBoard, err := marshalList(state.TokenLeaderboard)
	if err != nil {
		return nil, err
	}
	roster, err := marshalList(state.Participants)
	if err != nil {
		return nil, err
	}

	return []any{
		stateRowID,
		state.Owner,
		state.Contract,
		remaining,
		int64(state.Inventory.TotalInit),
		int64(state.Inventory.TotalRemaining),
		int64(state.Inventory.TotalPremiumRemaining),
		state.TokenPoolRemaining.String(),
		nativeBoard,
		tokenBoard,
		roster,
		int64(state.TotalParticipants),
		state.CreatedAt,
		state.UpdatedAt,
	}, nil
}

// marshalList encodes a list as a JSON array; nil encodes as []
func marshalList[T any](list []T) ([]byte, error) {
	if list == nil {
		list = []T{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToEncodeState, err)
	}
	return b, nil
}

func getAccount(ctx context.Context, q querier, account, suffix string) (*domain.AccountRecord, error) {
	row := q.QueryRow(ctx, selectAccountSQL+" WHERE account_id = $1"+suffix, account)
	rec, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewAccountRecord(account), nil
		}
		return nil, err
	}
	return rec, nil
}

func scanAccount(row pgx.Row) (*domain.AccountRecord, error) {
	var (
		rec                                        domain.AccountRecord
		nativeTotal, tokenTotal                    string
		boxesOpened, premiumOpened, additionalPrem int64
	)
	if err := row.Scan(&rec.AccountID, &nativeTotal, &tokenTotal, &boxesOpened, &premiumOpened, &additionalPrem); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadAccount, err)
	}

	var err error
	if rec.NativeRewardTotal, err = parseAmount(nativeTotal); err != nil {
		return nil, err
	}
	if rec.TokenRewardTotal, err = parseAmount(tokenTotal); err != nil {
		return nil, err
	}
	rec.BoxesOpened = toUint32(boxesOpened)
	rec.PremiumOpened = toUint32(premiumOpened)
	rec.AdditionalPremium = toUint32(additionalPrem)
	return &rec, nil
}
