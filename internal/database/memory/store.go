// Package memory is an in-process store for development and tests. One transaction
// runs at a time; its writes are buffered and applied together on commit.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osse101/BoxLedger_Go/internal/domain"
	"github.com/osse101/BoxLedger_Go/internal/repository"
)

// Store implements repository.Box, repository.Token and repository.Outbox in memory
type Store struct {
	txMu sync.Mutex // serializes transactions

	mu       sync.RWMutex // guards the committed data below
	state    *domain.BoxState
	accounts map[string]domain.AccountRecord
	balances map[string]domain.Amount
	outbox   map[string]*domain.PendingTransfer
	order    []string
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.AccountRecord),
		balances: make(map[string]domain.Amount),
		outbox:   make(map[string]*domain.PendingTransfer),
	}
}

var (
	_ repository.Box    = (*Store)(nil)
	_ repository.Token  = (*Store)(nil)
	_ repository.Outbox = (*Store)(nil)
)

// Tx buffers writes until Commit. It holds the store's transaction lock until it ends.
type Tx struct {
	store    *Store
	state    *domain.BoxState
	stateSet bool
	accounts map[string]domain.AccountRecord
	balances map[string]domain.Amount
	outbox   []*domain.PendingTransfer
	done     bool
}

func (s *Store) begin(ctx context.Context) (*Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.txMu.Lock()
	return &Tx{
		store:    s,
		accounts: make(map[string]domain.AccountRecord),
		balances: make(map[string]domain.Amount),
	}, nil
}

// BeginBoxTx starts a transaction over the whole store
func (s *Store) BeginBoxTx(ctx context.Context) (repository.BoxTx, error) {
	return s.begin(ctx)
}

// BeginTokenTx starts a transaction over the whole store
func (s *Store) BeginTokenTx(ctx context.Context) (repository.TokenTx, error) {
	return s.begin(ctx)
}

// Commit applies the buffered writes
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return domain.ErrTxClosed
	}
	t.done = true
	defer t.store.txMu.Unlock()

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.stateSet {
		s.state = t.state.Clone()
	}
	for id, rec := range t.accounts {
		s.accounts[id] = rec
	}
	for id, bal := range t.balances {
		s.balances[id] = bal
	}
	for _, pt := range t.outbox {
		s.outbox[pt.ID] = pt
		s.order = append(s.order, pt.ID)
	}
	return nil
}

// Rollback discards the buffered writes
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return domain.ErrTxClosed
	}
	t.done = true
	t.store.txMu.Unlock()
	return nil
}

// ---- Box state ----

// GetStateForUpdate returns the buffered state or a copy of the committed one
func (t *Tx) GetStateForUpdate(ctx context.Context) (*domain.BoxState, error) {
	if t.stateSet {
		return t.state.Clone(), nil
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if t.store.state == nil {
		return nil, domain.ErrNotInitialized
	}
	return t.store.state.Clone(), nil
}

// CreateState buffers the initial state
func (t *Tx) CreateState(ctx context.Context, state *domain.BoxState) error {
	if _, err := t.GetStateForUpdate(ctx); err == nil {
		return domain.ErrAlreadyInitialized
	}
	return t.SaveState(ctx, state)
}

// SaveState buffers state
func (t *Tx) SaveState(ctx context.Context, state *domain.BoxState) error {
	t.state = state.Clone()
	t.stateSet = true
	return nil
}

// GetAccountForUpdate returns the buffered or committed record, or a zero record
func (t *Tx) GetAccountForUpdate(ctx context.Context, account string) (*domain.AccountRecord, error) {
	if rec, ok := t.accounts[account]; ok {
		return &rec, nil
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if rec, ok := t.store.accounts[account]; ok {
		return &rec, nil
	}
	return domain.NewAccountRecord(account), nil
}

// SaveAccount buffers rec
func (t *Tx) SaveAccount(ctx context.Context, rec *domain.AccountRecord) error {
	t.accounts[rec.AccountID] = *rec
	return nil
}

// ---- Token balances ----

// GetBalance reads the buffered or committed balance
func (t *Tx) GetBalance(ctx context.Context, account string) (domain.Amount, bool, error) {
	if bal, ok := t.balances[account]; ok {
		return bal, true, nil
	}
	return t.store.GetBalance(ctx, account)
}

// RegisterAccount buffers a zero balance when the account has none
func (t *Tx) RegisterAccount(ctx context.Context, account string) (bool, error) {
	_, registered, err := t.GetBalance(ctx, account)
	if err != nil || registered {
		return false, err
	}
	t.balances[account] = domain.ZeroAmount()
	return true, nil
}

// SetBalance buffers a new balance for a registered account
func (t *Tx) SetBalance(ctx context.Context, account string, amount domain.Amount) error {
	if _, registered, _ := t.GetBalance(ctx, account); !registered {
		return domain.ErrAccountNotRegistered
	}
	t.balances[account] = amount
	return nil
}

// EnqueueTransfer buffers an outbox row
func (t *Tx) EnqueueTransfer(ctx context.Context, pt *domain.PendingTransfer) error {
	c := *pt
	t.outbox = append(t.outbox, &c)
	return nil
}

// ---- Reads outside transactions ----

// Ping reports the store as reachable while ctx is live
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// GetState returns a copy of the committed state
func (s *Store) GetState(ctx context.Context) (*domain.BoxState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, domain.ErrNotInitialized
	}
	return s.state.Clone(), nil
}

// GetAccount returns the committed record or a zero record
func (s *Store) GetAccount(ctx context.Context, account string) (*domain.AccountRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.accounts[account]; ok {
		return &rec, nil
	}
	return domain.NewAccountRecord(account), nil
}

// GetAccounts returns the committed records of the known accounts
func (s *Store) GetAccounts(ctx context.Context, accounts []string) (map[string]*domain.AccountRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*domain.AccountRecord, len(accounts))
	for _, id := range accounts {
		if rec, ok := s.accounts[id]; ok {
			r := rec
			out[id] = &r
		}
	}
	return out, nil
}

// GetBalance returns the committed balance and whether the account is registered
func (s *Store) GetBalance(ctx context.Context, account string) (domain.Amount, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bal, ok := s.balances[account]
	if !ok {
		return domain.ZeroAmount(), false, nil
	}
	return bal, true, nil
}

// GetTotalSupply sums all committed balances
func (s *Store) GetTotalSupply(ctx context.Context) (domain.Amount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := domain.ZeroAmount()
	for _, bal := range s.balances {
		next, err := domain.SafeAdd(total, bal)
		if err != nil {
			return domain.ZeroAmount(), err
		}
		total = next
	}
	return total, nil
}

// ---- Outbox ----

// ClaimByID moves a pending row to dispatching
func (s *Store) ClaimByID(ctx context.Context, id string) (*domain.PendingTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pt, ok := s.outbox[id]
	if !ok || pt.Status != domain.TransferStatusPending {
		return nil, nil
	}
	claim(pt)
	c := *pt
	return &c, nil
}

// ClaimPending claims up to limit pending rows, oldest first
func (s *Store) ClaimPending(ctx context.Context, limit int) ([]*domain.PendingTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.PendingTransfer
	for _, id := range s.order {
		if len(out) >= limit {
			break
		}
		pt := s.outbox[id]
		if pt.Status != domain.TransferStatusPending {
			continue
		}
		claim(pt)
		c := *pt
		out = append(out, &c)
	}
	return out, nil
}

func claim(pt *domain.PendingTransfer) {
	now := time.Now().UTC()
	pt.Status = domain.TransferStatusDispatching
	pt.Attempts++
	pt.ClaimedAt = &now
}

// FailStale fails rows dispatching since before cutoff
func (s *Store) FailStale(ctx context.Context, cutoff time.Time, reason string) ([]*domain.PendingTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.PendingTransfer
	now := time.Now().UTC()
	for _, id := range s.order {
		pt := s.outbox[id]
		if pt.Status != domain.TransferStatusDispatching || pt.ClaimedAt == nil || pt.ClaimedAt.After(cutoff) {
			continue
		}
		at := now
		pt.Status = domain.TransferStatusFailed
		pt.LastError = reason
		pt.DispatchedAt = &at
		c := *pt
		out = append(out, &c)
	}
	return out, nil
}

// MarkDone records a completed dispatch
func (s *Store) MarkDone(ctx context.Context, id string) error {
	return s.finish(id, domain.TransferStatusDone, "")
}

// MarkFailed records a failed dispatch with its reason
func (s *Store) MarkFailed(ctx context.Context, id string, reason string) error {
	return s.finish(id, domain.TransferStatusFailed, reason)
}

func (s *Store) finish(id string, status domain.TransferStatus, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pt, ok := s.outbox[id]
	if !ok {
		return domain.ErrTransferNotFound
	}
	now := time.Now().UTC()
	pt.Status = status
	pt.LastError = reason
	pt.DispatchedAt = &now
	return nil
}

// Transfers returns copies of all outbox rows in insertion order
func (s *Store) Transfers() []*domain.PendingTransfer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.PendingTransfer, 0, len(s.order))
	for _, id := range s.order {
		c := *s.outbox[id]
		out = append(out, &c)
	}
	return out
}

// Accounts returns the registered token accounts, sorted
func (s *Store) Accounts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.balances))
	for id := range s.balances {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
