package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/BoxLedger_Go/internal/domain"
)

type stubTx struct {
	rollbackErr error
	rollbacks   int
}

func (s *stubTx) Commit(context.Context) error { return nil }

func (s *stubTx) Rollback(context.Context) error {
	s.rollbacks++
	return s.rollbackErr
}

func TestSafeRollback(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"open transaction", nil},
		{"already committed", domain.ErrTxClosed},
		{"wrapped closed", fmt.Errorf("postgres: %w", domain.ErrTxClosed)},
		{"connection lost", errors.New("conn closed")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := &stubTx{rollbackErr: tc.err}
			assert.NotPanics(t, func() { SafeRollback(context.Background(), tx) })
			assert.Equal(t, 1, tx.rollbacks)
		})
	}
}
