package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommand struct {
	name string
	err  error
	got  []string
}

func (s *stubCommand) Name() string        { return s.name }
func (s *stubCommand) Description() string { return "stub " + s.name }
func (s *stubCommand) Run(args []string) error {
	s.got = args
	return s.err
}

func TestRegistry_Dispatch(t *testing.T) {
	ok := &stubCommand{name: "ok"}
	bad := &stubCommand{name: "bad", err: errors.New("boom")}

	r := NewRegistry()
	r.Register(bad)
	r.Register(ok)

	assert.Equal(t, 0, r.Dispatch([]string{"ok", "a", "b"}))
	assert.Equal(t, []string{"a", "b"}, ok.got)

	assert.Equal(t, 1, r.Dispatch([]string{"bad"}))
	assert.Equal(t, 1, r.Dispatch([]string{"missing"}))
	assert.Equal(t, 1, r.Dispatch(nil))
	assert.Equal(t, 0, r.Dispatch([]string{"help"}))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "bad", list[0].Name())
	assert.Equal(t, "ok", list[1].Name())
}

func TestCheckHostile(t *testing.T) {
	assert.NoError(t, checkHostile("go", "test", "-bench=.", "./internal/lootbox"))
	assert.NoError(t, checkHostile("postgres://u:p@h:5432/db?sslmode=disable&x=1"))

	for _, bad := range []string{"a\nb", "x\x00", "a | b", "`id`", "$(id)", "a && b", "> out"} {
		assert.Error(t, checkHostile(bad), bad)
	}
}

func TestDBSettings(t *testing.T) {
	t.Setenv("DB_URL", "")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_PASSWORD", "p")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "ledger")

	s := loadDBSettings()
	assert.Equal(t, "postgres://u:p@db:6543/ledger?sslmode=disable", s.url(""))
	assert.Equal(t, "postgres://u:p@db:6543/postgres?sslmode=disable", s.url("postgres"))
	assert.Equal(t, s.url(""), serviceDBURL())

	t.Setenv("DB_URL", "postgres://override/x")
	assert.Equal(t, "postgres://override/x", serviceDBURL())
}
