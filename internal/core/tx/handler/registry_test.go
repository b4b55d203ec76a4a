package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/LeJamon/goQortald/internal/core/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandler struct {
	Base
}

func (stubHandler) IsValid(context.Context) (tx.Result, error) { return tx.OK, nil }
func (stubHandler) Process(context.Context) error               { return nil }
func (stubHandler) Orphan(context.Context) error                { return nil }

func stubFactory(env *Env, t tx.Transaction) (Handler, error) {
	return stubHandler{Base: NewBase(env, t)}, nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(tx.TypeJoinGroup, stubFactory))
	require.NoError(t, r.Register(tx.TypePayment, stubFactory))

	assert.True(t, r.Has(tx.TypePayment))
	assert.False(t, r.Has(tx.TypeMessage))
	assert.Nil(t, r.Get(tx.TypeMessage))
	assert.Equal(t, []tx.Type{tx.TypePayment, tx.TypeJoinGroup}, r.Types())

	err := r.Register(tx.TypePayment, stubFactory)
	assert.Error(t, err)
	assert.Panics(t, func() { r.MustRegister(tx.TypePayment, stubFactory) })
}

func TestRegistryNew(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(tx.TypePayment, stubFactory)

	pay := &tx.PaymentTransaction{BaseTransaction: tx.BaseTransaction{Type: tx.TypePayment}}
	h, err := r.New(&Env{}, pay)
	require.NoError(t, err)
	assert.Same(t, pay, h.Transaction())

	msg := &tx.MessageTransaction{BaseTransaction: tx.BaseTransaction{Type: tx.TypeMessage}}
	_, err = r.New(&Env{}, msg)
	assert.True(t, errors.Is(err, ErrNoHandler))
}

func TestTyped(t *testing.T) {
	pay := &tx.PaymentTransaction{BaseTransaction: tx.BaseTransaction{Type: tx.TypePayment}}

	got, err := Typed[*tx.PaymentTransaction](pay)
	require.NoError(t, err)
	assert.Same(t, pay, got)

	_, err = Typed[*tx.MessageTransaction](pay)
	assert.ErrorIs(t, err, tx.ErrWrongType)
}

func TestValidLength(t *testing.T) {
	assert.False(t, ValidLength("", 4))
	assert.True(t, ValidLength("a", 4))
	assert.True(t, ValidLength("abcd", 4))
	assert.False(t, ValidLength("abcde", 4))
	// Limits count bytes, not runes.
	assert.False(t, ValidLength("ééé", 4))
	assert.False(t, ValidLength(string([]byte{0xff}), 4))
}
