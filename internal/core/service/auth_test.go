package service

import (
	"testing"

	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Run("InitializesSession", func(t *testing.T) {
		creds := domain.Credentials{Username: "crio.do", Password: "learnbydoing"}
		backend := new(MockBackend)
		backend.On("Login", mock.Anything, creds).Return(domain.Login{
			Token: "tok", Username: "crio.do", Balance: 5000,
		}, nil)

		kv := newFakeKV()
		s := New(t.Context(), backend, kv)

		sess, err := s.Login(t.Context(), "sid", creds)
		require.NoError(t, err)
		assert.True(t, sess.LoggedIn())

		assert.Equal(t, map[string]string{
			domain.SessionTokenKey:    "tok",
			domain.SessionUsernameKey: "crio.do",
			domain.SessionBalanceKey:  "5000",
		}, kv.m["sid"])
	})

	t.Run("ValidationBeforeRemote", func(t *testing.T) {
		backend := new(MockBackend)
		s := New(t.Context(), backend, newFakeKV())

		_, err := s.Login(t.Context(), "sid", domain.Credentials{Username: "crio.do"})
		assert.ErrorIs(t, err, domain.ErrPasswordRequired)
		backend.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("RemoteRejection", func(t *testing.T) {
		backend := new(MockBackend)
		backend.On("Login", mock.Anything, mock.Anything).Return(
			domain.Login{},
			&domain.RemoteError{StatusCode: 400, Message: "Password is incorrect"},
		)
		kv := newFakeKV()
		s := New(t.Context(), backend, kv)

		_, err := s.Login(t.Context(), "sid", domain.Credentials{Username: "u", Password: "p"})
		var remoteErr *domain.RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, "Password is incorrect", remoteErr.Message)
		assert.Empty(t, kv.m)
	})
}

func TestRegister(t *testing.T) {
	backend := new(MockBackend)
	backend.On("Register", mock.Anything, domain.Credentials{
		Username: "crio.do", Password: "learnbydoing",
	}).Return(nil).Once()

	s := New(t.Context(), backend, newFakeKV())

	err := s.Register(t.Context(), domain.Registration{
		Username: "crio.do", Password: "learnbydoing", ConfirmPassword: "nope",
	})
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

	err = s.Register(t.Context(), domain.Registration{
		Username: "crio.do", Password: "learnbydoing", ConfirmPassword: "learnbydoing",
	})
	require.NoError(t, err)
	backend.AssertExpectations(t)
}

func TestLogout(t *testing.T) {
	kv := loggedInKV()
	s := New(t.Context(), new(MockBackend), kv)
	s.views.get("sid").setCart([]domain.CartItem{{ProductID: "A", Qty: 1}})

	require.NoError(t, s.Logout(t.Context(), "sid"))
	assert.NotContains(t, kv.m, "sid")

	_, hasCart := s.views.get("sid").cart()
	assert.False(t, hasCart)

	sess, err := s.LoadSession(t.Context(), "sid")
	require.NoError(t, err)
	assert.False(t, sess.LoggedIn())
}
