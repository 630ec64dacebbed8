package errors_test

import (
	"fmt"
	"testing"

	"github.com/cordialsys/solbank/client/errors"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	err := errors.AccountNotFoundf("user account %s", "abc")
	require.Equal(t, "AccountNotFound: user account abc", err.Error())

	wrapped := fmt.Errorf("fetch: %w", err)
	status, ok := errors.StatusOf(wrapped)
	require.True(t, ok)
	require.Equal(t, errors.AccountNotFound, status)
	require.True(t, errors.Is(wrapped, errors.AccountNotFound))
	require.False(t, errors.Is(wrapped, errors.NetworkError))

	_, ok = errors.StatusOf(fmt.Errorf("plain"))
	require.False(t, ok)
}
