package listing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestGateModes(t *testing.T) {
	r := NewReducer()

	idle := Gate(NewState(language.English))
	assert.Equal(t, ModeReady, idle.Mode)

	s, req := started(t, r)
	assert.Equal(t, ModeLoading, Gate(s).Mode)

	s = receive(t, r, s, req, true, character("1", "Rick", "Earth"))
	v := Gate(s)
	assert.Equal(t, ModeReady, v.Mode)
	assert.Equal(t, []string{"Rick"}, names(v.Rows))
	assert.True(t, v.HasMore)
}

func TestGateLoadMoreKeepsRows(t *testing.T) {
	r := NewReducer()
	s, req := started(t, r)
	s = receive(t, r, s, req, true, character("1", "Rick", "Earth"))
	s, _ = r.Reduce(s, ScrollNearBottom{})

	v := Gate(s)
	assert.Equal(t, ModeLoading, v.Mode)
	assert.Equal(t, []string{"Rick"}, names(v.Rows))
}

func TestGateFilterResetShowsNoStaleRows(t *testing.T) {
	r := NewReducer()
	s, req := started(t, r)
	s = receive(t, r, s, req, true, character("1", "Rick", "Earth"))
	s, _ = r.Reduce(s, FilterChanged{Status: "Dead"})

	v := Gate(s)
	assert.Equal(t, ModeLoading, v.Mode)
	assert.Empty(t, v.Rows)
	assert.Equal(t, "Dead", v.Query.Status)
}

func TestGateErrorSuppressesRows(t *testing.T) {
	r := NewReducer()
	s, req := started(t, r)
	s = receive(t, r, s, req, true, character("1", "Rick", "Earth"))
	s, req = r.Reduce(s, ScrollNearBottom{})
	require.NotNil(t, req)
	s = reduce(r, s, FetchFailed{Request: *req, Err: errors.New("network down")})

	require.NotEmpty(t, s.Buffer)
	v := Gate(s)
	assert.Equal(t, ModeError, v.Mode)
	assert.EqualError(t, v.Err, "network down")
	assert.Empty(t, v.Rows)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "error", ModeError.String())
	assert.Equal(t, "loading", ModeLoading.String())
	assert.Equal(t, "ready", ModeReady.String())
}
