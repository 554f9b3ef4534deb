package adapters

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rowzip/rowzip/core"
)

type fakeAdapter struct{}

func (fakeAdapter) Connect(string) (core.Driver, error) { return nil, nil }

func TestRegister(t *testing.T) {
	r := require.New(t)

	r.ErrorIs(register(fakeAdapter{}), errNoValidTypeAliases)
	r.ErrorIs(register(fakeAdapter{}, "", ""), errNoValidTypeAliases)

	r.NoError(register(fakeAdapter{}, "fake", "fakeish"))

	mux := new(Mux)

	adapter, err := mux.GetAdapter("fake")
	r.NoError(err)
	r.NotNil(adapter)

	adapter, err = mux.GetAdapter("fakeish")
	r.NoError(err)
	r.NotNil(adapter)

	_, err = mux.GetAdapter("bogus")
	r.ErrorIs(err, ErrUnsupportedTypeAlias)
}

func TestAddAdapter(t *testing.T) {
	r := require.New(t)

	r.NoError(new(Mux).AddAdapter("added", fakeAdapter{}))

	adapter, err := new(Mux).GetAdapter("added")
	r.NoError(err)
	r.NotNil(adapter)
}

func TestNewSource(t *testing.T) {
	r := require.New(t)

	r.NoError(register(fakeAdapter{}, "registered"))

	source, err := NewSource(&core.SourceParams{Name: "test", Type: "registered"})
	r.NoError(err)
	r.NotNil(source)

	_, err = NewSource(&core.SourceParams{Name: "test", Type: "missing"})
	r.ErrorIs(err, ErrUnsupportedTypeAlias)
}
