package engine_test

import (
	"testing"

	"Lantern/pkg/config"
	"Lantern/pkg/engine"
	"Lantern/pkg/engine/logger"
	"Lantern/pkg/errors"
	"Lantern/pkg/prefs"
	"Lantern/pkg/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *engine.Engine {
	return engine.NewWithServices(config.Default(), logger.Nop(), prefs.NewMemoryStore())
}

func TestRegisterSource(t *testing.T) {
	e := newEngine()

	require.NoError(t, e.RegisterSource(source.New(e, source.Config{ID: "beta", Name: "Beta"}).Build()))
	require.NoError(t, e.RegisterSource(source.New(e, source.Config{ID: "alpha", Name: "Alpha"}).Build()))

	err := e.RegisterSource(source.New(e, source.Config{ID: "alpha", Name: "Again"}).Build())
	assert.Equal(t, errors.CategoryValidation, errors.CategoryOf(err))

	err = e.RegisterSource(source.New(e, source.Config{Name: "Nameless"}).Build())
	assert.Error(t, err)

	assert.Error(t, e.RegisterSource(nil))

	all := e.AllSources()
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].ID())
	assert.Equal(t, "beta", all[1].ID())
}

func TestGetSource_NotFound(t *testing.T) {
	e := newEngine()

	_, err := e.GetSource("missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestPreferenceScreen_NotConfigurable(t *testing.T) {
	e := newEngine()
	src := source.New(e, source.Config{ID: "plain"}).Build()

	assert.Nil(t, e.PreferenceScreen(src))
}

func TestSourcePreferences_AreScoped(t *testing.T) {
	e := newEngine()

	require.NoError(t, e.SourcePreferences("a").SetString("token", "one"))
	assert.Equal(t, "one", e.SourcePreferences("a").GetString("token", ""))
	assert.Equal(t, "", e.SourcePreferences("b").GetString("token", ""))
}
