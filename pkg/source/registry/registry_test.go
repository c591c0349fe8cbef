package registry

import (
	"testing"

	"Lantern/pkg/config"
	"Lantern/pkg/engine"
	"Lantern/pkg/engine/logger"
	"Lantern/pkg/prefs"
	"Lantern/pkg/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constructor(id string) SourceConstructor {
	return func(e *engine.Engine) engine.Source {
		return source.New(e, source.Config{ID: id, Name: id, Lang: "en"}).Build()
	}
}

func TestLoadAll(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(constructor("beta"))
	Register(constructor("alpha"))
	Register(constructor("alpha"))
	Register(func(*engine.Engine) engine.Source { return nil })
	assert.Equal(t, 4, Count())

	e := engine.NewWithServices(config.Default(), logger.Nop(), prefs.NewMemoryStore())
	require.NoError(t, LoadAll(e))

	assert.Equal(t, 2, e.SourceCount())
	all := e.AllSources()
	assert.Equal(t, "alpha", all[0].ID())
	assert.Equal(t, "beta", all[1].ID())
}

func TestClear(t *testing.T) {
	Register(constructor("gamma"))
	Clear()
	assert.Equal(t, 0, Count())
}
