package prefs

import (
	"path/filepath"
	"testing"

	"Lantern/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	p := ForSource(store, "argosscan")
	require.NoError(t, p.SetString("token", "abc"))
	require.NoError(t, p.SetString("token", "def"))
	require.NoError(t, store.Close())

	store, err = OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	p = ForSource(store, "argosscan")
	assert.Equal(t, "def", p.GetString("token", ""))
	assert.Equal(t, "fallback", ForSource(store, "unsounded").GetString("token", "fallback"))

	keys, err := p.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"token"}, keys)

	require.NoError(t, p.Remove("token"))
	_, ok, err := p.Lookup("token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("LANTERN_PREFS_PATH", "/tmp/custom.db")
	assert.Equal(t, "/tmp/custom.db", DefaultPath())
}

func TestPreferences_ScopesAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, ForSource(store, "a").SetString("token", "1"))

	assert.Equal(t, "source_a", ForSource(store, "a").Scope())
	assert.Equal(t, "", ForSource(store, "b").GetString("token", ""))
	assert.Error(t, ForSource(store, "a").SetString("", "x"))
}

func TestScreen_Apply(t *testing.T) {
	p := ForSource(NewMemoryStore(), "argosscan")
	screen := NewScreen(p)

	var changed []string
	screen.Add(&EditTextPreference{
		PrefKey:      "token",
		PrefTitle:    "Token",
		PrefSummary:  "Access token",
		DefaultValue: "",
		OnChange: func(v string) error {
			if v == "bad" {
				return errors.ErrInvalidInput
			}
			changed = append(changed, v)
			return nil
		},
	})

	require.Len(t, screen.Items(), 1)
	assert.Equal(t, "", screen.Value(screen.Items()[0]))

	require.NoError(t, screen.Apply("token", "secret"))
	assert.Equal(t, "secret", p.GetString("token", ""))
	assert.Equal(t, []string{"secret"}, changed)

	err := screen.Apply("token", "bad")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
	assert.Equal(t, "secret", p.GetString("token", ""))

	err = screen.Apply("missing", "x")
	assert.True(t, errors.IsNotFound(err))
}

func TestScreen_DisplayMasksSecrets(t *testing.T) {
	p := ForSource(NewMemoryStore(), "argosscan")
	screen := NewScreen(p)
	screen.Add(&EditTextPreference{PrefKey: "token", Secret: true})
	screen.Add(&EditTextPreference{PrefKey: "mirror"})

	require.NoError(t, p.SetString("token", "tok-0123456789"))
	require.NoError(t, p.SetString("mirror", "https://mirror.example.org"))

	token, mirror := screen.Items()[0], screen.Items()[1]
	assert.Equal(t, "**********6789", screen.Display(token))
	assert.Equal(t, "tok-0123456789", screen.Value(token))
	assert.Equal(t, "https://mirror.example.org", screen.Display(mirror))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", MaskSecret(""))
	assert.Equal(t, "******", MaskSecret("abc123"))
	assert.Equal(t, "******ção1", MaskSecret("tokençção1"))
}
