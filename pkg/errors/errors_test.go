package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrack_NilIsNil(t *testing.T) {
	assert.Nil(t, Track(nil))
	assert.NoError(t, Track(nil).WithContext("k", "v").Error())
}

func TestTrack_KeepsSentinelIdentity(t *testing.T) {
	err := Track(ErrNotUsed).AsSource("unsounded").Error()

	assert.True(t, Is(err, ErrNotUsed))
	assert.True(t, IsNotUsed(err))
	assert.Equal(t, CategoryUnsupported, CategoryOf(err))
}

func TestTrack_ClassifiesSentinels(t *testing.T) {
	cases := map[error]ErrorCategory{
		ErrUpstream:      CategoryUpstream,
		ErrMissingConfig: CategoryConfig,
		ErrNotFound:      CategoryNotFound,
		ErrRateLimit:     CategoryRateLimit,
		ErrBadRequest:    CategoryValidation,
	}
	for sentinel, want := range cases {
		err := Track(fmt.Errorf("wrapped: %w", sentinel)).Error()
		assert.Equal(t, want, CategoryOf(err), sentinel.Error())
	}
}

func TestTrack_UserMessageWins(t *testing.T) {
	err := Track(ErrUpstream).WithMessage("Erro na requisição.").Error()

	assert.Equal(t, "Erro na requisição.", err.Error())
	assert.True(t, IsUpstream(err))
}

func TestTrack_ExtendsCallChain(t *testing.T) {
	first := Track(ErrNotFound).Error()
	second := Track(first).WithContext("url", "http://example.test").Error()

	var tracked *TrackedError
	require.True(t, As(second, &tracked))
	assert.Len(t, tracked.CallChain, 2)
	assert.Equal(t, "http://example.test", tracked.Context["url"])
	assert.Equal(t, "TestTrack_ExtendsCallChain", tracked.CallChain[1].ShortName)
}

func TestAsSource_KeepsSpecificCategory(t *testing.T) {
	err := Track(ErrMissingConfig).AsSource("argosscan").Error()
	assert.Equal(t, CategoryConfig, CategoryOf(err))

	err = New("boom").AsSource("argosscan").Error()
	assert.Equal(t, CategorySource, CategoryOf(err))
}

func TestCLIFormatter(t *testing.T) {
	f := NewCLIFormatter()

	assert.Empty(t, f.Format(nil))
	assert.Contains(t, f.FormatSimple(Track(ErrMissingConfig).WithMessage("Token missing").Error()), "Token missing")

	out := NewDebugCLIFormatter().Format(Track(ErrMissingConfig).WithContext("key", "token").Error())
	assert.Contains(t, out, "lantern prefs set")
	assert.Contains(t, out, "key:")
	assert.Contains(t, out, "Function Call Chain:")
}
