package selfupdate

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portmanops/portman/portman/configstore"
)

func newTestRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(MethodPoint, new(MockStrategy))
	registry.Register(MethodCvs, new(MockStrategy))
	registry.Register(MethodRsync, new(MockStrategy))
	return registry
}

func newTestSelector(store *fakeStore, ui *stubUI) (*Selector, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Selector{
		Store:    store,
		Registry: newTestRegistry(),
		UI:       ui,
		Out:      out,
	}, out
}

func TestResolveLegacyNumericCodes(t *testing.T) {
	cases := []struct {
		token string
		want  Method
	}{
		{"1", MethodCvs},
		{"2", MethodRsync},
	}

	for _, c := range cases {
		ui := &stubUI{}
		selector, _ := newTestSelector(newFakeStore(), ui)

		selection, err := selector.Resolve(c.token)

		require.NoError(t, err, "token %q", c.token)
		assert.Equal(t, c.want, selection.Method)
		assert.True(t, selection.Changed)
		assert.Zero(t, ui.selectCalls)
		assert.Zero(t, ui.confirmCalls, "no prior preference means nothing to confirm")
	}
}

func TestResolveLegacyZeroPromptsWhenNoPreference(t *testing.T) {
	ui := &stubUI{selectValue: "cvs"}
	selector, _ := newTestSelector(newFakeStore(), ui)

	selection, err := selector.Resolve("0")

	require.NoError(t, err)
	assert.Equal(t, MethodCvs, selection.Method)
	assert.Equal(t, 1, ui.selectCalls)
}

func TestResolvePromptDefaultsToRsync(t *testing.T) {
	ui := &stubUI{}
	selector, _ := newTestSelector(newFakeStore(), ui)

	selection, err := selector.Resolve("")

	require.NoError(t, err)
	assert.Equal(t, MethodRsync, selection.Method)
	assert.True(t, selection.Changed)
	assert.Equal(t, "rsync", ui.selectDefault)
	assert.Equal(t, []string{"point", "cvs", "rsync"}, ui.selectOptions)
}

func TestResolvePreviousPreferenceUsedSilently(t *testing.T) {
	store := newFakeStore()
	store.values[configstore.KeySelfUpdateMethod] = "cvs"
	ui := &stubUI{}
	selector, out := newTestSelector(store, ui)

	selection, err := selector.Resolve("")

	require.NoError(t, err)
	assert.Equal(t, MethodCvs, selection.Method)
	assert.False(t, selection.Changed)
	assert.Zero(t, ui.selectCalls)
	assert.Zero(t, ui.confirmCalls)
	assert.Empty(t, out.String())
}

func TestResolveExplicitEqualToPrevious(t *testing.T) {
	store := newFakeStore()
	store.values[configstore.KeySelfUpdateMethod] = "rsync"
	ui := &stubUI{}
	selector, out := newTestSelector(store, ui)

	selection, err := selector.Resolve("rsync")

	require.NoError(t, err)
	assert.Equal(t, MethodRsync, selection.Method)
	assert.False(t, selection.Changed)
	assert.Zero(t, ui.confirmCalls)
	assert.Contains(t, out.String(), "changes the default")
}

func TestResolveExplicitChangeConfirmed(t *testing.T) {
	store := newFakeStore()
	store.values[configstore.KeySelfUpdateMethod] = "rsync"
	ui := &stubUI{confirmAnswer: true}
	selector, _ := newTestSelector(store, ui)

	selection, err := selector.Resolve("cvs")

	require.NoError(t, err)
	assert.Equal(t, MethodCvs, selection.Method)
	assert.True(t, selection.Changed)
	assert.Equal(t, 1, ui.confirmCalls)
}

func TestResolveExplicitChangeDeclined(t *testing.T) {
	store := newFakeStore()
	store.values[configstore.KeySelfUpdateMethod] = "rsync"
	ui := &stubUI{confirmAnswer: false}
	selector, _ := newTestSelector(store, ui)

	_, err := selector.Resolve("cvs")

	assert.ErrorIs(t, err, ErrDeclined)
	assert.Zero(t, store.sets, "declining must not touch the store")
	assert.Zero(t, store.saves)
}

func TestResolveAssumeYesSkipsConfirmation(t *testing.T) {
	store := newFakeStore()
	store.values[configstore.KeySelfUpdateMethod] = "rsync"
	ui := &stubUI{}
	selector, _ := newTestSelector(store, ui)
	selector.AssumeYes = true

	selection, err := selector.Resolve("cvs")

	require.NoError(t, err)
	assert.Equal(t, MethodCvs, selection.Method)
	assert.Zero(t, ui.confirmCalls)
}

func TestResolveUnknownMethod(t *testing.T) {
	selector, _ := newTestSelector(newFakeStore(), &stubUI{})

	_, err := selector.Resolve("tarball")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"tarball"`)
}

func TestResolveHasNoSideEffects(t *testing.T) {
	store := newFakeStore()
	ui := &stubUI{confirmAnswer: true}
	selector, _ := newTestSelector(store, ui)

	_, err := selector.Resolve("cvs")

	require.NoError(t, err)
	assert.Zero(t, store.sets)
	assert.Zero(t, store.saves)
}
