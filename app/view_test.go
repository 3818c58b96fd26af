package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUnit struct {
	mounted  bool
	mounts   int
	unmounts int
	mountErr error
}

func (u *fakeUnit) Mount() error {
	if u.mountErr != nil {
		return u.mountErr
	}
	u.mounted = true
	u.mounts++
	return nil
}

func (u *fakeUnit) Unmount() {
	if u.mounted {
		u.mounted = false
		u.unmounts++
	}
}

func (u *fakeUnit) Mounted() bool { return u.mounted }

func TestRootViewStartsInPanelMode(t *testing.T) {
	p, s := &fakeUnit{}, &fakeUnit{}
	rv := NewRootView(p, s)

	assert.Equal(t, ModePanel, rv.Mode())
	require.NoError(t, rv.Start())
	assert.True(t, p.Mounted())
	assert.False(t, s.Mounted())
}

func TestRootViewToggleMountsExactlyOne(t *testing.T) {
	p, s := &fakeUnit{}, &fakeUnit{}
	rv := NewRootView(p, s)
	require.NoError(t, rv.Start())

	require.NoError(t, rv.Toggle())
	assert.Equal(t, ModeScene, rv.Mode())
	assert.False(t, p.Mounted())
	assert.True(t, s.Mounted())
	assert.Equal(t, 1, p.unmounts, "panel unmounts before scene mounts")

	require.NoError(t, rv.Toggle())
	assert.Equal(t, ModePanel, rv.Mode())
	assert.True(t, p.Mounted())
	assert.False(t, s.Mounted())
}

func TestRootViewDoubleToggleRemountsFresh(t *testing.T) {
	p, s := &fakeUnit{}, &fakeUnit{}
	rv := NewRootView(p, s)
	require.NoError(t, rv.Start())

	require.NoError(t, rv.Toggle())
	require.NoError(t, rv.Toggle())

	assert.Equal(t, 2, p.mounts, "panel was mounted twice, not resumed")
	assert.Equal(t, 1, s.mounts)
	assert.Equal(t, 1, s.unmounts)
}

func TestRootViewToggleSurfacesMountError(t *testing.T) {
	p := &fakeUnit{}
	s := &fakeUnit{mountErr: errors.New("no adapter")}
	rv := NewRootView(p, s)
	require.NoError(t, rv.Start())

	assert.Error(t, rv.Toggle())
	assert.Equal(t, ModeScene, rv.Mode())
	assert.False(t, p.Mounted(), "outgoing unit stays down on mount failure")
}

func TestRootViewClose(t *testing.T) {
	p, s := &fakeUnit{}, &fakeUnit{}
	rv := NewRootView(p, s)
	require.NoError(t, rv.Start())

	rv.Close()
	assert.False(t, p.Mounted())
	assert.False(t, s.Mounted())
}

func TestDisplayModeString(t *testing.T) {
	assert.Equal(t, "panel", ModePanel.String())
	assert.Equal(t, "scene", ModeScene.String())
	assert.Equal(t, "unknown", DisplayMode(9).String())
}
