package host

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyrbujac/vst3host/internal/testplug"
	"github.com/tyrbujac/vst3host/pkg/vst3"
)

// testWindow is a fake native container recording resize requests.
type testWindow struct {
	handle   uintptr
	platform string

	width, height int32
	resizes       int
	resizeErr     error

	// onResize, when set, runs inside Resize to simulate window-system
	// side effects.
	onResize func()
}

func (w *testWindow) Handle() uintptr      { return w.handle }
func (w *testWindow) PlatformType() string { return w.platform }

func (w *testWindow) Resize(width, height int32) error {
	w.resizes++
	if w.resizeErr != nil {
		return w.resizeErr
	}
	w.width, w.height = width, height
	if w.onResize != nil {
		w.onResize()
	}
	return nil
}

func newTestWindow() *testWindow {
	return &testWindow{handle: 0xbeef, platform: vst3.PlatformTypeX11Window}
}

func fixtureView(t *testing.T, inst *Instance) *testplug.View {
	t.Helper()
	view, ok := inst.editor.view.(*testplug.View)
	require.True(t, ok)
	return view
}

func TestHasEditor(t *testing.T) {
	_, inst := loadFixture(t)
	assert.True(t, inst.HasEditor())
	assert.False(t, inst.EditorOpen())

	fixtureController(t, inst).NoView = true
	assert.False(t, inst.HasEditor())
}

func TestHasEditorWithoutController(t *testing.T) {
	inst := &Instance{log: logrus.NewEntry(quietLogger())}
	assert.False(t, inst.HasEditor())

	var noEd *NoEditorError
	require.ErrorAs(t, inst.OpenEditor(), &noEd)
}

func TestOpenEditorIdempotent(t *testing.T) {
	_, inst := loadFixture(t)
	require.NoError(t, inst.OpenEditor())
	view := fixtureView(t, inst)

	require.NoError(t, inst.OpenEditor())
	assert.Same(t, view, inst.editor.view)
}

func TestOpenEditorNoView(t *testing.T) {
	_, inst := loadFixture(t)
	fixtureController(t, inst).NoView = true

	var noEd *NoEditorError
	require.ErrorAs(t, inst.OpenEditor(), &noEd)
	assert.False(t, inst.EditorOpen())
}

func TestEditorSize(t *testing.T) {
	_, inst := loadFixture(t)

	_, _, err := inst.EditorSize()
	var noEd *NoEditorError
	require.ErrorAs(t, err, &noEd)

	require.NoError(t, inst.OpenEditor())
	w, h, err := inst.EditorSize()
	require.NoError(t, err)
	assert.Equal(t, int32(400), w)
	assert.Equal(t, int32(300), h)
}

func TestAttachRequiresOpen(t *testing.T) {
	_, inst := loadFixture(t)
	var noEd *NoEditorError
	require.ErrorAs(t, inst.AttachEditor(newTestWindow()), &noEd)
}

func TestAttachUnsupportedPlatform(t *testing.T) {
	_, inst := loadFixture(t)
	require.NoError(t, inst.OpenEditor())

	win := &testWindow{handle: 1, platform: "BogusWindowSystem"}
	err := inst.AttachEditor(win)
	var unsup *UnsupportedPlatformError
	require.ErrorAs(t, err, &unsup)
	assert.Equal(t, "BogusWindowSystem", unsup.PlatformType)

	// The editor stays open for a retry with a supported window.
	assert.True(t, inst.EditorOpen())
	require.NoError(t, inst.AttachEditor(newTestWindow()))
}

func TestAttachInstallsFrameBeforeAttached(t *testing.T) {
	_, inst := loadFixture(t)
	require.NoError(t, inst.OpenEditor())
	view := fixtureView(t, inst)

	require.NoError(t, inst.AttachEditor(newTestWindow()))
	assert.True(t, view.IsAttached())
	assert.True(t, view.FrameAtAttach)
}

func TestAttachMovesBetweenWindows(t *testing.T) {
	_, inst := loadFixture(t)
	require.NoError(t, inst.OpenEditor())
	view := fixtureView(t, inst)

	first := newTestWindow()
	second := newTestWindow()
	require.NoError(t, inst.AttachEditor(first))
	require.NoError(t, inst.AttachEditor(second))

	assert.True(t, view.IsAttached())
	assert.Same(t, second, inst.AttachedWindow())
}

func TestCloseEditorDetachesAndReleases(t *testing.T) {
	_, inst := loadFixture(t)
	require.NoError(t, inst.OpenEditor())
	view := fixtureView(t, inst)
	require.NoError(t, inst.AttachEditor(newTestWindow()))

	inst.CloseEditor()
	assert.False(t, inst.EditorOpen())
	assert.False(t, view.IsAttached())
	assert.Nil(t, view.Frame())
	assert.Nil(t, inst.AttachedWindow())

	// Close is idempotent from any state.
	inst.CloseEditor()
}

func TestResizeNegotiation(t *testing.T) {
	_, inst := loadFixture(t)
	require.NoError(t, inst.OpenEditor())
	view := fixtureView(t, inst)
	win := newTestWindow()
	require.NoError(t, inst.AttachEditor(win))

	res := view.RequestResize(640, 480)
	assert.True(t, res.OK())
	assert.Equal(t, int32(640), win.width)
	assert.Equal(t, int32(480), win.height)

	w, h, err := inst.EditorSize()
	require.NoError(t, err)
	assert.Equal(t, int32(640), w)
	assert.Equal(t, int32(480), h)
}

func TestResizeReentrancyGuard(t *testing.T) {
	_, inst := loadFixture(t)
	require.NoError(t, inst.OpenEditor())
	view := fixtureView(t, inst)
	win := newTestWindow()

	// A window whose resize synchronously triggers another plugin resize
	// request, the way real window systems deliver nested geometry events.
	var nested vst3.Result
	win.onResize = func() {
		if win.resizes == 1 {
			nested = view.RequestResize(800, 600)
		}
	}
	require.NoError(t, inst.AttachEditor(win))

	res := view.RequestResize(640, 480)
	assert.True(t, res.OK())
	assert.Equal(t, vst3.ResultFalse, nested)
	assert.Equal(t, 1, win.resizes)
}

func TestResizeWindowFailureStillAcknowledged(t *testing.T) {
	_, inst := loadFixture(t)
	require.NoError(t, inst.OpenEditor())
	view := fixtureView(t, inst)
	win := newTestWindow()
	win.resizeErr = errors.New("window system said no")
	require.NoError(t, inst.AttachEditor(win))

	// A failed container resize is logged, not propagated to the plugin.
	assert.True(t, view.RequestResize(640, 480).OK())
}

func TestResizeNilView(t *testing.T) {
	f := &plugFrame{inst: &Instance{log: logrus.NewEntry(quietLogger())}}
	assert.Equal(t, vst3.InvalidArgument, f.ResizeView(nil, vst3.ViewRect{Right: 10, Bottom: 10}))
}

func TestUnloadClosesEditor(t *testing.T) {
	h := newTestHost(t)
	inst, err := h.Load(testplug.Path)
	require.NoError(t, err)
	require.NoError(t, inst.OpenEditor())
	view := fixtureView(t, inst)
	require.NoError(t, inst.AttachEditor(newTestWindow()))

	inst.Unload()
	assert.False(t, view.IsAttached())
	assert.False(t, inst.EditorOpen())
}
