//go:build e2e && unix

package e2e

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startForm(t *testing.T, args ...string) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	require.NoError(t, tf.StartApp(append([]string{"--url", endpoint, "--log-file", ""}, args...)...))
	require.True(t, tf.SeePlain("Suggestable"), "should show the title")
	return tf
}

func TestTypingShowsSuggestions(t *testing.T) {
	t.Parallel()
	tf := startForm(t)

	require.NoError(t, tf.Type("par"))
	if !tf.SeePlain("Paris — France") {
		tf.DumpTailOnFail(2048)
		t.Fatal("dropdown should list Paris")
	}
	require.True(t, tf.SeePlain("Parma"))
}

func TestKeyboardSelection(t *testing.T) {
	t.Parallel()
	tf := startForm(t)

	require.NoError(t, tf.Type("par"))
	require.True(t, tf.SeePlain("Parma"))

	require.NoError(t, tf.SendKeys(KeyDown))
	require.NoError(t, tf.SendKeys(KeyDown))
	require.NoError(t, tf.SendKeys(KeyEnter))

	if !tf.SeePlain("Selected Parma — Italy (/city/parma)") {
		tf.DumpTailOnFail(2048)
		t.Fatal("status line should report the selection")
	}
}

func TestShortTermShowsNothing(t *testing.T) {
	t.Parallel()
	tf := startForm(t)

	require.NoError(t, tf.Type("pa"))
	time.Sleep(200 * time.Millisecond)
	require.NotContains(t, ansiRe.ReplaceAllString(tf.Snapshot(), ""), "Paris")
}

func TestCtrlCExits(t *testing.T) {
	t.Parallel()
	tf := startForm(t)

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	require.NoError(t, tf.SendKeys(KeyCtrlC))
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		tf.DumpTailOnFail(2048)
		t.Fatal("application did not exit")
	}
}

// closedAfter sends keys with the dropdown open, then checks that Down and
// Enter no longer pick anything
func closedAfter(t *testing.T, tf *TUITestFramework, keys string) {
	t.Helper()
	require.NoError(t, tf.Type("par"))
	require.True(t, tf.SeePlain("Parma"))

	tf.Reset()
	require.NoError(t, tf.SendKeys(keys))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, tf.SendKeys(KeyDown))
	require.NoError(t, tf.SendKeys(KeyEnter))
	time.Sleep(300 * time.Millisecond)

	out := ansiRe.ReplaceAllString(tf.Snapshot(), "")
	if strings.Contains(out, "Selected") || strings.Contains(out, "Paris") {
		tf.DumpTailOnFail(2048)
		t.Fatal("dropdown should be closed")
	}
}

func TestEscapeClosesDropdown(t *testing.T) {
	t.Parallel()
	closedAfter(t, startForm(t), KeyEsc)
}

func TestTabClosesDropdown(t *testing.T) {
	t.Parallel()
	closedAfter(t, startForm(t, "--field", "To="+endpoint), KeyTab)
}

func TestUpWrapsToLastSuggestion(t *testing.T) {
	t.Parallel()
	tf := startForm(t)

	require.NoError(t, tf.Type("par"))
	require.True(t, tf.SeePlain("Parma"))

	require.NoError(t, tf.SendKeys(KeyUp))
	require.NoError(t, tf.SendKeys(KeyEnter))
	if !tf.SeePlain("Selected Par") {
		tf.DumpTailOnFail(2048)
		t.Fatal("Up from no highlight should pick the last row")
	}
}
