package opener

import (
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/featured/internal/config"
)

func newTestOpener(command string) (*Opener, *[]string, *[]*exec.Cmd) {
	cfg := config.TestConfig()
	cfg.Opener.Command = command
	o := New(cfg)

	var browsed []string
	var started []*exec.Cmd
	o.browse = func(url string) error {
		browsed = append(browsed, url)
		return nil
	}
	o.start = func(cmd *exec.Cmd) error {
		started = append(started, cmd)
		return nil
	}
	return o, &browsed, &started
}

func TestOpen_DefaultsToBrowser(t *testing.T) {
	o, browsed, started := newTestOpener("")

	require.NoError(t, o.Open("https://apps.local/app-detail.html?id=7"))
	assert.Equal(t, []string{"https://apps.local/app-detail.html?id=7"}, *browsed)
	assert.Empty(t, *started)
	assert.Equal(t, "browser", o.Command())
}

func TestOpen_ConfiguredCommand(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	o, browsed, started := newTestOpener(sh + " -c true")

	require.NoError(t, o.Open("https://apps.local/app-detail.html?id=7"))
	assert.Empty(t, *browsed)
	require.Len(t, *started, 1)
	assert.Equal(t, []string{sh, "-c", "true", "https://apps.local/app-detail.html?id=7"}, (*started)[0].Args)
	assert.Equal(t, sh, o.Command())
}

func TestOpen_MissingCommand(t *testing.T) {
	o, _, started := newTestOpener(filepath.Join(t.TempDir(), "no-such-opener"))

	err := o.Open("https://apps.local/app-detail.html?id=7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Empty(t, *started)
}

func TestOpen_RelativeLink(t *testing.T) {
	o, browsed, _ := newTestOpener("")

	err := o.Open("app-detail.html?id=7")
	assert.ErrorIs(t, err, ErrNotAbsolute)
	assert.Empty(t, *browsed)
}

func TestOpen_RejectsUnsafeLinks(t *testing.T) {
	o, browsed, _ := newTestOpener("")

	for _, link := range []string{
		"ftp://apps.local/app-detail.html",
		"https://apps.local/app-detail.html?id=javascript:alert(1)",
	} {
		assert.Error(t, o.Open(link), link)
	}
	assert.Empty(t, *browsed)
}

func TestOpen_BrowserFailure(t *testing.T) {
	o, _, _ := newTestOpener("")
	o.browse = func(string) error { return errors.New("no display") }

	err := o.Open("https://apps.local/app-detail.html?id=7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
}
