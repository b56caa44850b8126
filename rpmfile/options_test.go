package rpmfile

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jxsl13/pkgdirs/dirs"
)

func TestFileMode(t *testing.T) {
	m := Dir(0o755)
	assert.True(t, m.IsDir())
	assert.Equal(t, FileMode(0o040755), m)
	assert.Equal(t, uint16(0o755), m.Perm())
	assert.Equal(t, fs.ModeDir|0o755, m.FileMode())
	assert.Equal(t, "040755", m.String())

	r := Regular(0o4755)
	assert.False(t, r.IsDir())
	assert.Equal(t, uint16(0o4755), r.Perm())
	assert.Equal(t, fs.ModeSetuid|0o755, r.FileMode())

	assert.Equal(t, Dir(0o777), Dir(0o170777), "type bits are not taken from perm")
}

func TestNewDefaults(t *testing.T) {
	o := New("/etc/app.conf")
	assert.Equal(t, "/etc/app.conf", o.Path)
	assert.Equal(t, Regular(0o644), o.Mode)
	assert.Equal(t, "root", o.User)
	assert.Equal(t, "root", o.Group)
	assert.Empty(t, o.Caps)
}

func TestSetCaps(t *testing.T) {
	o := New("/usr/libexec/app")
	require.NoError(t, o.SetCaps("cap_net_bind_service=ep"))
	assert.Equal(t, "cap_net_bind_service=ep", o.Caps)

	err := o.SetCaps("cap_nope=ep")
	require.Error(t, err)
	assert.Equal(t, "cap_net_bind_service=ep", o.Caps, "rejected caps leave the options untouched")
}

func TestSpecLine(t *testing.T) {
	o := New("/var/lib/app")
	o.SetDirMode(0o750)
	assert.Equal(t, "%dir %attr(0750,root,root) /var/lib/app", o.SpecLine())

	o.SetUser("app")
	o.SetGroup("app")
	require.NoError(t, o.SetCaps("cap_net_bind_service=ep"))
	assert.Equal(t, "%dir %attr(0750,app,app) %caps(cap_net_bind_service=ep) /var/lib/app", o.SpecLine())

	f := New("/etc/app.conf")
	assert.Equal(t, "%attr(0644,root,root) /etc/app.conf", f.SpecLine())
}

func TestMarshalJSON(t *testing.T) {
	o := New("/srv")
	o.SetDirMode(0o700)

	data, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"/srv","mode":16832,"perm":"0700","dir":true,"user":"root","group":"root"}`, string(data))
}

func TestRenderDirs(t *testing.T) {
	parsed, err := dirs.Parse(dirs.Values([]any{
		map[string]any{"dir": "/var/lib/app"},
		map[string]any{"dir": "/run/app", "user": "app", "group": "daemon", "mode": "7770", "caps": "cap_net_bind_service=ep"},
	}))
	require.NoError(t, err)

	opts, err := dirs.RenderAll(parsed, New)
	require.NoError(t, err)
	require.Len(t, opts, 2)

	assert.Equal(t, &FileOptions{Path: "/var/lib/app", Mode: Dir(0o755), User: "root", Group: "root"}, opts[0])
	assert.Equal(t, &FileOptions{
		Path:  "/run/app",
		Mode:  Dir(0o770),
		User:  "app",
		Group: "daemon",
		Caps:  "cap_net_bind_service=ep",
	}, opts[1])
}

func TestRenderDirsRejectedCaps(t *testing.T) {
	parsed, err := dirs.Parse(dirs.Values([]any{
		map[string]any{"dir": "/a"},
		map[string]any{"dir": "/b", "caps": "cap_net_bind_service"},
	}))
	require.NoError(t, err)

	_, err = dirs.RenderAll(parsed, New)
	require.Error(t, err)

	var capsErr *dirs.InvalidCapabilitiesError
	require.ErrorAs(t, err, &capsErr)
	assert.Equal(t, 1, capsErr.Index)

	var backendErr *CapsError
	assert.ErrorAs(t, err, &backendErr)
}

func TestRenderDirsAllCaps(t *testing.T) {
	parsed, err := dirs.Parse(dirs.Values([]any{
		map[string]any{"dir": "/x", "caps": "all+ep"},
	}))
	require.NoError(t, err)

	opts, err := dirs.RenderAll(parsed, New)
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, "all+ep", opts[0].Caps)
	assert.Equal(t, "%dir %attr(0755,root,root) %caps(all+ep) /x", opts[0].SpecLine())
}
