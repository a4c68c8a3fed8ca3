package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sceneYAML = `
window: {width: 400, height: 300}
elements:
  - id: container
    style: "position: relative; overflow: auto"
    rect: [100, 100, 300, 200]
    children:
      - {id: anchor, tag: button, rect: [150, 120, 50, 20]}
      - {id: popup, style: "position: absolute; background-color: teal", rect: [0, 0, 100, 60]}
compute:
  anchor: anchor
  popup: popup
  placement: top
  autoPlacement: true
script: |
  var pos = computePosition(document.getElementById("anchor"), document.getElementById("popup"), {placement: "top", autoPlacement: true});
  console.log("placed", pos.placement);
  pos.placement
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sceneYAML), 0o644))
	return path
}

// execute runs the root command with a missing config file so a stray
// ./floatpos.yaml cannot leak into the test.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "floatpos.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("logger:\n  level: info\n"), 0o644))

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestCompute(t *testing.T) {
	stdout, _, err := execute(t, "compute", writeScene(t))
	require.NoError(t, err)

	var got computeOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, computeOutput{X: 100, Y: 0, Placement: "right", Strategy: "absolute"}, got)
}

func TestCompute_Overrides(t *testing.T) {
	stdout, _, err := execute(t, "compute", writeScene(t), "--auto=false", "--placement", "bottom")
	require.NoError(t, err)

	var got computeOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "bottom", got.Placement)
	assert.Equal(t, 25.0, got.X)
	assert.Equal(t, 40.0, got.Y)
}

func TestCompute_Explain(t *testing.T) {
	stdout, _, err := execute(t, "compute", "--explain", writeScene(t))
	require.NoError(t, err)

	var got computeOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	require.NotNil(t, got.Explain)
	assert.Equal(t, "top", got.Explain.Requested)
	require.NotNil(t, got.Explain.ClippingRect)
	assert.Equal(t, rectOutput{X: 100, Y: 100, Width: 300, Height: 200}, *got.Explain.ClippingRect)
	assert.Equal(t, rectOutput{X: 200, Y: 100, Width: 100, Height: 60}, got.Explain.PopupRect)
	require.NotEmpty(t, got.Explain.Candidates)
	assert.Equal(t, "top", got.Explain.Candidates[0].Placement)
	assert.False(t, got.Explain.Candidates[0].Fits)
	assert.Len(t, got.Explain.Stages, 2)
}

func TestCompute_Errors(t *testing.T) {
	_, _, err := execute(t, "compute", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, _, err = execute(t, "compute", writeScene(t), "--placement", "middle")
	assert.ErrorContains(t, err, `"middle"`)

	_, _, err = execute(t, "compute")
	assert.Error(t, err)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("compute:\n  strategy: sticky\n"), 0o644))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfg, "compute", writeScene(t)})
	err := cmd.ExecuteContext(context.Background())
	assert.ErrorContains(t, err, "compute.strategy")
}

func TestRootCmd_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("FLOATPOS_COMPUTE_STRATEGY", "fixed")

	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window: {width: 400, height: 300}
elements:
  - {id: anchor, rect: [100, 100, 50, 20]}
  - {id: popup, style: "position: absolute", rect: [0, 0, 30, 10]}
compute: {anchor: anchor, popup: popup}
`), 0o644))

	stdout, _, err := execute(t, "compute", path)
	require.NoError(t, err)
	var got computeOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "fixed", got.Strategy)
}

func TestRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	_, stderr, err := execute(t, "render", writeScene(t), "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "rendered")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestRender_Stdout(t *testing.T) {
	stdout, _, err := execute(t, "render", writeScene(t), "-o", "-", "--width", "120", "--height", "90")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader([]byte(stdout)))
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
}

func TestScript(t *testing.T) {
	stdout, stderr, err := execute(t, "script", writeScene(t))
	require.NoError(t, err)
	assert.Equal(t, "right\n", stdout)
	assert.Contains(t, stderr, "placed right")
}

func TestScript_File(t *testing.T) {
	js := filepath.Join(t.TempDir(), "probe.js")
	require.NoError(t, os.WriteFile(js, []byte(`document.getElementById("popup").offsetWidth`), 0o644))

	stdout, _, err := execute(t, "script", writeScene(t), js)
	require.NoError(t, err)
	assert.Equal(t, "100\n", stdout)
}

func TestScript_Missing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window: {width: 400, height: 300}
elements:
  - {id: anchor, rect: [100, 100, 50, 20]}
  - {id: popup, rect: [0, 0, 30, 10]}
compute: {anchor: anchor, popup: popup}
`), 0o644))

	_, _, err := execute(t, "script", path)
	assert.ErrorContains(t, err, "no script")
}
