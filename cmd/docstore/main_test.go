package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/docstore/internal/balancer"
)

func TestRunScriptEditThenGet(t *testing.T) {
	lb := balancer.New(false, nil)
	lb.AddServer(1, 4)

	script := strings.NewReader("EDIT doc hello world\nGET doc\n")
	var out bytes.Buffer
	require.NoError(t, runScript(lb, script, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4, "one two-line transcript per EDIT and GET: %q", out.String())
	assert.Contains(t, lines[2], "hello world")
}

func TestRunScriptIgnoresBlankAndCommentLines(t *testing.T) {
	lb := balancer.New(false, nil)
	lb.AddServer(1, 4)

	script := strings.NewReader("# seed the store\n\nEDIT doc V\nGET doc\n")
	var out bytes.Buffer
	require.NoError(t, runScript(lb, script, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 4)
}

func TestRunScriptAddAndRemove(t *testing.T) {
	lb := balancer.New(false, nil)

	script := strings.NewReader("ADD 1 4\nEDIT doc V\nADD 2 4\nGET doc\nREMOVE 2\nGET doc\n")
	var out bytes.Buffer
	require.NoError(t, runScript(lb, script, &out))
	assert.Contains(t, out.String(), "V")
}

func TestRunScriptRejectsUnknownOperation(t *testing.T) {
	lb := balancer.New(false, nil)
	lb.AddServer(1, 4)

	script := strings.NewReader("FROB doc\n")
	var out bytes.Buffer
	err := runScript(lb, script, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestRunScriptRejectsMalformedEdit(t *testing.T) {
	lb := balancer.New(false, nil)
	lb.AddServer(1, 4)

	script := strings.NewReader("EDIT onlyname\n")
	var out bytes.Buffer
	err := runScript(lb, script, &out)
	require.Error(t, err)
}

func TestLoadClusterConfigEmptyPath(t *testing.T) {
	cfg, err := loadClusterConfig("")
	require.NoError(t, err)
	assert.False(t, cfg.Vnodes)
	assert.Empty(t, cfg.Servers)
}

func TestLoadClusterConfigMissingFile(t *testing.T) {
	_, err := loadClusterConfig("/nonexistent/cluster.yaml")
	require.Error(t, err)
}

func TestLoadClusterConfigParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/cluster.yaml"
	contents := "vnodes: true\nservers:\n  - id: 1\n    cache_size: 4\n  - id: 2\n    cache_size: 8\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := loadClusterConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Vnodes)
	require.Len(t, cfg.Servers, 2)
	assert.Equal(t, uint32(1), cfg.Servers[0].ID)
	assert.Equal(t, 8, cfg.Servers[1].CacheSize)
}

func TestParseServerID(t *testing.T) {
	id, err := parseServerID("42")
	require.NoError(t, err)
	assert.Equal(t, uint32(42), id)

	_, err = parseServerID("not-a-number")
	assert.Error(t, err)
}
