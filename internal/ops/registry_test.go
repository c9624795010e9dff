package ops

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGroups(t *testing.T) {
	r := NewRegistry()
	sync := &cobra.Command{Use: "sync", Short: "Synchronize exports"}
	plan := &cobra.Command{Use: "plan", Short: "Show the exports plan"}
	version := &cobra.Command{Use: "version", Short: "Print version"}

	r.MustRegister("sync", GroupSync, sync)
	r.MustRegister("plan", GroupSync, plan)
	require.NoError(t, r.Register("version", GroupSupport, version, "Print version"))

	got := r.GetCommandsByGroup(GroupSync)
	require.Len(t, got, 2)
	assert.Equal(t, "sync", got[0].Name)
	assert.Equal(t, "Show the exports plan", got[1].Description)
	assert.Empty(t, r.GetCommandsByGroup(GroupConfig))

	reg, ok := r.GetCommand("version")
	require.True(t, ok)
	assert.Same(t, version, reg.Command)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	cmd := &cobra.Command{Use: "sync"}
	require.NoError(t, r.Register("sync", GroupSync, cmd, ""))
	assert.Error(t, r.Register("sync", GroupSync, cmd, ""))
	assert.Panics(t, func() { r.MustRegister("sync", GroupSync, cmd) })
}

func TestGroupsOrder(t *testing.T) {
	require.Len(t, Groups, 3)
	assert.Equal(t, GroupSync, Groups[0].Group)
	assert.Equal(t, GroupSupport, Groups[2].Group)
}
