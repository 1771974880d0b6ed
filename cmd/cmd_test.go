package cmd

import (
	"testing"

	"github.com/huangsam/hoopstat/internal/contract"
	"github.com/huangsam/hoopstat/schema"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"games", "boxscores", "timeaxis", "pbp", "cache", "history", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}

	sub := func(parent string) []string {
		for _, c := range rootCmd.Commands() {
			if c.Name() != parent {
				continue
			}
			var out []string
			for _, s := range c.Commands() {
				out = append(out, s.Name())
			}
			return out
		}
		return nil
	}
	assert.ElementsMatch(t, []string{"status", "clear"}, sub("cache"))
	assert.ElementsMatch(t, []string{"status", "clear", "export", "migrate"}, sub("history"))
}

func TestFlagsAreBound(t *testing.T) {
	for _, name := range []string{"season", "team-id", "max-games", "game-ids", "delay", "output", "cache-backend", "history-backend"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	for _, name := range []string{"team-name", "player", "variant"} {
		assert.NotNil(t, boxscoresCmd.Flags().Lookup(name), name)
	}
	for _, name := range []string{"clocks", "periods"} {
		assert.NotNil(t, timeaxisCmd.Flags().Lookup(name), name)
	}
	assert.NotNil(t, historyMigrateCmd.Flags().Lookup("target-version"))
}

func TestConfigSetup(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	initConfig()

	viper.Set("season", "2023-2024")
	viper.Set("variant", "advanced")
	viper.Set("game-ids", "0022300061, 0022300077")
	t.Cleanup(func() {
		viper.Set("season", "")
		viper.Set("variant", string(schema.TraditionalVariant))
		viper.Set("game-ids", "")
	})

	require.NoError(t, configSetup())
	assert.Equal(t, "2023-24", cfg.Season)
	assert.Equal(t, schema.AdvancedVariant, cfg.Variant)
	assert.Equal(t, []string{"0022300061", "0022300077"}, cfg.GameIDs)
	assert.Equal(t, contract.DefaultTeamID, cfg.TeamID)
	assert.Equal(t, contract.DefaultDelay, cfg.Delay)
}

func TestConfigSetup_InvalidSeason(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	initConfig()

	viper.Set("season", "2023-2025")
	t.Cleanup(func() { viper.Set("season", "") })

	require.Error(t, configSetup())
}
