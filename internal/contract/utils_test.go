package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSeason(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"2023-2024", "2023-24", false},
		{"2023-24", "2023-24", false},
		{" 1999-2000 ", "1999-00", false},
		{"1999-00", "1999-00", false},
		{"2023-2025", "", true},
		{"2023-25", "", true},
		{"2023", "", true},
		{"23-24", "", true},
		{"abcd-2024", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeSeason(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSeason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGetColorResult(t *testing.T) {
	assert.Contains(t, GetColorResult(WinValue), WinValue)
	assert.Contains(t, GetColorResult(LossValue), LossValue)
	assert.Equal(t, "", GetColorResult(""))
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestDBFilePaths(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	cachePath := GetCacheDBFilePath()
	assert.Contains(t, cachePath, ".hoopstat_cache.db")
	assert.True(t, strings.HasPrefix(cachePath, homeDir), "path %s should start with home dir %s", cachePath, homeDir)

	historyPath := GetHistoryDBFilePath()
	assert.Contains(t, historyPath, ".hoopstat_history.db")
	assert.NotEqual(t, cachePath, historyPath)
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("sure")
	assert.Error(t, err)
}
