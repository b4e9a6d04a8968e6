package game

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStatsRepo_MissingFileYieldsDefaults(t *testing.T) {
	repo, err := NewFileStatsRepo(afero.NewMemMapFs(), "data")
	require.NoError(t, err)

	s, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultStats(), s)
}

func TestFileStatsRepo_RoundTrip(t *testing.T) {
	repo, err := NewFileStatsRepo(afero.NewMemMapFs(), "data")
	require.NoError(t, err)

	date := "2026-08-29"
	in := GameStats{
		Streak:             4,
		LastCompletionDate: &date,
		TotalCompleted:     12,
		Achievements:       []string{AchStreak3, AchTasks10},
		Level:              2,
		XP:                 120,
	}
	require.NoError(t, repo.Save(in))

	out, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFileStatsRepo_CorruptFileYieldsDefaultsAndError(t *testing.T) {
	fsys := afero.NewMemMapFs()
	repo, err := NewFileStatsRepo(fsys, "data")
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fsys, filepath.Join("data", statsFile), []byte("{nope"), 0o644))

	s, err := repo.Load()
	assert.Error(t, err)
	assert.Equal(t, DefaultStats(), s)
}

func TestFileStatsRepo_NormalizesOnLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	repo, err := NewFileStatsRepo(fsys, "data")
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fsys, filepath.Join("data", statsFile),
		[]byte(`{"streak":-3,"lastCompletionDate":null,"totalCompleted":5,"achievements":null,"level":0,"xp":50}`), 0o644))

	s, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, s.Streak)
	assert.Equal(t, 1, s.Level)
	assert.NotNil(t, s.Achievements)
	assert.Equal(t, 5, s.TotalCompleted)
}
