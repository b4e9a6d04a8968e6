package ops

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupRestoreDataDir_RoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()

	files := map[string]string{
		"data/tasks.json":      `{"version":"ebb_v1","tasks":[{"id":"t1","title":"Laundry","x":0.5,"y":0.5,"impact":2,"doneAt":null}]}`,
		"data/game_stats.json": `{"streak":3,"lastCompletionDate":"2026-08-29","totalCompleted":12,"achievements":["streak_3","tasks_10"],"level":1,"xp":90}`,
	}
	for rel, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(rel), 0o755))
		require.NoError(t, afero.WriteFile(fsys, rel, []byte(content), 0o644))
	}

	require.NoError(t, BackupDataDir(fsys, "data", "backups/backup.tar.gz"))
	exists, err := afero.Exists(fsys, "backups/backup.tar.gz")
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, RestoreDataDir(fsys, "backups/backup.tar.gz", "restored"))

	got := map[string]string{}
	err = afero.Walk(fsys, "restored", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel("restored", path)
		if err != nil {
			return err
		}
		b, err := afero.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		got["data/"+filepath.ToSlash(rel)] = string(b)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, files, got)
}

func TestDirDigest_MatchesAfterRestore(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("data", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "data/tasks.json", []byte(`{"version":"ebb_v1","tasks":[]}`), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "data/game_stats.json", []byte(`{"streak":0}`), 0o644))

	require.NoError(t, BackupDataDir(fsys, "data", "backup.tar.gz"))
	require.NoError(t, RestoreDataDir(fsys, "backup.tar.gz", "restored"))

	src, err := DirDigest(fsys, "data")
	require.NoError(t, err)
	restored, err := DirDigest(fsys, "restored")
	require.NoError(t, err)
	assert.Equal(t, src, restored)
}

func TestDirDigest_DetectsContentChange(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("a", 0o755))
	require.NoError(t, fsys.MkdirAll("b", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "a/tasks.json", []byte("one"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "b/tasks.json", []byte("two"), 0o644))

	da, err := DirDigest(fsys, "a")
	require.NoError(t, err)
	db, err := DirDigest(fsys, "b")
	require.NoError(t, err)
	assert.NotEqual(t, da, db)
}

func TestRestoreDataDir_RejectsPathTraversal(t *testing.T) {
	fsys := afero.NewMemMapFs()

	f, err := fsys.Create("bad.tar.gz")
	require.NoError(t, err)

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     "../escape.txt",
		Typeflag: tar.TypeReg,
		Mode:     0o644,
		Size:     int64(len("bad")),
	}))
	_, err = tw.Write([]byte("bad"))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	assert.Error(t, RestoreDataDir(fsys, "bad.tar.gz", "out"))
}
