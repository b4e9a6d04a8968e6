// Command bubbleboard-ops is the operational companion to the server:
// backups of the data directory, restores, restore drills, and document
// export/import against a data directory that is not being served.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/motaterry/bubble-board/internal/ops"
	"github.com/motaterry/bubble-board/internal/task"
)

func main() {
	root := &cobra.Command{
		Use:           "bubbleboard-ops",
		Short:         "Operational tooling for the bubble board data directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newBackupCmd(),
		newRestoreCmd(),
		newDrillCmd(),
		newExportCmd(),
		newImportCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newBackupCmd() *cobra.Command {
	var dataDir, out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive the data directory into a .tar.gz",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				ts := time.Now().UTC().Format("20060102T150405Z")
				out = filepath.Join("backups", "bubbleboard-"+ts+".tar.gz")
			}
			if err := ops.BackupDataDir(afero.NewOsFs(), dataDir, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "path to data directory")
	cmd.Flags().StringVar(&out, "out", "", "output archive path (.tar.gz)")
	return cmd
}

func newRestoreCmd() *cobra.Command {
	var archive, target string
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Unpack a backup archive into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if archive == "" {
				return fmt.Errorf("--archive is required")
			}
			return ops.RestoreDataDir(afero.NewOsFs(), archive, target)
		},
	}
	cmd.Flags().StringVar(&archive, "archive", "", "input backup archive (.tar.gz)")
	cmd.Flags().StringVar(&target, "target-dir", "data-restored", "restore target directory")
	return cmd
}

func newDrillCmd() *cobra.Command {
	var dataDir, workDir string
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Backup, restore to scratch, and verify the digests match",
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := afero.NewOsFs()
			if err := fsys.MkdirAll(workDir, 0o755); err != nil {
				return err
			}
			ts := time.Now().UTC().Format("20060102T150405Z")
			archive := filepath.Join(workDir, "bubbleboard-drill-"+ts+".tar.gz")
			restoreDir := filepath.Join(workDir, "bubbleboard-drill-restore-"+ts)

			if err := ops.BackupDataDir(fsys, dataDir, archive); err != nil {
				return err
			}
			if err := ops.RestoreDataDir(fsys, archive, restoreDir); err != nil {
				return err
			}

			srcDigest, err := ops.DirDigest(fsys, dataDir)
			if err != nil {
				return err
			}
			restoreDigest, err := ops.DirDigest(fsys, restoreDir)
			if err != nil {
				return err
			}
			if srcDigest != restoreDigest {
				return fmt.Errorf("digest mismatch after restore: src=%s restored=%s", srcDigest, restoreDigest)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "backup:", archive)
			fmt.Fprintln(out, "restored:", restoreDir)
			fmt.Fprintln(out, "digest:", srcDigest)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "path to data directory")
	cmd.Flags().StringVar(&workDir, "work-dir", os.TempDir(), "temporary workspace for drill artifacts")
	return cmd
}

func newExportCmd() *cobra.Command {
	var dataDir, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the task document as pretty-printed JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(dataDir)
			if err != nil {
				return err
			}
			b, err := store.ExportJSON()
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(append(b, '\n'))
				return err
			}
			return os.WriteFile(out, b, 0o644)
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "path to data directory")
	cmd.Flags().StringVar(&out, "out", "-", "output path, or - for stdout")
	return cmd
}

func newImportCmd() *cobra.Command {
	var dataDir, in string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the task document from an exported JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == "" {
				return fmt.Errorf("--in is required")
			}
			b, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			store, err := openStore(dataDir)
			if err != nil {
				return err
			}
			tasks, err := store.ImportJSON(b)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d tasks\n", len(tasks))
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "path to data directory")
	cmd.Flags().StringVar(&in, "in", "", "exported document to import")
	return cmd
}

func openStore(dataDir string) (*task.Store, error) {
	repo, err := task.NewFileRepo(afero.NewOsFs(), dataDir)
	if err != nil {
		return nil, err
	}
	return task.NewStore(repo, log.New(os.Stderr, "", log.LstdFlags)), nil
}
