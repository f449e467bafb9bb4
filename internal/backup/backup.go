// Package backup archives a workspace directory into a timestamped tar.xz
// file under the workspace's archive directory.
package backup

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

// ArchiveDirName is the directory excluded from archives and written into.
const ArchiveDirName = "archive"

// Archive packs every file and directory under workspace, except the
// archive directory itself, into workspace/archive/<name>_<timestamp>.tar.xz
// and returns the archive path.
func Archive(workspace, name string) (string, error) {
	archiveDir := filepath.Join(workspace, ArchiveDirName)
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("creating archive dir: %w", err)
	}

	path := filepath.Join(archiveDir,
		fmt.Sprintf("%s_%s.tar.xz", name, time.Now().Format("20060102_150405")))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating archive: %w", err)
	}
	defer file.Close()

	compressWriter, err := xz.NewWriter(file)
	if err != nil {
		return "", fmt.Errorf("creating xz writer: %w", err)
	}
	tarWriter := tar.NewWriter(compressWriter)

	err = filepath.Walk(workspace, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(workspace, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if rel == ArchiveDirName || strings.HasPrefix(rel, ArchiveDirName+string(filepath.Separator)) {
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if err := tarWriter.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		src, err := os.Open(p)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(tarWriter, src)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("packing %s: %w", workspace, err)
	}

	if err := tarWriter.Close(); err != nil {
		return "", fmt.Errorf("closing tar writer: %w", err)
	}
	if err := compressWriter.Close(); err != nil {
		return "", fmt.Errorf("closing xz writer: %w", err)
	}
	return path, nil
}

// List returns the archive files present in the workspace's archive
// directory, newest name last.
func List(workspace string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(workspace, ArchiveDirName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".tar.xz") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
