//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
)

// CreateTestWorkspace creates an empty directory that is removed on cleanup
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	workspace, err := os.MkdirTemp("", "filescope-e2e-*")
	if err != nil {
		return "", err
	}
	tf.workspace = workspace
	return workspace, nil
}

// WriteFiles creates files below the workspace, making parent directories
func (tf *TUITestFramework) WriteFiles(files map[string]string) error {
	for name, body := range files {
		path := filepath.Join(tf.workspace, "tree", filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			return err
		}
	}
	return nil
}

// TreeDir is the directory WriteFiles writes into
func (tf *TUITestFramework) TreeDir() string {
	return filepath.Join(tf.workspace, "tree")
}
