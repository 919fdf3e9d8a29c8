//go:build !js
// +build !js

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/seqsense/pcgallery/cloud"
)

func TestWriteSynthetic(t *testing.T) {
	for _, format := range []string{"xyz", "pcd"} {
		format := format
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			err := newApp().Run([]string{"pcgallery", "--out", dir, "--format", format, "--seed", "3"})
			if err != nil {
				t.Fatal(err)
			}

			expected := []int{500, 400, 700, 800, 900, 550, 800, 600}
			for i, n := range expected {
				name := filepath.Join(dir, fmt.Sprintf("pointcloud_%02d.%s", i+1, format))
				b, err := os.ReadFile(name)
				if err != nil {
					t.Fatal(err)
				}
				a, err := cloud.Decode(name, b)
				if err != nil {
					t.Fatal(err)
				}
				if a.Len() != n {
					t.Errorf("%s: expected %d points, got: %d", name, n, a.Len())
				}
			}
		})
	}

	t.Run("UnknownFormat", func(t *testing.T) {
		err := newApp().Run([]string{"pcgallery", "--out", t.TempDir(), "--format", "ply"})
		if err == nil {
			t.Error("Expected error")
		}
	})
}
