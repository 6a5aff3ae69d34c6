package commands

import (
	"os"
	"testing"
)

// chdir stands in for testing.T.Chdir, which needs a Go 1.24+ toolchain: it
// enters dir and restores the previous working directory when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			panic("chdir: cannot restore working directory: " + err.Error())
		}
	})
}
