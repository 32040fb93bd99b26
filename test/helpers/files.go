package helpers

import (
	"os"
	"path/filepath"

	. "github.com/onsi/gomega"
)

// WriteFile drops contents at dir/filename and returns the full path.
func WriteFile(dir string, filename string, contents []byte) string {
	fullPath := filepath.Join(dir, filename)
	err := os.WriteFile(fullPath, contents, 0644)
	Expect(err).ToNot(HaveOccurred())
	return fullPath
}
