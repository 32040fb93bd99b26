package helpers

import (
	"fmt"
	"io"
	"time"

	"github.com/anviltools/anvil-templates/archive"
)

// FakeArchiver records uploads in memory. Filenames in Existing are
// reported as already present, which drives the run-name clash logic
// in tests. DelayVisibility makes the first N Version calls after an
// upload report the file missing, imitating eventual consistency.
type FakeArchiver struct {
	Uploads          map[string][]byte
	Existing         map[string]bool
	DelayVisibility  int
	UploadError      error
	VersionCallCount int
}

func NewFakeArchiver() *FakeArchiver {
	return &FakeArchiver{
		Uploads:  map[string][]byte{},
		Existing: map[string]bool{},
	}
}

func (f *FakeArchiver) Upload(filename string, content io.Reader) (archive.Version, error) {
	if f.UploadError != nil {
		return archive.Version{}, f.UploadError
	}
	contents, err := io.ReadAll(content)
	if err != nil {
		return archive.Version{}, err
	}
	f.Uploads[filename] = contents
	f.Existing[filename] = true
	return archive.Version{LastModified: time.Now().UTC(), Filename: filename}, nil
}

func (f *FakeArchiver) Version(filename string) (archive.Version, error) {
	f.VersionCallCount++
	if f.DelayVisibility > 0 {
		f.DelayVisibility--
		return archive.Version{}, nil
	}
	if f.Existing[filename] {
		return archive.Version{LastModified: time.Now().UTC(), Filename: filename}, nil
	}
	return archive.Version{}, nil
}

// FakeNamer hands out Names in order, then falls back to generated
// values so callers never run dry.
type FakeNamer struct {
	Names []string
	calls int
}

func (f *FakeNamer) RandomName() string {
	defer func() { f.calls++ }()
	if f.calls < len(f.Names) {
		return f.Names[f.calls]
	}
	return fmt.Sprintf("generated-%d", f.calls)
}
