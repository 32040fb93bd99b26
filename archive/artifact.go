package archive

import (
	"fmt"
	"os"
	"time"
)

// Artifact is a local file bound for remote archive storage.
type Artifact struct {
	LocalPath     string
	RemotePath    string
	StorageDriver Archiver
}

func (a Artifact) Exists() (bool, error) {
	version, err := a.StorageDriver.Version(a.RemotePath)
	if err != nil {
		return false, fmt.Errorf("Failed to check for existing artifact at '%s': %s", a.RemotePath, err)
	}
	return version.IsZero() == false, nil
}

func (a Artifact) Upload() (Version, error) {
	file, err := os.Open(a.LocalPath)
	if err != nil {
		return Version{}, fmt.Errorf("Failed to open artifact at '%s'", a.LocalPath)
	}
	defer file.Close()

	_, err = a.StorageDriver.Upload(a.RemotePath, file)
	if err != nil {
		return Version{}, fmt.Errorf("Failed to upload artifact: %s", err)
	}

	// handle AWS eventual consistency errors
	retryAttempts := 5
	var version Version
	for i := 0; i < retryAttempts; i++ {
		version, err = a.StorageDriver.Version(a.RemotePath)
		if err != nil {
			return Version{}, fmt.Errorf("Failed to retrieve version from '%s': %s", a.RemotePath, err)
		}
		if !version.IsZero() {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if version.IsZero() {
		return Version{}, fmt.Errorf("Couldn't find artifact after %d retries at: %s", retryAttempts, a.RemotePath)
	}

	return version, nil
}
