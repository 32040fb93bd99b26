package archive

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/anviltools/anvil-templates/namer"
)

const (
	NameClashRetries = 10
)

type Archiver interface {
	Upload(string, io.Reader) (Version, error)
	Version(string) (Version, error)
}

func BuildDriver(m Model) Archiver {
	driverType := m.Driver
	if driverType == "" {
		driverType = S3Driver
	}

	var driver Archiver
	switch driverType {
	case S3Driver:
		driver = NewS3(m)
	default:
		// calling model.Validate will throw error for this case
		return null{}
	}

	return driver
}

// ResolveRunName picks the remote folder artifacts land under. An
// explicit name is used as-is (normalized); otherwise random names are
// drawn until one doesn't clash with an existing run, where a clash is
// probing for probeFilename under the candidate name.
func ResolveRunName(explicitName string, n namer.Namer, driver Archiver, probeFilename string) (string, error) {
	if explicitName != "" {
		return normalizeRunName(explicitName), nil
	}

	for i := 0; i < NameClashRetries; i++ {
		randomName := n.RandomName()
		clash, err := runNameClashes(randomName, probeFilename, driver)
		if err != nil {
			return "", err
		}
		if clash == false {
			return randomName, nil
		}
	}
	return "", fmt.Errorf("Failed to generate a non-clashing run name after %d attempts", NameClashRetries)
}

// UploadFiles stores each local file under runName in the archive and
// returns the remote paths written.
func UploadFiles(driver Archiver, runName string, localPaths []string) ([]string, error) {
	remotePaths := []string{}
	for _, localPath := range localPaths {
		artifact := Artifact{
			LocalPath:     localPath,
			RemotePath:    path.Join(runName, filepath.Base(localPath)),
			StorageDriver: driver,
		}
		if _, err := artifact.Upload(); err != nil {
			return nil, err
		}
		remotePaths = append(remotePaths, artifact.RemotePath)
	}
	return remotePaths, nil
}

func runNameClashes(runName string, probeFilename string, driver Archiver) (bool, error) {
	version, err := driver.Version(path.Join(runName, probeFilename))
	if err != nil {
		return false, err
	}
	return version.IsZero() == false, nil
}

func normalizeRunName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Replace(name, " ", "-", -1)
	return name
}
