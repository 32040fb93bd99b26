package archive

import (
	"fmt"
	"strings"
	"time"
)

const (
	S3Driver = "s3"
)

// Model configures the optional artifact archive. An empty Bucket
// means archiving is disabled and the rest of the fields are ignored.
type Model struct {
	Driver string `json:"driver,omitempty"` // optional, defaults to s3

	// S3 driver
	Bucket          string `json:"bucket"`
	BucketPath      string `json:"bucket_path,omitempty"` // optional key prefix
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	RegionName      string `json:"region_name,omitempty"` // optional
	Endpoint        string `json:"endpoint,omitempty"`    // optional

	// RunName labels the remote folder one invocation's artifacts land
	// under. Empty means a random name is generated per run.
	RunName string `json:"run_name,omitempty"` // optional
}

type Version struct {
	LastModified time.Time
	Filename     string
}

func (m Model) IsConfigured() bool {
	return m.Bucket != ""
}

func (m Model) Validate() error {

	knownDrivers := []string{
		"",
		S3Driver,
	}
	isUnknownDriver := true
	for _, driver := range knownDrivers {
		if driver == m.Driver {
			isUnknownDriver = false
			break
		}
	}
	if isUnknownDriver {
		for i, value := range knownDrivers {
			knownDrivers[i] = fmt.Sprintf("'%s'", value)
		}
		return fmt.Errorf(
			"Unknown value for `archive.driver`: '%s', Supported driver values: %s",
			m.Driver,
			strings.Join(knownDrivers, ", "),
		)
	}

	missingFields := []string{}
	if m.Driver == "" || m.Driver == S3Driver {
		fieldPrefix := "archive"
		if m.Bucket == "" {
			missingFields = append(missingFields, fmt.Sprintf("%s.bucket", fieldPrefix))
		}
		if m.AccessKeyID == "" {
			missingFields = append(missingFields, fmt.Sprintf("%s.access_key_id", fieldPrefix))
		}
		if m.SecretAccessKey == "" {
			missingFields = append(missingFields, fmt.Sprintf("%s.secret_access_key", fieldPrefix))
		}
	}

	if len(missingFields) > 0 {
		for i, value := range missingFields {
			missingFields[i] = fmt.Sprintf("'%s'", value)
		}
		return fmt.Errorf("Missing fields: %s", strings.Join(missingFields, ", "))
	}
	return nil
}

func (r Version) IsZero() bool {
	return r == Version{}
}
