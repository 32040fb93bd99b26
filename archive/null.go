package archive

import (
	"errors"
	"io"
)

type null struct{}

func (n null) Upload(key string, content io.Reader) (Version, error) {
	return Version{}, errors.New("Not Implemented")
}

func (n null) Version(key string) (Version, error) {
	return Version{}, errors.New("Not Implemented")
}
