package namer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Pallinder/go-randomdata"
)

type Namer interface {
	RandomName() string
}

func New() Namer {
	return adjectiveNounNamer{}
}

type adjectiveNounNamer struct{}

func (n adjectiveNounNamer) RandomName() string {
	adjective := strings.ToLower(randomdata.Adjective())
	noun := strings.ToLower(randomdata.Noun())
	return fmt.Sprintf("%s-%s", adjective, noun)
}

var slugUnsafe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Slugify reduces a template name to a filesystem-safe token: runs of
// non-alphanumerics collapse to single hyphens, leading and trailing
// hyphens drop, and the result is lowercased. Names with no usable
// characters fall back to "template".
func Slugify(value string) string {
	slug := slugUnsafe.ReplaceAllString(value, "-")
	slug = strings.ToLower(strings.Trim(slug, "-"))
	if slug == "" {
		return "template"
	}
	return slug
}
