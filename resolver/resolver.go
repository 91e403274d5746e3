// Package resolver turns caller input into a Threads post identifier.
package resolver

import (
	"regexp"
	"strings"

	"github.com/use-agent/threadster/models"
)

// rePostURL captures the identifier segment of a post link. The segment
// stops at the first character outside [A-Za-z0-9_-], so query strings and
// trailing slashes are dropped.
var rePostURL = regexp.MustCompile(`threads\.(?:net|com)/.+?/post/([A-Za-z0-9_-]+)`)

// Resolve returns the post identifier for input.
//
// Inputs starting with "http" must be post links; anything else is taken
// verbatim as an identifier.
func Resolve(input string) (string, error) {
	if input == "" {
		return "", models.NewThreadError(models.ErrCodeMissingParameter, models.MsgMissingParameter, nil)
	}

	if !strings.HasPrefix(input, "http") {
		return input, nil
	}

	m := rePostURL.FindStringSubmatch(input)
	if m == nil {
		return "", models.NewThreadError(models.ErrCodeInvalidLink, models.MsgInvalidLink, nil)
	}
	return m[1], nil
}
