package service

import (
	"encoding/base64"
	"regexp"
	"strings"
)

// Credentials is the decoded (username, password) pair carried by the auth
// header.
type Credentials struct {
	Username string
	Password string
}

var base64Segment = regexp.MustCompile(`^(?:[A-Za-z0-9+/]{4})*(?:[A-Za-z0-9+/]{2}==|[A-Za-z0-9+/]{3}=)?$`)

// DecodeCredentials parses the custom auth header: exactly two colon-separated
// base64 segments, username then password. Every malformation collapses to the
// empty credential; decoding never reports an error to the caller. A missing
// header, a wrong segment count, a segment that is empty, whitespace-only or
// the literal "null", a segment outside the base64 alphabet, a failed decode,
// and a decoded identity that is blank are all treated identically.
func DecodeCredentials(header string) (Credentials, bool) {
	if header == "" {
		return Credentials{}, false
	}

	segments := strings.Split(header, ":")
	if len(segments) != 2 {
		return Credentials{}, false
	}
	for _, segment := range segments {
		if segment == "null" || strings.TrimSpace(segment) == "" {
			return Credentials{}, false
		}
		if !base64Segment.MatchString(segment) {
			return Credentials{}, false
		}
	}

	username, err := base64.StdEncoding.DecodeString(segments[0])
	if err != nil {
		return Credentials{}, false
	}
	password, err := base64.StdEncoding.DecodeString(segments[1])
	if err != nil {
		return Credentials{}, false
	}
	if strings.TrimSpace(string(username)) == "" || strings.TrimSpace(string(password)) == "" {
		return Credentials{}, false
	}

	return Credentials{Username: string(username), Password: string(password)}, true
}
