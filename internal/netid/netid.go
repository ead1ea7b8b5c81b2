// Package netid normalizes instance URLs and derives FurNet identifiers.
// Everything in here is a pure string transform; no network access.
package netid

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeInstanceURL converts a free-form instance URL into a canonical
// absolute URL and its bare hostname. Missing schemes default to https,
// trailing slashes are stripped, and the hostname is reported without a
// port. Normalizing an already-normalized URL yields the same result.
func NormalizeInstanceURL(raw string) (normalized string, host string, err error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", "", fmt.Errorf("instance url is empty")
	}

	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	s = strings.TrimRight(s, "/")

	u, err := url.Parse(s)
	if err != nil {
		return "", "", fmt.Errorf("parsing instance url %q: %w", raw, err)
	}
	host = u.Hostname()
	if host == "" {
		return "", "", fmt.Errorf("instance url %q has no host", raw)
	}

	return s, host, nil
}

// GenerateAnimalID derives the globally unique identifier for an instance,
// in the form "domain:animal-name" (e.g. "furnet-workshop.example.com:rusty").
// The domain is the instance URL's host with any port stripped; the name is
// lower-cased with spaces replaced by hyphens.
func GenerateAnimalID(instanceURL, animalName string) (string, error) {
	_, host, err := NormalizeInstanceURL(instanceURL)
	if err != nil {
		return "", err
	}
	name := strings.ReplaceAll(strings.ToLower(animalName), " ", "-")
	return host + ":" + name, nil
}

// TrustedHost reports whether host satisfies the trusted-domain suffix
// policy. An empty suffix admits every host.
func TrustedHost(host, suffix string) bool {
	return strings.HasSuffix(host, suffix)
}
