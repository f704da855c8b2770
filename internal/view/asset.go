package view

import (
	"strings"

	"adsstore/internal/domain"
)

// StaticPrefix is where relative catalog image paths are served from.
const StaticPrefix = "/static/"

// assetURL resolves a catalog image reference for an img src. Absolute
// URLs, protocol-relative URLs and rooted paths pass through; anything else
// is relative to the static root. An empty reference gets the placeholder.
func assetURL(ref string) string {
	switch {
	case ref == "":
		ref = domain.NoImage
	case strings.HasPrefix(ref, "http://"),
		strings.HasPrefix(ref, "https://"),
		strings.HasPrefix(ref, "/"):
		return ref
	}
	return StaticPrefix + strings.TrimPrefix(ref, "./")
}

func assetURLs(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, assetURL(r))
	}
	return out
}
