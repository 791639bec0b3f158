package github

import "strings"

// parseLinkNext extracts the URL with rel="next" from an RFC 5988 Link
// header. Returns empty string if no next link is present.
//
// Format: <https://api.github.com/...?page=2>; rel="next", <...>; rel="last"
func parseLinkNext(header string) string {
	if header == "" {
		return ""
	}

	for part := range strings.SplitSeq(header, ",") {
		urlPart, relPart, ok := strings.Cut(strings.TrimSpace(part), ";")
		if !ok {
			continue
		}

		urlPart = strings.TrimSpace(urlPart)
		if !strings.Contains(relPart, `rel="next"`) {
			continue
		}

		if strings.HasPrefix(urlPart, "<") && strings.HasSuffix(urlPart, ">") {
			return urlPart[1 : len(urlPart)-1]
		}
	}

	return ""
}
