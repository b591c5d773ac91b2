package dispatch

import (
	"fmt"
	"net/url"
	"strings"
)

func getUrlInstance(reqUrl string, params map[string]any) (*url.URL, error) {
	parsedURL, err := url.Parse(reqUrl)
	if err != nil {
		return nil, err
	}

	if len(params) == 0 {
		return parsedURL, nil
	}

	urlParams := parsedURL.Query()
	for key, value := range params {
		urlParams.Add(key, fmt.Sprintf("%v", value))
	}

	parsedURL.RawQuery = urlParams.Encode()
	return parsedURL, nil
}

// joinURL appends path to base with exactly one slash between them.
// Absolute URLs in path are returned unchanged.
func joinURL(base, path string) string {
	if base == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if path == "" {
		return base
	}

	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
