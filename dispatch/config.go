package dispatch

import (
	"fmt"
	"strings"
)

const maxResponseBodyLimit = 1024 * 1024 * 1024

func validateConfig(config Config) error {
	if config.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	if config.MaxResponseBodySize < 0 {
		return fmt.Errorf("max response body size cannot be negative")
	}

	if config.MaxResponseBodySize > maxResponseBodyLimit {
		return fmt.Errorf("max response body size cannot exceed 1GB")
	}

	if config.BaseURL != "" {
		if err := validateURL(config.BaseURL); err != nil {
			return fmt.Errorf("invalid base URL: %w", err)
		}
	}

	if strings.ContainsAny(config.TokenScheme, " \r\n") {
		return fmt.Errorf("token scheme cannot contain whitespace")
	}

	if err := validateHeaders(config.Headers); err != nil {
		return fmt.Errorf("invalid headers: %w", err)
	}

	return nil
}

func cloneHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}

	result := make(map[string]string, len(headers))
	for k, v := range headers {
		result[k] = v
	}

	return result
}
