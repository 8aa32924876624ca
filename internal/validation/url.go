package validation

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// URLValidator checks the remote URLs the app talks to: the apps
// endpoint and the image links inside records.
type URLValidator struct {
	// AllowLocalhost determines if localhost URLs are permitted
	AllowLocalhost bool
	// AllowPrivateIPs determines if private IP addresses are permitted
	AllowPrivateIPs bool
	// RequireScheme rejects input without http:// or https:// instead of
	// defaulting to https.
	RequireScheme bool
	// MaxLength is the maximum allowed URL length
	MaxLength int
}

// NewURLValidator creates a validator with secure defaults.
func NewURLValidator() *URLValidator {
	return &URLValidator{
		AllowLocalhost:  false,
		AllowPrivateIPs: false,
		MaxLength:       2048,
	}
}

// NewEndpointValidator accepts local and private hosts so a self-hosted
// or development endpoint can be configured.
func NewEndpointValidator() *URLValidator {
	return &URLValidator{
		AllowLocalhost:  true,
		AllowPrivateIPs: true,
		MaxLength:       2048,
	}
}

// NewImageURLValidator is strict about the scheme: image links in the
// sheet are used verbatim, never completed.
func NewImageURLValidator() *URLValidator {
	return &URLValidator{
		AllowLocalhost:  false,
		AllowPrivateIPs: false,
		RequireScheme:   true,
		MaxLength:       4096,
	}
}

// ValidateAndNormalize validates a URL and returns the normalized version
func (v *URLValidator) ValidateAndNormalize(input string) (string, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return "", fmt.Errorf("URL cannot be empty")
	}
	if len(input) > v.MaxLength {
		return "", fmt.Errorf("URL too long (max %d characters)", v.MaxLength)
	}

	if strings.ContainsAny(input, "<>\"'` ") {
		return "", fmt.Errorf("URL contains invalid characters")
	}

	hasScheme := strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
	if !hasScheme {
		if v.RequireScheme || strings.Contains(input, "://") {
			return "", fmt.Errorf("URL must use http or https protocol")
		}
		input = "https://" + input
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", fmt.Errorf("URL must use http or https protocol")
	}

	if parsedURL.Host == "" {
		return "", fmt.Errorf("URL must have a valid hostname")
	}

	if err := v.validateHostSecurity(parsedURL.Host); err != nil {
		return "", err
	}

	if err := validatePathSecurity(parsedURL); err != nil {
		return "", err
	}

	return parsedURL.String(), nil
}

// Valid reports whether input passes validation.
func (v *URLValidator) Valid(input string) bool {
	_, err := v.ValidateAndNormalize(input)
	return err == nil
}

func (v *URLValidator) validateHostSecurity(host string) error {
	hostname := host
	if strings.Contains(host, ":") {
		var err error
		hostname, _, err = net.SplitHostPort(host)
		if err != nil {
			return fmt.Errorf("invalid host format: %w", err)
		}
	}

	if !v.AllowLocalhost && isLocalhost(hostname) {
		return fmt.Errorf("localhost URLs are not permitted")
	}

	if !v.AllowPrivateIPs {
		if ip := net.ParseIP(hostname); ip != nil && isPrivateIP(ip) {
			return fmt.Errorf("private IP addresses are not permitted")
		}
	}

	if hostname == "0.0.0.0" || hostname == "255.255.255.255" {
		return fmt.Errorf("suspicious hostname detected")
	}

	return nil
}

func validatePathSecurity(parsedURL *url.URL) error {
	if strings.Contains(parsedURL.Path, "..") {
		return fmt.Errorf("directory traversal patterns not allowed in URL path")
	}

	query := strings.ToLower(parsedURL.RawQuery)
	if strings.Contains(query, "<script") || strings.Contains(query, "javascript:") {
		return fmt.Errorf("suspicious query parameters detected")
	}

	return nil
}

func isLocalhost(hostname string) bool {
	return hostname == "localhost" ||
		hostname == "127.0.0.1" ||
		hostname == "::1" ||
		strings.HasSuffix(hostname, ".localhost")
}

// isPrivateIP checks if an IP address is in a private, link-local or
// loopback range.
func isPrivateIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast()
}
