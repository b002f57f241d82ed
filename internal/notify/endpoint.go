package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// ErrUnsupportedScheme is returned for addresses whose scheme has no endpoint.
	ErrUnsupportedScheme = errors.New("unsupported endpoint scheme")
	// ErrInvalidAddress is returned for addresses that cannot be parsed.
	ErrInvalidAddress = errors.New("invalid endpoint address")
	// ErrDesktopUnavailable is returned when no desktop notification tool is usable.
	ErrDesktopUnavailable = errors.New("desktop notifications unavailable")
)

// Endpoint delivers notifications to one destination.
type Endpoint interface {
	// Name identifies the endpoint in logs with secrets redacted.
	Name() string

	// Send makes a single delivery attempt.
	Send(ctx context.Context, n Notification) error
}

// ParseEndpoint builds the endpoint for an address. The scheme selects the
// endpoint kind; see the package documentation for the address formats.
func ParseEndpoint(address string) (Endpoint, error) {
	address = strings.TrimSpace(address)
	scheme, rest, ok := strings.Cut(address, "://")
	if !ok || scheme == "" {
		return nil, fmt.Errorf("%w: %q has no scheme", ErrInvalidAddress, Redact(address))
	}

	switch strings.ToLower(scheme) {
	case "tgram":
		return newTelegramEndpoint(rest)
	case "discord":
		return newDiscordEndpoint(rest)
	case "slack":
		return newSlackEndpoint(rest)
	case "json", "jsons":
		return newJSONEndpoint(address)
	case "mailto", "mailtos":
		return newMailEndpoint(address)
	case "desktop":
		return newDesktopEndpoint(NewSender()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
}

// BuildEndpoints parses every address. Blank entries and entries starting
// with '#' are placeholders and skipped silently; invalid addresses are
// logged and skipped so that one typo does not silence the rest.
func BuildEndpoints(addresses []string, log zerolog.Logger) []Endpoint {
	endpoints := make([]Endpoint, 0, len(addresses))
	for _, addr := range addresses {
		addr = strings.TrimSpace(addr)
		if addr == "" || strings.HasPrefix(addr, "#") {
			continue
		}
		ep, err := ParseEndpoint(addr)
		if err != nil {
			log.Warn().Err(err).Msg("skipping notification endpoint")
			continue
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints
}

// pathSegments splits the part after "scheme://" into non-empty segments,
// dropping any query string.
func pathSegments(rest string) []string {
	rest, _, _ = strings.Cut(rest, "?")
	var segs []string
	for _, s := range strings.Split(rest, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// Redact hides everything after the scheme so tokens never reach the logs.
func Redact(address string) string {
	scheme, rest, ok := strings.Cut(address, "://")
	if !ok {
		if len(address) > 8 {
			return address[:8] + "…"
		}
		return address
	}
	if rest == "" {
		return scheme + "://"
	}
	return scheme + "://…"
}

// mask keeps the last four characters of a secret.
func mask(secret string) string {
	if len(secret) <= 4 {
		return "…"
	}
	return "…" + secret[len(secret)-4:]
}
