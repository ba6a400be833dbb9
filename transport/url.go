// MFP       - Miulti-Function Printers and scanners toolkit
// TRANSPORT - Transport protocol implementation
//
// URL parsing and canonicalization
//
// eSCL devices are addressed over HTTP(S), but discovery and
// command-line input both hand us loosely-formed strings: bare IP
// addresses, addresses with a port but no scheme, or full URLs with
// redundant default ports. ParseURL and ParseAddr turn all of that
// into a single canonical *url.URL so the rest of the package never
// has to special-case "maybe there's a :80 in there".

package transport

import (
	"errors"
	"net"
	"net/url"
	"path"
	"strings"
)

// Errors returned by [ParseURL] and [ParseAddr].
var (
	ErrURLSchemeMissed  = errors.New("URL scheme missed")
	ErrURLSchemeInvalid = errors.New("URL scheme invalid")
	ErrURLInvalid       = errors.New("invalid URL")
	ErrURLUNIXHost      = errors.New("invalid host for the unix:// URL")
)

// ParseURL parses s into a canonical *url.URL: the scheme's default
// port (80 for http, 443 for https, 631 for ipp/ipps) is dropped if
// present, and the path is cleaned of redundant slashes and "." /
// ".." segments.
//
// Only the "http", "https", "ipp", "ipps" and "unix" schemes are
// accepted.
func ParseURL(s string) (*url.URL, error) {
	idx := strings.IndexByte(s, ':')
	if idx < 0 {
		return nil, ErrURLSchemeMissed
	}

	scheme := strings.ToLower(s[:idx])
	switch scheme {
	case "http", "https", "ipp", "ipps":
		u, err := url.Parse(s)
		if err != nil || u.Host == "" {
			return nil, ErrURLInvalid
		}

		u.Scheme = scheme
		stripDefaultPort(u)
		u.Path = CleanURLPath(u.Path)

		return u, nil

	case "unix":
		return parseUnixURL(s)

	default:
		return nil, ErrURLSchemeInvalid
	}
}

// MustParseURL is like [ParseURL] but panics on error.
func MustParseURL(s string) *url.URL {
	u, err := ParseURL(s)
	if err != nil {
		panic(err)
	}
	return u
}

// ParseAddr parses addr into a canonical *url.URL.
//
// addr may be a full URL (handled exactly as [ParseURL] would), a
// filesystem path (treated as a unix:// socket), or a bare host or
// host:port pair. For the bare-host form, template supplies the
// scheme/port/path to use when addr doesn't specify its own; if addr
// carries a recognized port (80/443/631), the scheme is inferred from
// that port, even when template names a different scheme.
func ParseAddr(addr, template string) (*url.URL, error) {
	if strings.Contains(addr, "://") || strings.HasPrefix(addr, "unix:") {
		return ParseURL(addr)
	}

	if strings.HasPrefix(addr, "/") {
		return ParseURL("unix:" + addr)
	}

	host, port, hasPort, err := splitHostMaybePort(addr)
	if err != nil {
		return nil, ErrURLInvalid
	}

	var tmpl *url.URL
	if template != "" {
		tmpl, err = url.Parse(template)
		if err != nil {
			return nil, ErrURLInvalid
		}
	}

	scheme := ""
	resultPort := ""

	switch {
	case hasPort:
		resultPort = port
		scheme = schemeForPort(port)
	case tmpl != nil:
		resultPort = tmpl.Port()
		scheme = tmpl.Scheme
	}

	if scheme == "" {
		if tmpl != nil && tmpl.Scheme != "" {
			scheme = tmpl.Scheme
		} else {
			scheme = "http"
		}
	}

	urlPath := "/"
	if tmpl != nil && tmpl.Path != "" {
		urlPath = tmpl.Path
	}

	hostPart := host
	if strings.Contains(host, ":") {
		hostPart = "[" + host + "]"
	}
	if resultPort != "" {
		hostPart += ":" + resultPort
	}

	return ParseURL(scheme + "://" + hostPart + urlPath)
}

// CleanURLPath cleans p of redundant slashes and "." / ".." segments,
// the way [path.Clean] does, but (unlike path.Clean) preserves a
// trailing slash and maps an empty path to "/".
func CleanURLPath(p string) string {
	if p == "" {
		return "/"
	}

	trailingSlash := p != "/" && strings.HasSuffix(p, "/")

	cleaned := path.Clean(p)
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}

	if trailingSlash && !strings.HasSuffix(cleaned, "/") {
		cleaned += "/"
	}

	return cleaned
}

// stripDefaultPort removes the scheme's default port from u.Host, if
// present.
func stripDefaultPort(u *url.URL) {
	host, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		return
	}

	if port != defaultPortForScheme(u.Scheme) {
		return
	}

	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	u.Host = host
}

func defaultPortForScheme(scheme string) string {
	switch scheme {
	case "http":
		return "80"
	case "https":
		return "443"
	case "ipp", "ipps":
		return "631"
	}
	return ""
}

func schemeForPort(port string) string {
	switch port {
	case "80":
		return "http"
	case "443":
		return "https"
	case "631":
		return "ipp"
	}
	return ""
}

// splitHostMaybePort splits addr into a host and an optional port,
// handling bracketed and bare IPv6 literals.
func splitHostMaybePort(addr string) (host, port string, hasPort bool, err error) {
	if strings.HasPrefix(addr, "[") {
		end := strings.IndexByte(addr, ']')
		if end < 0 {
			return "", "", false, errors.New("malformed IPv6 address")
		}

		host = addr[1:end]
		rest := addr[end+1:]
		if rest == "" {
			return host, "", false, nil
		}
		if !strings.HasPrefix(rest, ":") {
			return "", "", false, errors.New("malformed address")
		}
		return host, rest[1:], true, nil
	}

	if strings.Count(addr, ":") >= 2 {
		// Bare (unbracketed) IPv6 literal; can't carry a port.
		return addr, "", false, nil
	}

	if idx := strings.LastIndexByte(addr, ':'); idx >= 0 {
		return addr[:idx], addr[idx+1:], true, nil
	}

	return addr, "", false, nil
}

// parseUnixURL parses the unix:// scheme. Only an empty host or a
// bare "localhost" (no port) is accepted; anything else means the
// caller meant to connect to a remote host, which the unix scheme
// can't express.
func parseUnixURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, ErrURLInvalid
	}

	if u.Host != "" && !strings.EqualFold(u.Host, "localhost") {
		return nil, ErrURLUNIXHost
	}

	p := u.Path
	if p == "" {
		p = u.Opaque
	}

	return &url.URL{Scheme: "unix", Opaque: p}, nil
}
