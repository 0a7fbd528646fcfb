package utils

import (
	"net"
	"net/url"
	"path"
	"sort"
	"strings"

	"golang.org/x/net/idna"
)

// CanonicalizeOptions controls optional canonicalization policies.
type CanonicalizeOptions struct {
	StripTrailingSlash bool     // treat /a and /a/ the same by removing trailing slash (except for root "/")
	DefaultScheme      string   // if empty, require scheme in input; otherwise assume this scheme for schemeless URLs
	AllowedSchemes     []string // if non-empty, reject any other scheme
	DropUserinfo       bool     // remove credentials from the URL
}

// Canonicalize returns a deterministic canonical URL string or an error.
// It uses net/url plus path.Clean and sorts query params for determinism.
func Canonicalize(raw string, opts CanonicalizeOptions) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}

	if opts.DefaultScheme != "" && !strings.Contains(raw, "://") {
		raw = opts.DefaultScheme + "://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	if u.Host == "" {
		return "", &url.Error{Op: "parse", URL: raw, Err: ErrMissingHost}
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if len(opts.AllowedSchemes) > 0 && !contains(opts.AllowedSchemes, u.Scheme) {
		return "", &url.Error{Op: "parse", URL: raw, Err: ErrUnsupportedScheme}
	}

	// Lowercase host and convert IDN -> punycode
	host := strings.ToLower(u.Hostname())
	if puny, err := idna.Lookup.ToASCII(host); err == nil {
		host = puny
	}

	// Preserve non-default port only
	port := u.Port()
	switch {
	case (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443"):
		u.Host = host
	case port != "":
		u.Host = net.JoinHostPort(host, port)
	default:
		u.Host = host
	}

	if opts.DropUserinfo {
		u.User = nil
	}

	cleanPath := path.Clean(u.Path)
	if cleanPath == "." {
		cleanPath = "/"
	}
	if opts.StripTrailingSlash && len(cleanPath) > 1 {
		cleanPath = strings.TrimRight(cleanPath, "/")
		if cleanPath == "" {
			cleanPath = "/"
		}
	}
	u.Path = cleanPath
	u.Fragment = ""

	// Sort keys and values for deterministic encoding
	q := u.Query()
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ordered := url.Values{}
	for _, k := range keys {
		values := q[k]
		sort.Strings(values)
		for _, v := range values {
			ordered.Add(k, v)
		}
	}
	u.RawQuery = ordered.Encode()

	return u.String(), nil
}

// CanonicalizeEndpoint normalizes a prediction backend URL. Schemeless
// input is assumed to be http; only http and https are accepted.
//
//	"LOCALHOST:5000/predict/"      -> "http://localhost:5000/predict"
//	"https://Models.Example:443/p" -> "https://models.example/p"
func CanonicalizeEndpoint(raw string) (string, error) {
	return Canonicalize(raw, CanonicalizeOptions{
		DefaultScheme:      "http",
		AllowedSchemes:     []string{"http", "https"},
		StripTrailingSlash: true,
	})
}

// RedactURL hides any password in raw for logging. Unparsable input is
// returned unchanged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Errors
var (
	ErrEmptyURL          = &url.Error{Op: "canonicalize", URL: "", Err: &errStr{"empty url"}}
	ErrMissingHost       = &errStr{"missing host"}
	ErrUnsupportedScheme = &errStr{"unsupported scheme"}
)

type errStr struct{ s string }

func (e *errStr) Error() string { return e.s }
