// Package imageref resolves raw user supplied image references (storage asset
// tokens, data URIs, document sharing URLs, bare object identifiers) into
// renderable URLs.
//
// Resolution is an ordered list of rules evaluated first match wins. Adding
// support for a new provider URL shape means adding a pattern, dispatch order
// stays the same. Unresolvable references produce empty string, never error.
package imageref

import (
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const (
	// AssetPrefix marks storage asset tokens: "asset:<opaque id>".
	AssetPrefix = "asset:"
	// IDToken is replaced with object identifier in endpoint templates.
	IDToken = "{id}"
	// DefaultEndpoint is canonical retrieval endpoint for provider objects.
	DefaultEndpoint = "https://lh3.googleusercontent.com/d/" + IDToken + "=s0"
)

var (
	schemeHTTP = regexp.MustCompile(`(?i)^https?://`)
	bareID     = regexp.MustCompile(`^[a-zA-Z0-9_-]{20,}$`)

	// providerHost matches URLs served by the document sharing provider.
	providerHost = regexp.MustCompile(`(?i)^https?://(?:[a-z0-9-]+\.)*(?:drive\.google\.com|docs\.google\.com|googleusercontent\.com)(?:[/:?#]|$)`)

	// providerIDPatterns are known URL shapes embedding object identifier,
	// first capture group is the identifier.
	providerIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)drive\.google\.com/file/d/([a-zA-Z0-9_-]{20,})`),
		regexp.MustCompile(`(?i)(?:drive|docs)\.google\.com/(?:uc|open|thumbnail)\?(?:[^#]*&)?id=([a-zA-Z0-9_-]{20,})`),
		regexp.MustCompile(`(?i)googleusercontent\.com/d/([a-zA-Z0-9_-]{20,})`),
	}
)

// ExtractProviderID looks up embedded provider object identifier.
func ExtractProviderID(raw string) (string, bool) {
	for _, re := range providerIDPatterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// IsProviderURL reports whether raw is http(s) URL of the provider domain.
func IsProviderURL(raw string) bool {
	return providerHost.MatchString(raw)
}

// IsBareID reports whether raw has the shape of provider object identifier.
func IsBareID(raw string) bool {
	return bareID.MatchString(raw)
}

type rule struct {
	name  string
	apply func(n *Normalizer, raw string) (string, bool)
}

// rules are evaluated in order, first rule which accepts reference wins.
var rules = []rule{
	{"asset", (*Normalizer).resolveAsset},
	{"data-uri", (*Normalizer).resolveDataURI},
	{"provider-url", (*Normalizer).resolveProviderURL},
	{"bare-id", (*Normalizer).resolveBareID},
	{"external-url", (*Normalizer).resolveExternalURL},
}

// Normalizer is immutable after construction and safe for concurrent use.
type Normalizer struct {
	endpoint      string
	assetsBase    string
	allowExternal bool
	log           *zap.Logger
}

type Option func(*Normalizer)

// WithEndpoint selects canonical retrieval endpoint template, it must contain
// IDToken, otherwise default endpoint is kept.
func WithEndpoint(tmpl string) Option {
	return func(n *Normalizer) {
		if strings.Contains(tmpl, IDToken) {
			n.endpoint = tmpl
		}
	}
}

// WithAssetsBase sets base URL for storage asset tokens, empty means site
// relative.
func WithAssetsBase(base string) Option {
	return func(n *Normalizer) {
		n.assetsBase = strings.TrimRight(strings.TrimSpace(base), "/")
	}
}

// WithExternalURLs allows arbitrary http(s) URLs to pass through unchanged.
// By default they are unresolvable.
func WithExternalURLs(allow bool) Option {
	return func(n *Normalizer) {
		n.allowExternal = allow
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(n *Normalizer) {
		if log != nil {
			n.log = log.Named("imageref")
		}
	}
}

func New(options ...Option) *Normalizer {
	n := &Normalizer{endpoint: DefaultEndpoint, log: zap.NewNop()}
	for _, setOpt := range options {
		setOpt(n)
	}
	return n
}

// Normalize maps raw reference to renderable URL or data URI. Empty string
// means reference could not be resolved.
func (n *Normalizer) Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, r := range rules {
		if res, ok := r.apply(n, raw); ok {
			return res
		}
	}
	n.log.Debug("Unresolvable image reference", zap.String("ref", raw))
	return ""
}

// Canonical returns retrieval endpoint for provider object identifier.
func (n *Normalizer) Canonical(id string) string {
	return strings.ReplaceAll(n.endpoint, IDToken, id)
}

func (n *Normalizer) resolveAsset(raw string) (string, bool) {
	if len(raw) < len(AssetPrefix) || !strings.EqualFold(raw[:len(AssetPrefix)], AssetPrefix) {
		return "", false
	}
	id := strings.TrimSpace(raw[len(AssetPrefix):])
	if id == "" {
		// token without id cannot be resolved by any other rule either
		return "", true
	}
	return n.assetsBase + "/assets/" + url.PathEscape(id), true
}

func (n *Normalizer) resolveDataURI(raw string) (string, bool) {
	if len(raw) >= 5 && strings.EqualFold(raw[:5], "data:") {
		return raw, true
	}
	return "", false
}

func (n *Normalizer) resolveProviderURL(raw string) (string, bool) {
	// identifier is only trusted on provider's own host, other sites may
	// carry provider paths in query strings
	if !IsProviderURL(raw) {
		return "", false
	}
	if id, ok := ExtractProviderID(raw); ok {
		return n.Canonical(id), true
	}
	// best effort: provider URL of unknown shape
	return raw, true
}

func (n *Normalizer) resolveBareID(raw string) (string, bool) {
	if IsBareID(raw) {
		return n.Canonical(raw), true
	}
	return "", false
}

func (n *Normalizer) resolveExternalURL(raw string) (string, bool) {
	if n.allowExternal && schemeHTTP.MatchString(raw) {
		return raw, true
	}
	return "", false
}
