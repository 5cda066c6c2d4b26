package applink

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// App Link v1.0 payload keys.
const (
	DataParameterKey = "al_applink_data"
	TargetURLKey     = "target_url"
	UserAgentKey     = "user_agent"
	ExtrasKey        = "extras"
	VersionKey       = "version"
	RefererKey       = "referer_app_link"
	RefererURLKey    = "url"
	RefererAppKey    = "app_name"

	// DefaultVersion is reported when the payload does not carry a version.
	DefaultVersion = "1.0"
)

// URL decoding errors.
var (
	ErrEmptyURL   = errors.New("empty url")
	ErrInvalidURL = errors.New("invalid url")
)

// Referer identifies the app that started the navigation.
type Referer struct {
	// AppName is the display name of the referring app.
	AppName string

	// URL navigates back to the referer.
	URL string
}

// Request is an inbound navigation, either an external deep link or an
// in-app URL, normalized for routing.
type Request struct {
	// ID uniquely identifies this request.
	ID string

	// RawURL is the URL the request was decoded from.
	RawURL *url.URL

	// Scheme is the URL scheme, or "" for schemeless in-app paths.
	Scheme string

	// Path is the normalized target path, always starting with "/".
	Path string

	// TargetURL is the URL being navigated to.
	TargetURL string

	// Extras holds the "extras" object of the App Link payload.
	Extras map[string]any

	// Params holds path parameters bound by the matched route.
	Params map[string]string

	// Referer is set when the payload names both a referer app and URL.
	Referer *Referer

	// Version is the App Link protocol version.
	Version string

	// UserAgent identifies the library that produced the navigation.
	UserAgent string

	ctx context.Context
}

// Parse decodes a raw URL string into a Request.
func Parse(raw string) (*Request, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	return FromURL(u), nil
}

// FromURL builds a Request from an already parsed URL.
func FromURL(u *url.URL) *Request {
	req := &Request{
		ID:      uuid.NewString(),
		RawURL:  u,
		Scheme:  u.Scheme,
		Extras:  make(map[string]any),
		Params:  make(map[string]string),
		Version: DefaultVersion,
	}

	combined := joinNonEmpty(u.Host, u.Path)
	req.Path = "/" + combined
	if req.Scheme != "" {
		req.TargetURL = req.Scheme + "://" + combined
	} else {
		req.TargetURL = req.Path
	}

	if data := u.Query().Get(DataParameterKey); data != "" {
		req.applyPayload(decodePayload(data))
	}

	return req
}

// joinNonEmpty joins host and path with a single "/", dropping empty pieces
// and any surrounding slashes.
func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}

// decodePayload unmarshals the App Link JSON payload. Malformed payloads
// decode to an empty map.
func decodePayload(data string) map[string]any {
	payload := make(map[string]any)
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return map[string]any{}
	}
	return payload
}

func (r *Request) applyPayload(payload map[string]any) {
	if extras, ok := payload[ExtrasKey].(map[string]any); ok {
		r.Extras = extras
	}
	if ua, ok := payload[UserAgentKey].(string); ok {
		r.UserAgent = ua
	}
	if v, ok := payload[VersionKey].(string); ok && v != "" {
		r.Version = v
	}
	if ref, ok := payload[RefererKey].(map[string]any); ok {
		name, nameOK := ref[RefererAppKey].(string)
		link, linkOK := ref[RefererURLKey].(string)
		if nameOK && linkOK {
			r.Referer = &Referer{AppName: name, URL: link}
		}
	}
}

// Param returns the named path parameter, or "" if it was not bound.
func (r *Request) Param(name string) string {
	return r.Params[name]
}

// Context returns the request's context. It is never nil.
func (r *Request) Context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of r with its context changed to ctx.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx == nil {
		panic("applink: nil context")
	}
	r2 := *r
	r2.ctx = ctx
	return &r2
}
