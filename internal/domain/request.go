package domain

import "fmt"

// Wire forms of the request protocol as reported by the front door.
const (
	ProtocolHTTP  = "http://"
	ProtocolHTTPS = "https://"
)

// Request is a read-only snapshot of one inbound HTTP request. It is built
// fresh per call by the HTTP layer; the engine never retains it.
type Request struct {
	Host       string
	Protocol   string // ProtocolHTTP or ProtocolHTTPS
	Fullpath   string
	PortString string // including the leading ":", empty for default ports
	Headers    map[string]string
}

// Scheme returns the scheme implied by the request's stated protocol.
func (r Request) Scheme() string {
	if r.Protocol == ProtocolHTTP {
		return "http"
	}
	return "https"
}

// Header returns the named header, empty when absent. Lookup is
// case-sensitive; keys use the CGI-style form (e.g. HTTP_VIA).
func (r Request) Header(key string) string {
	return r.Headers[key]
}

func (r Request) Validate() error {
	if r.Host == "" {
		return &FieldError{Field: "request.host", Reason: "required"}
	}
	if r.Protocol != ProtocolHTTP && r.Protocol != ProtocolHTTPS {
		return &FieldError{
			Field:  "request.protocol",
			Reason: fmt.Sprintf("must be %q or %q, got %q", ProtocolHTTP, ProtocolHTTPS, r.Protocol),
		}
	}
	if r.Fullpath == "" {
		return &FieldError{Field: "request.fullpath", Reason: "required"}
	}
	if r.Headers == nil {
		return &FieldError{Field: "request.headers", Reason: "required"}
	}
	return nil
}
