package server

import (
	"net"
	"net/http"

	"signpost/internal/community"
	"signpost/internal/domain"
)

// requestSnapshot builds the engine's read-only request record from an
// inbound HTTP request. The scheme comes from the TLS state unless a
// terminating proxy set X-Forwarded-Proto.
func requestSnapshot(r *http.Request) domain.Request {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}

	host := r.Host
	portString := ""
	if h, p, err := net.SplitHostPort(r.Host); err == nil {
		host = h
		portString = ":" + p
	}

	headers := map[string]string{}
	if via := r.Header.Get("Via"); via != "" {
		headers["HTTP_VIA"] = via
	}

	return domain.Request{
		Host:       community.NormalizeHost(host),
		Protocol:   scheme + "://",
		Fullpath:   r.URL.RequestURI(),
		PortString: portString,
		Headers:    headers,
	}
}
