package redirect

import (
	"strings"

	"signpost/internal/domain"
)

const (
	viaHeader = "HTTP_VIA"

	// proxyMarker flags traffic that already passed through the internal
	// termination proxy; upgrading it again would double-redirect.
	proxyMarker = "sharetribe_proxy"

	// robotsPath is exempt from the SSL upgrade so crawler access never
	// breaks on marketplaces without certificates.
	robotsPath = "/robots.txt"
)

// ResolveProtocol decides the scheme the response should use: https when
// the upgrade policy applies, otherwise whatever the request arrived with.
func ResolveProtocol(req domain.Request, cfg domain.Configs) string {
	if shouldUseHTTPS(req, cfg) {
		return "https"
	}
	return req.Scheme()
}

func shouldUseHTTPS(req domain.Request, cfg domain.Configs) bool {
	if !cfg.AlwaysUseSSL {
		return false
	}
	if strings.Contains(req.Header(viaHeader), proxyMarker) {
		return false
	}
	return req.Fullpath != robotsPath
}
