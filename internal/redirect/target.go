package redirect

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"signpost/internal/domain"
)

// Tracking campaigns attached to fallback-page redirects, one per cause.
const (
	campaignNotFound = "na-auto-redirect"
	campaignDeleted  = "dl-auto-redirect"
	campaignClosed   = "qc-auto-redirect"
)

// BuildTarget constructs the concrete redirect target for a reason. A
// reason outside the closed enumeration is a programming error and yields
// domain.ErrUnknownReason; the selector is exhaustive, so this cannot be
// reached through the orchestrator.
func BuildTarget(reason domain.Reason, req domain.Request, community *domain.Community, paths domain.Paths, cfg domain.Configs, protocol string, protocolNeedsRedirect bool) (domain.Target, error) {
	var t domain.Target
	switch reason {
	case domain.ReasonNewMarketplace:
		t = targetFromPath(paths.NewCommunity, http.StatusFound)
		t.Protocol = protocol
	case domain.ReasonNotFound:
		t = fallbackTarget(paths.CommunityNotFound, req.Host, campaignNotFound, http.StatusFound)
	case domain.ReasonDeleted:
		t = fallbackTarget(paths.CommunityNotFound, req.Host, campaignDeleted, http.StatusMovedPermanently)
	case domain.ReasonClosed:
		t = fallbackTarget(paths.CommunityNotFound, req.Host, campaignClosed, http.StatusMovedPermanently)
	case domain.ReasonDomain:
		t = domain.Target{
			URL:    protocol + "://" + community.Domain + req.PortString + req.Fullpath,
			Status: http.StatusMovedPermanently,
		}
	case domain.ReasonNoDomain, domain.ReasonWWWIdent:
		t = domain.Target{
			URL:    protocol + "://" + community.Ident + "." + cfg.AppDomain + req.PortString + req.Fullpath,
			Status: http.StatusMovedPermanently,
		}
	case domain.ReasonHTTPS:
		t = domain.Target{
			URL:    protocol + "://" + req.Host + req.PortString + req.Fullpath,
			Status: http.StatusMovedPermanently,
		}
	default:
		return domain.Target{}, fmt.Errorf("%w: %q", domain.ErrUnknownReason, reason)
	}

	t.Reason = reason
	if protocolNeedsRedirect {
		// A protocol upgrade is always permanent, whatever status the
		// reason carries on its own. Decoration is unaffected.
		t.Status = http.StatusMovedPermanently
	}
	return t, nil
}

func targetFromPath(p domain.Path, status int) domain.Target {
	return domain.Target{URL: p.URL, RouteName: p.RouteName, Status: status}
}

// fallbackTarget sends not_found/deleted/closed traffic to the configured
// fallback destination. Literal URLs are decorated with tracking
// parameters; named routes are passed through undecorated.
func fallbackTarget(p domain.Path, host, campaign string, status int) domain.Target {
	if p.URL == "" {
		return targetFromPath(p, status)
	}
	return domain.Target{URL: decorateURL(p.URL, host, campaign), Status: status}
}

// decorateURL appends utm_source, utm_medium and utm_campaign in that
// order. The parameter order is part of the produced URL, so the query is
// assembled by hand instead of url.Values, which sorts keys.
func decorateURL(base, host, campaign string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	var b strings.Builder
	b.WriteString(base)
	b.WriteString(sep)
	b.WriteString("utm_source=")
	b.WriteString(url.QueryEscape(host))
	b.WriteString("&utm_medium=redirect")
	b.WriteString("&utm_campaign=")
	b.WriteString(url.QueryEscape(campaign))
	return b.String()
}
