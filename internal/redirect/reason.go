package redirect

import "signpost/internal/domain"

// SelectReason runs the redirect rule chain for one request. Rules form a
// strict priority order; the first match wins and later rules are never
// evaluated. The second return value is false when no redirect applies.
func SelectReason(req domain.Request, community *domain.Community, cfg domain.Configs, other domain.Other, protocolNeedsRedirect bool) (domain.Reason, bool) {
	if other.CommunitySearchStatus == domain.SearchNotFound {
		if other.NoCommunities {
			return domain.ReasonNewMarketplace, true
		}
		return domain.ReasonNotFound, true
	}

	if community != nil {
		switch {
		case community.Deleted:
			return domain.ReasonDeleted, true
		case community.Closed:
			return domain.ReasonClosed, true
		case community.Domain != "" && community.UseDomain && req.Host != community.Domain:
			return domain.ReasonDomain, true
		case community.Domain != "" && !community.UseDomain && req.Host == community.Domain:
			return domain.ReasonNoDomain, true
		case req.Host == "www."+community.Ident+"."+cfg.AppDomain:
			return domain.ReasonWWWIdent, true
		}
	}

	if protocolNeedsRedirect {
		return domain.ReasonHTTPS, true
	}
	return "", false
}
