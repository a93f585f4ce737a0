package domain

// Reason identifies why a request must be redirected. The set is closed:
// the target builder rejects anything outside it.
type Reason string

const (
	// ReasonNewMarketplace routes traffic to marketplace creation when the
	// platform has no tenants at all.
	ReasonNewMarketplace Reason = "new_marketplace"
	// ReasonNotFound routes traffic for an unknown tenant to the fallback page.
	ReasonNotFound Reason = "not_found"
	// ReasonDeleted routes traffic for a deleted tenant to the fallback page.
	ReasonDeleted Reason = "deleted"
	// ReasonClosed routes traffic for a closed tenant to the fallback page.
	ReasonClosed Reason = "closed"
	// ReasonDomain forces traffic onto a tenant's activated custom domain.
	ReasonDomain Reason = "domain"
	// ReasonNoDomain bounces traffic off a configured but inactive custom
	// domain back to the subdomain.
	ReasonNoDomain Reason = "no_domain"
	// ReasonWWWIdent strips a www. prefix from subdomain access.
	ReasonWWWIdent Reason = "www_ident"
	// ReasonHTTPS upgrades the protocol with no other cause present.
	ReasonHTTPS Reason = "https"
)

func (r Reason) Valid() bool {
	switch r {
	case ReasonNewMarketplace, ReasonNotFound, ReasonDeleted, ReasonClosed,
		ReasonDomain, ReasonNoDomain, ReasonWWWIdent, ReasonHTTPS:
		return true
	}
	return false
}

// SearchStatus is the outcome of the tenant lookup for a request host.
type SearchStatus string

const (
	SearchFound    SearchStatus = "found"
	SearchNotFound SearchStatus = "not_found"
	// SearchSkipped means no tenant lookup applied to the host, e.g. the
	// platform's own site.
	SearchSkipped SearchStatus = "skipped"
)

func (s SearchStatus) Valid() bool {
	switch s {
	case SearchFound, SearchNotFound, SearchSkipped:
		return true
	}
	return false
}
