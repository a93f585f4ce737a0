package community

import (
	"context"
	"errors"
	"strings"

	"signpost/internal/domain"
)

// Resolver maps a request host to a community and a search status.
type Resolver struct {
	store     *Store
	appDomain string
}

func NewResolver(store *Store, appDomain string) *Resolver {
	return &Resolver{store: store, appDomain: strings.ToLower(appDomain)}
}

// Resolve looks the host up. The platform's own site (the bare app domain
// or its www form) is skipped; subdomain hosts resolve by ident, everything
// else by custom domain. A miss is not an error: it yields a nil community
// and the not_found status.
func (r *Resolver) Resolve(ctx context.Context, host string) (*domain.Community, domain.SearchStatus, error) {
	host = NormalizeHost(host)

	if host == r.appDomain || host == "www."+r.appDomain {
		return nil, domain.SearchSkipped, nil
	}

	if suffix := "." + r.appDomain; strings.HasSuffix(host, suffix) {
		ident := strings.TrimPrefix(strings.TrimSuffix(host, suffix), "www.")
		if strings.Contains(ident, ".") {
			// Deeper nesting than <ident>.<app domain> is not a tenant.
			return nil, domain.SearchNotFound, nil
		}
		return r.lookup(func() (*domain.Community, error) { return r.store.GetByIdent(ctx, ident) })
	}

	return r.lookup(func() (*domain.Community, error) { return r.store.GetByDomain(ctx, host) })
}

func (r *Resolver) lookup(get func() (*domain.Community, error)) (*domain.Community, domain.SearchStatus, error) {
	c, err := get()
	if errors.Is(err, domain.ErrCommunityNotFound) {
		return nil, domain.SearchNotFound, nil
	}
	if err != nil {
		return nil, domain.SearchNotFound, err
	}
	return c, domain.SearchFound, nil
}

// NormalizeHost lowercases the host and strips a trailing dot and any port.
func NormalizeHost(host string) string {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if hostParts := strings.Split(host, ":"); len(hostParts) > 1 {
		host = hostParts[0]
	}
	return host
}
