package redirect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"signpost/internal/domain"
)

func TestSelectReason_PriorityChain(t *testing.T) {
	cfg := domain.Configs{AlwaysUseSSL: false, AppDomain: "example.com"}
	found := domain.Other{CommunitySearchStatus: domain.SearchFound}

	tests := []struct {
		name       string
		host       string
		community  *domain.Community
		other      domain.Other
		protoRedir bool
		want       domain.Reason
		wantMatch  bool
	}{
		{
			name:      "no tenants at all yields new_marketplace",
			host:      "unknown.example.com",
			other:     domain.Other{NoCommunities: true, CommunitySearchStatus: domain.SearchNotFound},
			want:      domain.ReasonNewMarketplace,
			wantMatch: true,
		},
		{
			name:      "unknown tenant yields not_found",
			host:      "unknown.example.com",
			other:     domain.Other{CommunitySearchStatus: domain.SearchNotFound},
			want:      domain.ReasonNotFound,
			wantMatch: true,
		},
		{
			name:      "deleted tenant",
			host:      "acme.example.com",
			community: &domain.Community{Ident: "acme", Deleted: true},
			other:     found,
			want:      domain.ReasonDeleted,
			wantMatch: true,
		},
		{
			name:      "deleted wins over closed",
			host:      "acme.example.com",
			community: &domain.Community{Ident: "acme", Deleted: true, Closed: true},
			other:     found,
			want:      domain.ReasonDeleted,
			wantMatch: true,
		},
		{
			name:      "closed tenant",
			host:      "acme.example.com",
			community: &domain.Community{Ident: "acme", Closed: true},
			other:     found,
			want:      domain.ReasonClosed,
			wantMatch: true,
		},
		{
			name:      "active custom domain not used",
			host:      "acme.example.com",
			community: &domain.Community{Ident: "acme", Domain: "custom.com", UseDomain: true},
			other:     found,
			want:      domain.ReasonDomain,
			wantMatch: true,
		},
		{
			name:      "active custom domain used",
			host:      "custom.com",
			community: &domain.Community{Ident: "acme", Domain: "custom.com", UseDomain: true},
			other:     found,
			wantMatch: false,
		},
		{
			name:      "inactive custom domain used anyway",
			host:      "custom.com",
			community: &domain.Community{Ident: "acme", Domain: "custom.com", UseDomain: false},
			other:     found,
			want:      domain.ReasonNoDomain,
			wantMatch: true,
		},
		{
			name:      "inactive custom domain not used",
			host:      "acme.example.com",
			community: &domain.Community{Ident: "acme", Domain: "custom.com", UseDomain: false},
			other:     found,
			wantMatch: false,
		},
		{
			name:      "www prefix on subdomain access",
			host:      "www.acme.example.com",
			community: &domain.Community{Ident: "acme"},
			other:     found,
			want:      domain.ReasonWWWIdent,
			wantMatch: true,
		},
		{
			name:       "protocol upgrade alone",
			host:       "acme.example.com",
			community:  &domain.Community{Ident: "acme"},
			other:      found,
			protoRedir: true,
			want:       domain.ReasonHTTPS,
			wantMatch:  true,
		},
		{
			name:      "nothing to do",
			host:      "acme.example.com",
			community: &domain.Community{Ident: "acme"},
			other:     found,
			wantMatch: false,
		},
		{
			name:       "search skipped still allows protocol upgrade",
			host:       "example.com",
			other:      domain.Other{CommunitySearchStatus: domain.SearchSkipped},
			protoRedir: true,
			want:       domain.ReasonHTTPS,
			wantMatch:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := domain.Request{
				Host:     tt.host,
				Protocol: domain.ProtocolHTTPS,
				Fullpath: "/somepath",
				Headers:  map[string]string{},
			}
			reason, ok := SelectReason(req, tt.community, cfg, tt.other, tt.protoRedir)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.want, reason)
			}
		})
	}
}

func TestSelectReason_NotFoundBeatsTenantRules(t *testing.T) {
	// A stale community record alongside a not_found search status must not
	// shadow the not_found rule.
	cfg := domain.Configs{AppDomain: "example.com"}
	req := domain.Request{Host: "x.example.com", Protocol: domain.ProtocolHTTPS, Fullpath: "/", Headers: map[string]string{}}
	community := &domain.Community{Ident: "x", Deleted: true}
	other := domain.Other{CommunitySearchStatus: domain.SearchNotFound}

	reason, ok := SelectReason(req, community, cfg, other, false)
	assert.True(t, ok)
	assert.Equal(t, domain.ReasonNotFound, reason)
}
