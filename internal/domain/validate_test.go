package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signpost/internal/domain"
)

func validRequest() domain.Request {
	return domain.Request{
		Host:     "acme.example.com",
		Protocol: domain.ProtocolHTTPS,
		Fullpath: "/",
		Headers:  map[string]string{},
	}
}

func TestRequestValidate(t *testing.T) {
	require.NoError(t, validRequest().Validate())

	tests := []struct {
		name      string
		mutate    func(*domain.Request)
		wantField string
	}{
		{"missing host", func(r *domain.Request) { r.Host = "" }, "request.host"},
		{"missing protocol", func(r *domain.Request) { r.Protocol = "" }, "request.protocol"},
		{"bare scheme protocol", func(r *domain.Request) { r.Protocol = "https" }, "request.protocol"},
		{"missing fullpath", func(r *domain.Request) { r.Fullpath = "" }, "request.fullpath"},
		{"nil headers", func(r *domain.Request) { r.Headers = nil }, "request.headers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			var fieldErr *domain.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.wantField, fieldErr.Field)
		})
	}
}

func TestRequestScheme(t *testing.T) {
	req := validRequest()
	assert.Equal(t, "https", req.Scheme())
	req.Protocol = domain.ProtocolHTTP
	assert.Equal(t, "http", req.Scheme())
}

func TestCommunityValidate(t *testing.T) {
	require.NoError(t, domain.Community{Ident: "acme"}.Validate())

	err := domain.Community{}.Validate()
	require.Error(t, err)
	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "community.ident", fieldErr.Field)
}

func TestPathsValidate(t *testing.T) {
	valid := domain.Paths{
		CommunityNotFound: domain.Path{URL: "https://x.com/missing"},
		NewCommunity:      domain.Path{RouteName: domain.RouteNewCommunity},
	}
	require.NoError(t, valid.Validate())

	empty := valid
	empty.NewCommunity = domain.Path{}
	err := empty.Validate()
	require.Error(t, err)
	var fieldErr *domain.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "paths.new_community", fieldErr.Field)

	both := valid
	both.CommunityNotFound = domain.Path{URL: "https://x.com", RouteName: domain.RouteCommunityNotFound}
	err = both.Validate()
	require.Error(t, err)
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "paths.community_not_found", fieldErr.Field)
}

func TestConfigsValidate(t *testing.T) {
	require.NoError(t, domain.Configs{AppDomain: "example.com"}.Validate())
	require.Error(t, domain.Configs{}.Validate())
}

func TestOtherValidate(t *testing.T) {
	require.NoError(t, domain.Other{CommunitySearchStatus: domain.SearchSkipped}.Validate())
	require.Error(t, domain.Other{}.Validate())
	require.Error(t, domain.Other{CommunitySearchStatus: "maybe"}.Validate())
}
