package domain_test

import (
	"testing"

	"signpost/internal/domain"
)

// TestReasonValues guards against accidental value changes that would
// silently break redirect attribution in downstream analytics.
func TestReasonValues(t *testing.T) {
	tests := []struct {
		reason   domain.Reason
		expected string
	}{
		{domain.ReasonNewMarketplace, "new_marketplace"},
		{domain.ReasonNotFound, "not_found"},
		{domain.ReasonDeleted, "deleted"},
		{domain.ReasonClosed, "closed"},
		{domain.ReasonDomain, "domain"},
		{domain.ReasonNoDomain, "no_domain"},
		{domain.ReasonWWWIdent, "www_ident"},
		{domain.ReasonHTTPS, "https"},
	}
	for _, tt := range tests {
		if string(tt.reason) != tt.expected {
			t.Errorf("reason value changed: got %q, want %q", tt.reason, tt.expected)
		}
		if !tt.reason.Valid() {
			t.Errorf("reason %q must be valid", tt.reason)
		}
	}
}

func TestReasonValid_RejectsUnknown(t *testing.T) {
	if domain.Reason("teleport").Valid() {
		t.Error("unknown reason must not be valid")
	}
	if domain.Reason("").Valid() {
		t.Error("empty reason must not be valid")
	}
}

func TestSearchStatusValues(t *testing.T) {
	tests := []struct {
		status   domain.SearchStatus
		expected string
	}{
		{domain.SearchFound, "found"},
		{domain.SearchNotFound, "not_found"},
		{domain.SearchSkipped, "skipped"},
	}
	for _, tt := range tests {
		if string(tt.status) != tt.expected {
			t.Errorf("status value changed: got %q, want %q", tt.status, tt.expected)
		}
		if !tt.status.Valid() {
			t.Errorf("status %q must be valid", tt.status)
		}
	}
	if domain.SearchStatus("pending").Valid() {
		t.Error("unknown status must not be valid")
	}
}
