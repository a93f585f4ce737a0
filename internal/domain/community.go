package domain

// Community is a single marketplace tenant hosted by the platform. It is
// reachable as <ident>.<app domain> and, once a custom domain is configured
// and activated, as that domain. A nil *Community means no matching tenant.
type Community struct {
	Ident     string // unique subdomain label under the app domain
	Domain    string // custom domain, empty when none is configured
	UseDomain bool   // custom domain is activated for serving traffic
	Deleted   bool
	Closed    bool
}

func (c Community) Validate() error {
	if c.Ident == "" {
		return &FieldError{Field: "community.ident", Reason: "required"}
	}
	return nil
}
