package domain

// RouteName identifies a destination resolved to a concrete path by the
// routing layer, used instead of a literal URL.
type RouteName string

const (
	RouteNewCommunity      RouteName = "new_community"
	RouteCommunityNotFound RouteName = "community_not_found"
)

// Path is a static redirect destination: a literal URL or a named route.
// Exactly one of the two is set.
type Path struct {
	URL       string
	RouteName RouteName
}

func (p Path) validate(field string) error {
	if p.URL == "" && p.RouteName == "" {
		return &FieldError{Field: field, Reason: "either url or route_name is required"}
	}
	if p.URL != "" && p.RouteName != "" {
		return &FieldError{Field: field, Reason: "url and route_name are mutually exclusive"}
	}
	return nil
}

// Paths is the static configuration of fallback destinations.
type Paths struct {
	CommunityNotFound Path
	NewCommunity      Path
}

func (p Paths) Validate() error {
	if err := p.CommunityNotFound.validate("paths.community_not_found"); err != nil {
		return err
	}
	return p.NewCommunity.validate("paths.new_community")
}

// Configs carries the platform-wide settings the engine depends on.
type Configs struct {
	AlwaysUseSSL bool
	AppDomain    string // shared base domain for subdomain-style tenant access
}

func (c Configs) Validate() error {
	if c.AppDomain == "" {
		return &FieldError{Field: "configs.app_domain", Reason: "required"}
	}
	return nil
}

// Other carries the tenant-search state for the current request.
type Other struct {
	NoCommunities         bool // platform has zero tenants at all
	CommunitySearchStatus SearchStatus
}

func (o Other) Validate() error {
	if !o.CommunitySearchStatus.Valid() {
		return &FieldError{
			Field:  "other.community_search_status",
			Reason: "must be one of found, not_found, skipped",
		}
	}
	return nil
}

// Target is the finished redirect decision. Exactly one of URL and
// RouteName is populated; Status and Reason are always set. Protocol is
// only populated for targets taken verbatim from a configured path.
type Target struct {
	Reason    Reason
	URL       string
	Protocol  string
	RouteName RouteName
	Status    int
}
