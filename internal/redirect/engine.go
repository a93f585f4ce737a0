// Package redirect decides whether an inbound marketplace request must be
// redirected, and if so where and with which status. The whole package is a
// pure function of its inputs: no I/O, no shared state, safe for concurrent
// use without coordination.
package redirect

import "signpost/internal/domain"

// NeedsRedirect is the single public entry point. It validates the inputs,
// resolves the response protocol, selects a redirect reason and, when one
// applies, hands the finished target to onRedirect. The continuation is
// invoked at most once; when no rule matches, it is not invoked at all and
// the call has no effect.
func NeedsRedirect(req domain.Request, community *domain.Community, paths domain.Paths, cfg domain.Configs, other domain.Other, onRedirect func(domain.Target)) error {
	if err := validateInputs(req, community, paths, cfg, other); err != nil {
		return err
	}

	protocol := ResolveProtocol(req, cfg)
	protocolNeedsRedirect := protocol != req.Scheme()

	reason, ok := SelectReason(req, community, cfg, other, protocolNeedsRedirect)
	if !ok {
		return nil
	}

	target, err := BuildTarget(reason, req, community, paths, cfg, protocol, protocolNeedsRedirect)
	if err != nil {
		return err
	}

	onRedirect(target)
	return nil
}

func validateInputs(req domain.Request, community *domain.Community, paths domain.Paths, cfg domain.Configs, other domain.Other) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if community != nil {
		if err := community.Validate(); err != nil {
			return err
		}
	}
	if err := paths.Validate(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return other.Validate()
}
