package server

import "httpfront/request"

// applyForwardedHeaders overrides the request's Host/Protocol/Origin
// and metadata-derived origin IP with trusted proxy headers, if the
// server was configured to trust any (spec.md §6; DESIGN.md OQ-2 keeps
// this purely opt-in configuration rather than a hardcoded header
// name — nothing is trusted unless SetForwarded*Header was called).
func (s *Server) applyForwardedHeaders(req *request.Request) {
	s.mu.Lock()
	hostHeader := s.forwardedHostHeader
	protoHeader := s.forwardedProtoHeader
	forHeader := s.forwardedForHeader
	s.mu.Unlock()

	changed := false

	if hostHeader != "" {
		if v := req.Headers.Get(hostHeader); v != "" {
			req.Host = v
			changed = true
		}
	}
	if protoHeader != "" {
		if v := req.Headers.Get(protoHeader); v != "" {
			req.Protocol = v
			changed = true
		}
	}
	if changed {
		req.Origin = req.Protocol + "://" + req.Host
	}

	if forHeader != "" && req.Metadata != nil {
		if v := req.Headers.Get(forHeader); v != "" {
			req.Metadata.OriginIP = v
		}
	}
}
