// SPDX-License-Identifier: MPL-2.0

package environment

import "context"

// hostOnly runs without a host framework. There is no second process, so
// the bridge operations inherited from base do nothing.
type hostOnly struct {
	*base
}

func newHostOnly(cfg *settings) *hostOnly {
	return &hostOnly{base: newBase(RoleHostOnly, cfg, nil, true)}
}

// OpenURL starts the system opener and waits for it.
func (s *hostOnly) OpenURL(url string, onError func(error)) {
	if err := s.cfg.opener(context.Background(), url); err != nil {
		s.reportOpenFailure(url, err, onError)
	}
}
