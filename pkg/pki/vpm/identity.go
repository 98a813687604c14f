// Copyright 2025 Veridyne Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vpm

import (
	"net/netip"
	"strings"

	"github.com/veridyne/certkit/pkg/private/serrors"
)

var (
	// ErrEmbeddedNUL indicates a hostname or email constraint with an
	// embedded NUL byte.
	ErrEmbeddedNUL = serrors.New("embedded NUL byte")
	// ErrIPLength indicates an IP constraint that is not exactly 4 or 16
	// bytes long.
	ErrIPLength = serrors.New("invalid IP length")
)

// SetHost replaces the hostname constraints with the single given pattern.
// An empty name clears the list and succeeds. A name with an embedded NUL
// byte is rejected, poisons the parameter set, and leaves the previous list
// in place.
func (p *VerifyParam) SetHost(name string) error {
	return p.setHosts(true, name)
}

// AddHost appends the given pattern to the hostname constraints. An empty
// name is a successful no-op. A name with an embedded NUL byte is rejected
// and poisons the parameter set.
func (p *VerifyParam) AddHost(name string) error {
	return p.setHosts(false, name)
}

func (p *VerifyParam) setHosts(replace bool, name string) error {
	if strings.IndexByte(name, 0) >= 0 {
		p.taint("host")
		return serrors.JoinNoStack(ErrEmbeddedNUL, nil, "constraint", "host")
	}
	if replace {
		p.hosts = nil
	}
	if name == "" {
		return nil
	}
	p.hosts = append(p.hosts, name)
	return nil
}

// SetHostFlags replaces the hostname matching flags. The flags are stored
// independently of the hostname list.
func (p *VerifyParam) SetHostFlags(flags HostFlags) {
	p.hostFlags = flags
}

// SetEmail replaces the email constraint. An empty string clears the
// constraint and succeeds. An address with an embedded NUL byte is rejected,
// poisons the parameter set, and leaves the previous constraint in place.
func (p *VerifyParam) SetEmail(email string) error {
	if strings.IndexByte(email, 0) >= 0 {
		p.taint("email")
		return serrors.JoinNoStack(ErrEmbeddedNUL, nil, "constraint", "email")
	}
	p.email = email
	return nil
}

// SetIP replaces the IP constraint with a copy of the given raw address. The
// address must be exactly 4 or 16 bytes. Anything else, including an empty
// slice, is rejected, poisons the parameter set, and leaves the previous
// constraint in place. Unlike SetHost and SetEmail there is no way to clear
// an IP constraint.
func (p *VerifyParam) SetIP(ip []byte) error {
	if len(ip) != 4 && len(ip) != 16 {
		p.taint("ip")
		return serrors.JoinNoStack(ErrIPLength, nil, "len", len(ip))
	}
	p.ip = append([]byte(nil), ip...)
	return nil
}

// SetIPText parses the given textual IP address and stores it via SetIP. A
// malformed address yields a plain failure without poisoning: no identity
// bytes were ever presented to the constraint manager.
func (p *VerifyParam) SetIPText(text string) error {
	addr, err := netip.ParseAddr(text)
	if err != nil {
		return serrors.WrapNoStack("parsing IP address", err, "addr", text)
	}
	return p.SetIP(addr.AsSlice())
}

// taint performs the one-way clean to poisoned transition.
func (p *VerifyParam) taint(constraint string) {
	p.poisoned = true
	constraintErrorsTotal.WithLabelValues(constraint).Inc()
}
