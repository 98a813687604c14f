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
	"github.com/veridyne/certkit/pkg/pki/purpose"
	"github.com/veridyne/certkit/pkg/pki/trust"
	"github.com/veridyne/certkit/pkg/private/serrors"
)

// ErrUnknownPreset indicates a preset name that is not registered.
var ErrUnknownPreset = serrors.New("unknown preset")

// The preset templates. They carry no identity or policy data and are never
// mutated after process start.
var (
	defaultPreset = &VerifyParam{
		flags: FlagTrustedFirst,
		depth: 100,
	}
	smimeSignPreset = &VerifyParam{
		purpose: purpose.SMIMESign,
		trust:   trust.Email,
		depth:   -1,
	}
	sslClientPreset = &VerifyParam{
		purpose: purpose.SSLClient,
		trust:   trust.SSLClient,
		depth:   -1,
	}
	sslServerPreset = &VerifyParam{
		purpose: purpose.SSLServer,
		trust:   trust.SSLServer,
		depth:   -1,
	}
)

// Lookup returns the immutable preset template registered under the given
// name. Callers must not mutate the returned VerifyParam; copy it into an
// own instance with Assign first.
func Lookup(name string) (*VerifyParam, error) {
	switch name {
	case "default":
		return defaultPreset, nil
	case "pkcs7", "smime_sign":
		// PKCS#7 and S/MIME signing use the same defaults.
		return smimeSignPreset, nil
	case "ssl_client":
		return sslClientPreset, nil
	case "ssl_server":
		return sslServerPreset, nil
	}
	return nil, serrors.JoinNoStack(ErrUnknownPreset, nil, "name", name)
}
