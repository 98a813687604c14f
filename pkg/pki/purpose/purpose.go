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

// Package purpose defines the registry of certificate usage purposes a
// verification-parameter set can require. The registry is populated at
// process start and immutable afterwards, so unsynchronized concurrent
// lookups are safe.
package purpose

import (
	"github.com/veridyne/certkit/pkg/private/serrors"
)

// ID identifies a registered certificate purpose. The zero value is the
// "unset" sentinel and is not a registered purpose.
type ID int

// Well-known certificate purposes.
const (
	SSLClient ID = iota + 1
	SSLServer
	NSSSLServer
	SMIMESign
	SMIMEEncrypt
	CRLSign
	Any
	OCSPHelper
	TimestampSign
)

// ErrNotFound indicates a purpose id or name that is not registered.
var ErrNotFound = serrors.New("purpose not found")

// Purpose describes a registered certificate purpose.
type Purpose struct {
	ID        ID
	Name      string
	ShortName string
}

var registry = []Purpose{
	{SSLClient, "SSL client", "sslclient"},
	{SSLServer, "SSL server", "sslserver"},
	{NSSSLServer, "Netscape SSL server", "nssslserver"},
	{SMIMESign, "S/MIME signing", "smimesign"},
	{SMIMEEncrypt, "S/MIME encryption", "smimeencrypt"},
	{CRLSign, "CRL signing", "crlsign"},
	{Any, "Any Purpose", "any"},
	{OCSPHelper, "OCSP helper", "ocsphelper"},
	{TimestampSign, "Time Stamp signing", "timestampsign"},
}

func (id ID) String() string {
	p, err := Get(id)
	if err != nil {
		return "unknown"
	}
	return p.ShortName
}

// Get returns the purpose registered under the given id.
func Get(id ID) (Purpose, error) {
	for _, p := range registry {
		if p.ID == id {
			return p, nil
		}
	}
	return Purpose{}, serrors.JoinNoStack(ErrNotFound, nil, "id", int(id))
}

// ByName returns the purpose registered under the given short name.
func ByName(name string) (Purpose, error) {
	for _, p := range registry {
		if p.ShortName == name {
			return p, nil
		}
	}
	return Purpose{}, serrors.JoinNoStack(ErrNotFound, nil, "name", name)
}

// All returns the full registry in id order.
func All() []Purpose {
	return append([]Purpose(nil), registry...)
}
