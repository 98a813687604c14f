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

// Package trust defines the registry of trust settings a
// verification-parameter set can require from the anchor of a chain. The
// registry is populated at process start and immutable afterwards.
package trust

import (
	"github.com/veridyne/certkit/pkg/private/serrors"
)

// ID identifies a registered trust setting. The zero value is the "unset"
// sentinel and is not a registered setting.
type ID int

// Well-known trust settings.
const (
	Compat ID = iota + 1
	SSLClient
	SSLServer
	Email
	ObjectSign
	OCSPSign
	OCSPRequest
	TSA
)

// ErrNotFound indicates a trust id or name that is not registered.
var ErrNotFound = serrors.New("trust setting not found")

// Setting describes a registered trust setting.
type Setting struct {
	ID        ID
	Name      string
	ShortName string
}

var registry = []Setting{
	{Compat, "compatible", "compat"},
	{SSLClient, "SSL Client", "sslclient"},
	{SSLServer, "SSL Server", "sslserver"},
	{Email, "S/MIME email", "email"},
	{ObjectSign, "Object Signer", "objsign"},
	{OCSPSign, "OCSP responder", "ocspsign"},
	{OCSPRequest, "OCSP request", "ocsprequest"},
	{TSA, "TSA server", "tsa"},
}

func (id ID) String() string {
	s, err := Get(id)
	if err != nil {
		return "unknown"
	}
	return s.ShortName
}

// Get returns the trust setting registered under the given id.
func Get(id ID) (Setting, error) {
	for _, s := range registry {
		if s.ID == id {
			return s, nil
		}
	}
	return Setting{}, serrors.JoinNoStack(ErrNotFound, nil, "id", int(id))
}

// ByName returns the trust setting registered under the given short name.
func ByName(name string) (Setting, error) {
	for _, s := range registry {
		if s.ShortName == name {
			return s, nil
		}
	}
	return Setting{}, serrors.JoinNoStack(ErrNotFound, nil, "name", name)
}

// All returns the full registry in id order.
func All() []Setting {
	return append([]Setting(nil), registry...)
}
