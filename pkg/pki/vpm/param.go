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
	"encoding/asn1"
	"net"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/veridyne/certkit/pkg/pki/purpose"
	"github.com/veridyne/certkit/pkg/pki/trust"
)

// Flags is the bitset of verification behavior flags. During inheritance
// flags accumulate via union, they are never overwritten field-wise.
type Flags uint64

// Verification behavior flags.
const (
	// FlagUseCheckTime makes the chain validator use the explicitly
	// configured check time instead of the current time.
	FlagUseCheckTime Flags = 0x2
	// FlagCRLCheck enables CRL checking for the leaf certificate.
	FlagCRLCheck Flags = 0x4
	// FlagCRLCheckAll enables CRL checking for the whole chain.
	FlagCRLCheckAll Flags = 0x8
	// FlagIgnoreCritical ignores unhandled critical extensions.
	FlagIgnoreCritical Flags = 0x10
	// FlagX509Strict disables workarounds for broken certificates.
	FlagX509Strict Flags = 0x20
	// FlagAllowProxyCerts allows proxy certificates.
	FlagAllowProxyCerts Flags = 0x40
	// FlagPolicyCheck enables certificate-policy evaluation.
	FlagPolicyCheck Flags = 0x80
	// FlagExplicitPolicy requires an explicit policy on every chain.
	FlagExplicitPolicy Flags = 0x100
	// FlagInhibitAny inhibits the anyPolicy identifier.
	FlagInhibitAny Flags = 0x200
	// FlagInhibitMap inhibits policy mapping.
	FlagInhibitMap Flags = 0x400
	// FlagNotifyPolicy notifies the verification callback on policy decisions.
	FlagNotifyPolicy Flags = 0x800
	// FlagExtendedCRLSupport enables extended CRL features.
	FlagExtendedCRLSupport Flags = 0x1000
	// FlagUseDeltas enables delta CRLs.
	FlagUseDeltas Flags = 0x2000
	// FlagCheckSSSignature verifies the root CA self signature.
	FlagCheckSSSignature Flags = 0x4000
	// FlagTrustedFirst prefers trusted certificates when building the chain.
	FlagTrustedFirst Flags = 0x8000
	// FlagPartialChain accepts chains anchored in a non-root trusted
	// certificate.
	FlagPartialChain Flags = 0x80000
	// FlagNoAltChains disables alternative chain exploration.
	FlagNoAltChains Flags = 0x100000
	// FlagNoCheckTime disables validity-period checking entirely.
	FlagNoCheckTime Flags = 0x200000
)

// FlagsPolicyMask covers the flags that require policy evaluation. Setting
// any of them through SetFlags implies FlagPolicyCheck.
const FlagsPolicyMask = FlagPolicyCheck | FlagExplicitPolicy | FlagInhibitAny | FlagInhibitMap

// InheritFlags controls how a VerifyParam behaves as a source or destination
// of Inherit.
type InheritFlags uint32

// Inheritance behavior flags.
const (
	// InheritDefault makes the source act as a fallback template: a set
	// source field wins even over a set destination field.
	InheritDefault InheritFlags = 0x1
	// InheritOverwrite copies every field regardless of which side is set.
	InheritOverwrite InheritFlags = 0x2
	// InheritResetFlags zeroes the destination verification flags before
	// the union with the source flags.
	InheritResetFlags InheritFlags = 0x4
	// InheritLocked blocks all field copies.
	InheritLocked InheritFlags = 0x8
	// InheritOnce clears the destination inheritance flags after the next
	// Inherit call, whatever its outcome.
	InheritOnce InheritFlags = 0x10
)

// HostFlags controls the semantics of hostname matching. It is meaningful
// only together with a non-empty hostname list.
type HostFlags uint32

// Hostname matching flags.
const (
	// HostAlwaysCheckSubject checks the subject CN even in the presence of
	// a subject alternative name extension.
	HostAlwaysCheckSubject HostFlags = 0x1
	// HostNoWildcards disables wildcard matching.
	HostNoWildcards HostFlags = 0x2
	// HostNoPartialWildcards disables partial-label wildcards such as x*.
	HostNoPartialWildcards HostFlags = 0x4
	// HostMultiLabelWildcards allows a wildcard to span multiple labels.
	HostMultiLabelWildcards HostFlags = 0x8
	// HostSingleLabelSubdomains restricts subdomain matches to one label.
	HostSingleLabelSubdomains HostFlags = 0x10
	// HostNeverCheckSubject never checks the subject CN.
	HostNeverCheckSubject HostFlags = 0x20
)

// VerifyParam is the mutable configuration record that governs how a
// certificate chain is checked later. A VerifyParam is exclusively owned by
// its creator: it carries no internal synchronization, and Inherit always
// deep-copies, so no two instances ever alias collection state.
type VerifyParam struct {
	checkTime    time.Time
	inheritFlags InheritFlags
	flags        Flags
	purpose      purpose.ID
	trust        trust.ID
	depth        int
	policies     []asn1.ObjectIdentifier
	hosts        []string
	hostFlags    HostFlags
	email        string
	ip           []byte
	poisoned     bool
}

// New creates an empty VerifyParam. The depth is the unbounded sentinel -1,
// every other field is unset.
func New() *VerifyParam {
	return &VerifyParam{depth: -1}
}

// SetFlags ORs the given flags into the verification flags. If any flag of
// FlagsPolicyMask is among them, FlagPolicyCheck is forced on as well.
func (p *VerifyParam) SetFlags(flags Flags) {
	p.flags |= flags
	if flags&FlagsPolicyMask != 0 {
		p.flags |= FlagPolicyCheck
	}
}

// ClearFlags removes the given flags from the verification flags.
func (p *VerifyParam) ClearFlags(flags Flags) {
	p.flags &^= flags
}

// Flags returns the verification flags.
func (p *VerifyParam) Flags() Flags {
	return p.flags
}

// SetInheritFlags replaces the inheritance flags.
func (p *VerifyParam) SetInheritFlags(flags InheritFlags) {
	p.inheritFlags = flags
}

// InheritFlags returns the inheritance flags.
func (p *VerifyParam) InheritFlags() InheritFlags {
	return p.inheritFlags
}

// SetPurpose requires the given certificate purpose. The id must be
// registered, purpose.ErrNotFound is returned otherwise.
func (p *VerifyParam) SetPurpose(id purpose.ID) error {
	if _, err := purpose.Get(id); err != nil {
		return err
	}
	p.purpose = id
	return nil
}

// Purpose returns the required certificate purpose, 0 if unset.
func (p *VerifyParam) Purpose() purpose.ID {
	return p.purpose
}

// SetTrust requires the given trust setting. The id must be registered,
// trust.ErrNotFound is returned otherwise.
func (p *VerifyParam) SetTrust(id trust.ID) error {
	if _, err := trust.Get(id); err != nil {
		return err
	}
	p.trust = id
	return nil
}

// Trust returns the required trust setting, 0 if unset.
func (p *VerifyParam) Trust() trust.ID {
	return p.trust
}

// SetDepth sets the maximum chain length. Any value is accepted, -1 means
// unbounded.
func (p *VerifyParam) SetDepth(depth int) {
	p.depth = depth
}

// Depth returns the maximum chain length, -1 if unbounded.
func (p *VerifyParam) Depth() int {
	return p.depth
}

// SetTime fixes the verification time and sets FlagUseCheckTime.
func (p *VerifyParam) SetTime(t time.Time) {
	p.checkTime = t
	p.flags |= FlagUseCheckTime
}

// CheckTime returns the fixed verification time. The second return value is
// false unless FlagUseCheckTime is set.
func (p *VerifyParam) CheckTime() (time.Time, bool) {
	if p.flags&FlagUseCheckTime == 0 {
		return time.Time{}, false
	}
	return p.checkTime, true
}

// SetPolicies replaces the set of required certificate policies with a deep
// copy of the given object identifiers and sets FlagPolicyCheck. A nil slice
// clears the set without touching the flags.
func (p *VerifyParam) SetPolicies(policies []asn1.ObjectIdentifier) {
	if policies == nil {
		p.policies = nil
		return
	}
	p.policies = copyOIDs(policies)
	p.flags |= FlagPolicyCheck
}

// AddPolicy appends a deep copy of the given object identifier to the set of
// required certificate policies. Unlike SetPolicies it does not touch
// FlagPolicyCheck.
func (p *VerifyParam) AddPolicy(policy asn1.ObjectIdentifier) {
	p.policies = append(p.policies, copyOID(policy))
}

// Policies returns a deep copy of the required certificate policies, nil if
// unset.
func (p *VerifyParam) Policies() []asn1.ObjectIdentifier {
	if p.policies == nil {
		return nil
	}
	return copyOIDs(p.policies)
}

// Hostnames returns a copy of the acceptable hostname patterns in insertion
// order, nil if unset.
func (p *VerifyParam) Hostnames() []string {
	if p.hosts == nil {
		return nil
	}
	return append([]string(nil), p.hosts...)
}

// HostFlags returns the hostname matching flags.
func (p *VerifyParam) HostFlags() HostFlags {
	return p.hostFlags
}

// Email returns the email constraint, "" if unset.
func (p *VerifyParam) Email() string {
	return p.email
}

// IP returns a copy of the IP constraint, nil if unset. The length is 4 or
// 16.
func (p *VerifyParam) IP() net.IP {
	if p.ip == nil {
		return nil
	}
	return append(net.IP(nil), p.ip...)
}

// Poisoned reports whether a malformed identity-constraint mutation was
// attempted on this VerifyParam or on any VerifyParam it inherited from. A
// chain validator must treat a poisoned parameter set as failing
// verification instead of trusting any of the identity fields.
func (p *VerifyParam) Poisoned() bool {
	return p.poisoned
}

// MarshalLogObject implements zapcore.ObjectMarshaler to have a nicer log
// representation.
func (p *VerifyParam) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("flags", uint64(p.flags))
	enc.AddInt("depth", p.depth)
	if p.purpose != 0 {
		enc.AddString("purpose", p.purpose.String())
	}
	if p.trust != 0 {
		enc.AddString("trust", p.trust.String())
	}
	if t, ok := p.CheckTime(); ok {
		enc.AddTime("check_time", t)
	}
	if len(p.hosts) != 0 {
		if err := enc.AddArray("hosts", hostList(p.hosts)); err != nil {
			return err
		}
		enc.AddUint32("host_flags", uint32(p.hostFlags))
	}
	if p.email != "" {
		enc.AddString("email", p.email)
	}
	if p.ip != nil {
		enc.AddString("ip", net.IP(p.ip).String())
	}
	enc.AddBool("poisoned", p.poisoned)
	return nil
}

type hostList []string

func (h hostList) MarshalLogArray(ae zapcore.ArrayEncoder) error {
	for _, name := range h {
		ae.AppendString(name)
	}
	return nil
}

func copyOID(oid asn1.ObjectIdentifier) asn1.ObjectIdentifier {
	return append(asn1.ObjectIdentifier(nil), oid...)
}

func copyOIDs(oids []asn1.ObjectIdentifier) []asn1.ObjectIdentifier {
	dup := make([]asn1.ObjectIdentifier, 0, len(oids))
	for _, oid := range oids {
		dup = append(dup, copyOID(oid))
	}
	return dup
}
