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

// Inherit propagates settings from src into p under the policy selected by
// the union of both sides' inheritance flags.
//
// Without any flags a field is copied only when it is set in src and unset
// in p: an explicitly configured destination is never clobbered by an unset
// source. With InheritDefault the source acts as a fallback template whose
// set fields always win. With InheritOverwrite every field is copied
// unconditionally. Verification flags are the exception: they accumulate via
// union in every mode and are only ever removed by InheritResetFlags.
// InheritLocked blocks all field copies, InheritOnce consumes the
// destination's inheritance flags after the call, whatever its outcome.
//
// The scalar fields are compared against their unset sentinels (purpose 0,
// trust 0, depth -1). The collection fields are deep-copied on every copy,
// p never aliases state owned by src. Copying the hostname list also copies
// the host flags; any other outcome leaves both untouched. Email and IP
// copies go through SetEmail and SetIP and keep their validation and
// poisoning behavior; in particular, an InheritOverwrite from a source
// without an IP constraint fails and poisons p, because an absent IP is not
// a clearable value.
//
// If src is poisoned, p becomes poisoned. Poison never clears.
//
// On failure p is left partially updated: fields copied before the failing
// step remain copied. This weak failure atomicity is part of the contract.
func (p *VerifyParam) Inherit(src *VerifyParam) error {
	if src == nil {
		return nil
	}
	combined := p.inheritFlags | src.inheritFlags

	if combined&InheritOnce != 0 {
		p.inheritFlags = 0
	}
	if combined&InheritLocked != 0 {
		return nil
	}
	toDefault := combined&InheritDefault != 0
	toOverwrite := combined&InheritOverwrite != 0

	// copyField reports whether a field must be copied from src, given whether
	// each side differs from the field's unset sentinel.
	copyField := func(srcSet, destSet bool) bool {
		return toOverwrite || (srcSet && (toDefault || !destSet))
	}

	if copyField(src.purpose != 0, p.purpose != 0) {
		p.purpose = src.purpose
	}
	if copyField(src.trust != 0, p.trust != 0) {
		p.trust = src.trust
	}
	if copyField(src.depth != -1, p.depth != -1) {
		p.depth = src.depth
	}

	// The use-check-time bit is cleared here and only restored through the
	// flags union below. A source with a bare check time and no enabling
	// bit leaves the destination with a copied time value and no bit.
	if toOverwrite || p.flags&FlagUseCheckTime == 0 {
		p.checkTime = src.checkTime
		p.flags &^= FlagUseCheckTime
	}

	if combined&InheritResetFlags != 0 {
		p.flags = 0
	}
	p.flags |= src.flags

	if copyField(src.policies != nil, p.policies != nil) {
		p.SetPolicies(src.policies)
	}

	if copyField(src.hosts != nil, p.hosts != nil) {
		p.hosts = nil
		if src.hosts != nil {
			p.hosts = append([]string(nil), src.hosts...)
			p.hostFlags = src.hostFlags
		}
	}

	if copyField(src.email != "", p.email != "") {
		if err := p.SetEmail(src.email); err != nil {
			return err
		}
	}

	if copyField(src.ip != nil, p.ip != nil) {
		if err := p.SetIP(src.ip); err != nil {
			return err
		}
	}

	if src.poisoned {
		p.poisoned = true
	}
	return nil
}

// Assign copies every set field of from into p by running Inherit with
// InheritDefault forced on for the duration of the call. The inheritance
// flags of p are restored afterwards regardless of the outcome. This is how
// a preset template is copied into a fresh, independently mutable parameter
// set.
func (p *VerifyParam) Assign(from *VerifyParam) error {
	saved := p.inheritFlags
	p.inheritFlags |= InheritDefault
	err := p.Inherit(from)
	p.inheritFlags = saved
	return err
}
