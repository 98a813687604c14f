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

// Package vpm holds the verification parameters that configure how a
// certificate chain is checked: the acceptable usage purpose, the required
// trust setting, the maximum chain depth, an optional fixed verification
// time, required certificate policies, and the identity constraints
// (hostnames, email address, IP address) a subject must match.
//
// A VerifyParam is typically obtained by copying a named preset via Assign
// and then adjusted through the accessors. Two parameter sets can be merged
// with Inherit, which propagates settings from a source into a destination
// under the policy selected by the inheritance flags.
//
// Rejected identity-constraint mutations poison the parameter set. The
// poison flag is sticky: it never clears, and it propagates into every
// destination the set is later inherited into. Chain validators must check
// it before trusting any identity field.
//
// All operations are synchronous, bounded, local computations. A VerifyParam
// is single-writer: callers that share one across goroutines must serialize
// access externally. The presets are immutable and safe for concurrent
// lookup.
package vpm
