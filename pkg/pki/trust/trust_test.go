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

package trust_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridyne/certkit/pkg/pki/trust"
)

func TestGet(t *testing.T) {
	s, err := trust.Get(trust.Email)
	require.NoError(t, err)
	assert.Equal(t, "email", s.ShortName)
	assert.Equal(t, "S/MIME email", s.Name)

	_, err = trust.Get(trust.ID(0))
	assert.ErrorIs(t, err, trust.ErrNotFound)
	_, err = trust.Get(trust.ID(-1))
	assert.ErrorIs(t, err, trust.ErrNotFound)
}

func TestByName(t *testing.T) {
	s, err := trust.ByName("ocspsign")
	require.NoError(t, err)
	assert.Equal(t, trust.OCSPSign, s.ID)

	_, err = trust.ByName("bogus")
	assert.ErrorIs(t, err, trust.ErrNotFound)
}

func TestAll(t *testing.T) {
	all := trust.All()
	require.Len(t, all, 8)
	for i, s := range all {
		assert.Equal(t, trust.ID(i+1), s.ID)
	}
}
