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

package purpose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridyne/certkit/pkg/pki/purpose"
)

func TestGet(t *testing.T) {
	p, err := purpose.Get(purpose.SSLServer)
	require.NoError(t, err)
	assert.Equal(t, "sslserver", p.ShortName)
	assert.Equal(t, "SSL server", p.Name)

	_, err = purpose.Get(purpose.ID(0))
	assert.ErrorIs(t, err, purpose.ErrNotFound)
	_, err = purpose.Get(purpose.ID(42))
	assert.ErrorIs(t, err, purpose.ErrNotFound)
}

func TestByName(t *testing.T) {
	p, err := purpose.ByName("timestampsign")
	require.NoError(t, err)
	assert.Equal(t, purpose.TimestampSign, p.ID)

	_, err = purpose.ByName("SSL server")
	assert.ErrorIs(t, err, purpose.ErrNotFound)
}

func TestAll(t *testing.T) {
	all := purpose.All()
	require.Len(t, all, 9)
	for i, p := range all {
		assert.Equal(t, purpose.ID(i+1), p.ID)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "smimesign", purpose.SMIMESign.String())
	assert.Equal(t, "unknown", purpose.ID(99).String())
}
