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

package vpm_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridyne/certkit/pkg/pki/vpm"
)

func TestSetHost(t *testing.T) {
	t.Run("set replaces the list", func(t *testing.T) {
		p := vpm.New()
		require.NoError(t, p.SetHost("a.example.com"))
		require.NoError(t, p.AddHost("b.example.com"))
		assert.Equal(t, []string{"a.example.com", "b.example.com"}, p.Hostnames())

		require.NoError(t, p.SetHost("c.example.com"))
		assert.Equal(t, []string{"c.example.com"}, p.Hostnames())
	})
	t.Run("empty set clears", func(t *testing.T) {
		p := vpm.New()
		require.NoError(t, p.SetHost("a.example.com"))
		require.NoError(t, p.SetHost(""))
		assert.Nil(t, p.Hostnames())
		assert.False(t, p.Poisoned())
	})
	t.Run("empty add is a no-op", func(t *testing.T) {
		p := vpm.New()
		require.NoError(t, p.SetHost("a.example.com"))
		require.NoError(t, p.AddHost(""))
		assert.Equal(t, []string{"a.example.com"}, p.Hostnames())
		assert.False(t, p.Poisoned())
	})
	t.Run("embedded NUL poisons", func(t *testing.T) {
		p := vpm.New()
		require.NoError(t, p.SetHost("a.example.com"))

		err := p.AddHost("a\x00b")
		assert.ErrorIs(t, err, vpm.ErrEmbeddedNUL)
		assert.True(t, p.Poisoned())
		assert.Equal(t, []string{"a.example.com"}, p.Hostnames())
	})
	t.Run("failing set keeps the previous list", func(t *testing.T) {
		p := vpm.New()
		require.NoError(t, p.SetHost("a.example.com"))

		err := p.SetHost("bad\x00name")
		assert.ErrorIs(t, err, vpm.ErrEmbeddedNUL)
		assert.Equal(t, []string{"a.example.com"}, p.Hostnames())
	})
	t.Run("duplicates and order preserved", func(t *testing.T) {
		p := vpm.New()
		require.NoError(t, p.AddHost("x.example.com"))
		require.NoError(t, p.AddHost("x.example.com"))
		assert.Equal(t, []string{"x.example.com", "x.example.com"}, p.Hostnames())
	})
}

func TestSetHostFlags(t *testing.T) {
	// Host flags are stored independently of the host list.
	p := vpm.New()
	p.SetHostFlags(vpm.HostNoWildcards | vpm.HostNeverCheckSubject)
	assert.Equal(t, vpm.HostNoWildcards|vpm.HostNeverCheckSubject, p.HostFlags())
	assert.Nil(t, p.Hostnames())
}

func TestSetEmail(t *testing.T) {
	t.Run("set and replace", func(t *testing.T) {
		p := vpm.New()
		require.NoError(t, p.SetEmail("first@example.com"))
		require.NoError(t, p.SetEmail("second@example.com"))
		assert.Equal(t, "second@example.com", p.Email())
	})
	t.Run("empty clears", func(t *testing.T) {
		p := vpm.New()
		require.NoError(t, p.SetEmail("first@example.com"))
		require.NoError(t, p.SetEmail(""))
		assert.Empty(t, p.Email())
		assert.False(t, p.Poisoned())
	})
	t.Run("embedded NUL poisons and keeps previous value", func(t *testing.T) {
		p := vpm.New()
		require.NoError(t, p.SetEmail("first@example.com"))

		err := p.SetEmail("evil\x00@example.com")
		assert.ErrorIs(t, err, vpm.ErrEmbeddedNUL)
		assert.True(t, p.Poisoned())
		assert.Equal(t, "first@example.com", p.Email())
	})
}

func TestSetIP(t *testing.T) {
	t.Run("v4", func(t *testing.T) {
		p := vpm.New()
		require.NoError(t, p.SetIP([]byte{192, 0, 2, 1}))
		assert.Equal(t, net.IP{192, 0, 2, 1}, p.IP())
	})
	t.Run("v6", func(t *testing.T) {
		p := vpm.New()
		raw := net.ParseIP("2001:db8::1").To16()
		require.NoError(t, p.SetIP(raw))
		assert.Equal(t, net.IP(raw), p.IP())
	})
	t.Run("wrong length poisons and keeps previous value", func(t *testing.T) {
		p := vpm.New()
		require.NoError(t, p.SetIP([]byte{10, 0, 0, 1}))

		err := p.SetIP([]byte{1, 2, 3})
		assert.ErrorIs(t, err, vpm.ErrIPLength)
		assert.True(t, p.Poisoned())
		assert.Equal(t, net.IP{10, 0, 0, 1}, p.IP())
	})
	t.Run("empty input does not clear", func(t *testing.T) {
		// Asymmetric with hosts and email on purpose.
		p := vpm.New()
		require.NoError(t, p.SetIP([]byte{10, 0, 0, 1}))

		assert.ErrorIs(t, p.SetIP(nil), vpm.ErrIPLength)
		assert.ErrorIs(t, p.SetIP([]byte{}), vpm.ErrIPLength)
		assert.True(t, p.Poisoned())
		assert.Equal(t, net.IP{10, 0, 0, 1}, p.IP())
	})
	t.Run("owned state does not alias", func(t *testing.T) {
		raw := []byte{192, 0, 2, 1}
		p := vpm.New()
		require.NoError(t, p.SetIP(raw))
		raw[0] = 99
		assert.Equal(t, net.IP{192, 0, 2, 1}, p.IP())

		out := p.IP()
		out[0] = 77
		assert.Equal(t, net.IP{192, 0, 2, 1}, p.IP())
	})
}

func TestSetIPText(t *testing.T) {
	t.Run("v4", func(t *testing.T) {
		p := vpm.New()
		require.NoError(t, p.SetIPText("192.0.2.1"))
		assert.Equal(t, net.IP{192, 0, 2, 1}, p.IP())
	})
	t.Run("v6", func(t *testing.T) {
		p := vpm.New()
		require.NoError(t, p.SetIPText("2001:db8::1"))
		assert.Len(t, p.IP(), 16)
	})
	t.Run("malformed text fails without poisoning", func(t *testing.T) {
		p := vpm.New()
		require.NoError(t, p.SetIPText("192.0.2.1"))

		assert.Error(t, p.SetIPText("not-an-address"))
		assert.False(t, p.Poisoned())
		assert.Equal(t, net.IP{192, 0, 2, 1}, p.IP())
	})
}

func TestPoisonIsSticky(t *testing.T) {
	p := vpm.New()
	assert.Error(t, p.SetIP([]byte{1, 2, 3}))
	require.True(t, p.Poisoned())

	// Successful mutations do not clean a poisoned parameter set.
	require.NoError(t, p.SetHost("a.example.com"))
	require.NoError(t, p.SetEmail("ok@example.com"))
	require.NoError(t, p.SetIP([]byte{10, 0, 0, 1}))
	assert.True(t, p.Poisoned())
}
