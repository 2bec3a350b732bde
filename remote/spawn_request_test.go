// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnRequestValidateAndSanitize(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := &SpawnRequest{
			Name:      " actor ",
			Kind:      " kind ",
			Singleton: true,
		}
		require.NoError(t, req.Validate())
		req.Sanitize()
		assert.Equal(t, "actor", req.Name)
		assert.Equal(t, "kind", req.Kind)
		// Singleton actors are always relocatable.
		assert.True(t, req.Relocatable)
	})

	t.Run("missing name", func(t *testing.T) {
		req := &SpawnRequest{Kind: "kind"}
		err := req.Validate()
		require.Error(t, err)
	})

	t.Run("missing kind", func(t *testing.T) {
		req := &SpawnRequest{Name: "actor"}
		err := req.Validate()
		require.Error(t, err)
	})

	t.Run("non-singleton relocatable flag is preserved", func(t *testing.T) {
		req := &SpawnRequest{
			Name:        "actor",
			Kind:        "kind",
			Relocatable: false,
		}
		req.Sanitize()
		assert.False(t, req.Relocatable)
	})
}
