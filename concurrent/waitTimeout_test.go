// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestWaitTimeout(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)
		go wg.Done()

		assert.True(t, WaitTimeout(&wg, time.Second))
	})

	t.Run("Timeout", func(t *testing.T) {
		var (
			wg      sync.WaitGroup
			release = make(chan struct{})
		)

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-release
		}()

		assert.False(t, WaitTimeout(&wg, 10*time.Millisecond))
		close(release)
		assert.True(t, WaitTimeout(&wg, time.Second))
	})
}

func TestWaitErrorTimeout(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var g errgroup.Group
		g.Go(func() error { return nil })

		ok, err := WaitErrorTimeout(&g, time.Second)
		assert.True(t, ok)
		assert.NoError(t, err)
	})

	t.Run("Error", func(t *testing.T) {
		var (
			g        errgroup.Group
			expected = errors.New("expected")
		)

		g.Go(func() error { return expected })

		ok, err := WaitErrorTimeout(&g, time.Second)
		assert.True(t, ok)
		assert.Equal(t, expected, err)
	})

	t.Run("Timeout", func(t *testing.T) {
		var (
			g       errgroup.Group
			release = make(chan struct{})
		)

		g.Go(func() error {
			<-release
			return nil
		})

		ok, err := WaitErrorTimeout(&g, 10*time.Millisecond)
		assert.False(t, ok)
		assert.NoError(t, err)
		close(release)
	})
}
