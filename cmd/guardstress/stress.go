// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/go-kit/log"
	"github.com/xmidt-org/lockguard/lockguard"
	"github.com/xmidt-org/lockguard/logging"
	"github.com/xmidt-org/lockguard/rwlock"
	"github.com/xmidt-org/lockguard/semaphore"
	"golang.org/x/sync/errgroup"
)

var (
	errWriterOverlap = errors.New("a writer observed another writer or reader holding the lock")
	errSlotOverflow  = errors.New("more slots were in use than the semaphore allows")
	errLockNotIdle   = errors.New("the reader-writer lock was still held after the run")
	errSlotsNotIdle  = errors.New("semaphore slots were still held after the run")
	errLostWrites    = errors.New("the guarded counter does not match the number of writes")
	errFutureRead    = errors.New("a reader observed a counter value that was never written")
)

// Results summarizes a stress run
type Results struct {
	Reads        int64
	Writes       int64
	Upgrades     int64
	Slots        int64
	SlotTimeouts int64
	Counter      int64
}

// stress is a single run of a Workload against one reader-writer lock and one semaphore
type stress struct {
	workload Workload
	guard    *lockguard.Guard
	lock     *rwlock.RWLock
	slots    semaphore.Interface

	// counter is the state guarded by lock.  writing is a sanity check on exclusivity.
	counter int64
	writing atomic.Int32
	inUse   atomic.Int32

	maxSeen atomic.Int64

	reads, writes, upgrades, acquiredSlots, slotTimeouts atomic.Int64
}

// observe records the largest counter value any reader has seen
func (s *stress) observe(v int64) {
	for {
		current := s.maxSeen.Load()
		if v <= current || s.maxSeen.CompareAndSwap(current, v) {
			return
		}
	}
}

// releaseTwice releases a handle, then releases it again to exercise idempotency.
func releaseTwice(h *lockguard.Handle) error {
	err := h.Release()
	if second := h.Release(); second != nil && err == nil {
		err = second
	}

	return err
}

func (s *stress) read() error {
	h, err := s.guard.EnterReadLock(s.lock)
	if err != nil {
		return err
	}

	if s.writing.Load() != 0 {
		err = errWriterOverlap
	}

	s.observe(s.counter)
	s.reads.Add(1)
	return errors.Join(err, releaseTwice(h))
}

func (s *stress) increment() error {
	if !s.writing.CompareAndSwap(0, 1) {
		return errWriterOverlap
	}

	defer s.writing.Store(0)
	if s.lock.CurrentReadCount() > 0 {
		return errWriterOverlap
	}

	s.counter++
	return nil
}

func (s *stress) write() error {
	h, err := s.guard.EnterWriteLock(s.lock)
	if err != nil {
		return err
	}

	err = s.increment()
	if err == nil {
		s.writes.Add(1)
	}

	return errors.Join(err, releaseTwice(h))
}

func (s *stress) upgrade() error {
	return s.guard.WithUpgradeableReadLock(s.lock, func() error {
		if err := s.lock.UpgradeToWriteLock(); err != nil {
			return err
		}

		err := s.increment()
		if err == nil {
			s.upgrades.Add(1)
		}

		return errors.Join(err, s.lock.ExitWriteLock())
	})
}

func (s *stress) slot(ctx context.Context) error {
	h, err := s.guard.WaitTimeoutCtx(ctx, s.slots, s.workload.SlotTimeout)
	switch {
	case errors.Is(err, semaphore.ErrTimeout):
		s.slotTimeouts.Add(1)
		return nil

	case err != nil:
		return err
	}

	if n := s.inUse.Add(1); int(n) > s.workload.Capacity {
		err = errSlotOverflow
	}

	s.inUse.Add(-1)
	s.acquiredSlots.Add(1)
	return errors.Join(err, releaseTwice(h))
}

// worker runs op until the iterations are exhausted or the context is done.  Cancellation
// of the run is not an error.
func worker(ctx context.Context, iterations int, op func(context.Context) error) error {
	for i := 0; i < iterations; i++ {
		if ctx.Err() != nil {
			return nil
		}

		if err := op(ctx); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}

			logging.Error(logging.GetLogger(ctx)).Log(logging.MessageKey(), "worker failed", "iteration", i, logging.ErrorKey(), err)
			return err
		}
	}

	return nil
}

func ignoreContext(f func() error) func(context.Context) error {
	return func(context.Context) error {
		return f()
	}
}

// start launches every worker in the group.  Each worker's context carries a logger
// identifying it.
func (s *stress) start(ctx context.Context, g *errgroup.Group, logger log.Logger) {
	spawn := func(kind string, count int, op func(context.Context) error) {
		for i := 0; i < count; i++ {
			workerCtx := logging.WithLogger(ctx, log.With(logger, "worker", fmt.Sprintf("%s-%d", kind, i)))
			g.Go(func() error {
				return worker(workerCtx, s.workload.Iterations, op)
			})
		}
	}

	spawn("reader", s.workload.Readers, ignoreContext(s.read))
	spawn("writer", s.workload.Writers, ignoreContext(s.write))
	spawn("upgrader", s.workload.Upgraders, ignoreContext(s.upgrade))
	spawn("slot", s.workload.Slots, s.slot)
}

// verify checks that both primitives are idle and that no write was lost.
func (s *stress) verify() (Results, error) {
	r := Results{
		Reads:        s.reads.Load(),
		Writes:       s.writes.Load(),
		Upgrades:     s.upgrades.Load(),
		Slots:        s.acquiredSlots.Load(),
		SlotTimeouts: s.slotTimeouts.Load(),
		Counter:      s.counter,
	}

	var errs []error
	if s.lock.IsReadLockHeld() || s.lock.IsWriteLockHeld() || s.lock.IsUpgradeableReadLockHeld() {
		errs = append(errs, errLockNotIdle)
	} else if err := s.lock.Close(); err != nil {
		errs = append(errs, fmt.Errorf("unable to close the lock: %w", err))
	}

	if s.slots.Available() != s.slots.Max() {
		errs = append(errs, fmt.Errorf("%w: %d of %d available", errSlotsNotIdle, s.slots.Available(), s.slots.Max()))
	}

	if s.maxSeen.Load() > r.Counter {
		errs = append(errs, errFutureRead)
	}

	if r.Counter != r.Writes+r.Upgrades {
		errs = append(errs, fmt.Errorf("%w: counter=%d, writes=%d, upgrades=%d", errLostWrites, r.Counter, r.Writes, r.Upgrades))
	}

	return r, errors.Join(errs...)
}
