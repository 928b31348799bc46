// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/intrusive/avl"
	"github.com/bitmark-inc/intrusive/avl/mocks"
	"github.com/bitmark-inc/intrusive/fault"
)

// an owner that can be in two trees at once
type process struct {
	pid      int
	name     string
	byPid    avl.Link[process]
	byName   avl.Link[process]
	disposed int
}

var (
	pidAccess = avl.Fields[int, process]{
		KeyOf:  func(p *process) int { return p.pid },
		LinkOf: func(p *process) *avl.Link[process] { return &p.byPid },
	}
	nameAccess = avl.Fields[string, process]{
		KeyOf:  func(p *process) string { return p.name },
		LinkOf: func(p *process) *avl.Link[process] { return &p.byName },
	}
)

func newPidTree(options avl.Options[int, process]) *avl.Tree[int, process] {
	return avl.NewOrdered[int, process](pidAccess, options)
}

func makeProcesses(pids []int) []*process {
	p := make([]*process, len(pids))
	for i, pid := range pids {
		p[i] = &process{pid: pid}
	}
	return p
}

func pidsOf(tree *avl.Tree[int, process]) []int {
	pids := make([]int, 0, tree.Count())
	for it := tree.Begin(); it != tree.End(); it = it.Next() {
		pids = append(pids, it.Owner().pid)
	}
	return pids
}

func TestFixedScenario(t *testing.T) {
	tree := newPidTree(avl.Options[int, process]{})
	for _, p := range makeProcesses([]int{2, 0, 1, 3, 9, 4, 20, 2001, 200, 120, 42}) {
		require.True(t, tree.Insert(p), "insert: %d", p.pid)
	}
	require.NoError(t, tree.Check(), "check after insert")

	assert.Equal(t, []int{0, 1, 2, 3, 4, 9, 20, 42, 120, 200, 2001}, pidsOf(tree), "traversal")
	assert.Equal(t, 11, tree.Count(), "count")
	assert.False(t, tree.IsEmpty(), "empty")
	assert.Equal(t, 0, tree.Front().pid, "front")
	assert.Equal(t, 2001, tree.Back().pid, "back")
	assert.Equal(t, 0, tree.Begin().Owner().pid, "begin")
	assert.Equal(t, 2001, tree.End().Prev().Owner().pid, "prev of end")

	// a different owner with a new key
	assert.True(t, tree.Insert(&process{pid: 114514}), "insert new key")
	assert.Equal(t, 12, tree.Count(), "count after new key")
	_, ok := tree.Delete(114514)
	assert.True(t, ok, "delete new key")

	_, ok = tree.Delete(2)
	assert.True(t, ok, "first delete of 2")
	assert.Equal(t, 10, tree.Count(), "count after delete")

	_, ok = tree.Delete(2)
	assert.False(t, ok, "second delete of 2")
	assert.Equal(t, 10, tree.Count(), "count after second delete")

	assert.False(t, tree.Remove(&process{pid: 114514}), "removed an absent owner")
	assert.Equal(t, 10, tree.Count(), "count after absent remove")
	require.NoError(t, tree.Check(), "check after delete")

	tree.Clear()
	assert.Equal(t, 0, tree.Count(), "count after clear")
	assert.Equal(t, tree.End(), tree.Begin(), "begin after clear")
}

func TestDuplicatesKeepFirst(t *testing.T) {
	tree := newPidTree(avl.Options[int, process]{})
	procs := makeProcesses([]int{2, 0, 1, 1, 2, 4, 7, 4})
	for i, p := range procs {
		p.name = string(rune('a' + i))
		tree.Insert(p)
	}
	require.NoError(t, tree.Check(), "check")

	assert.Equal(t, 5, tree.Count(), "distinct count")
	assert.Equal(t, []int{0, 1, 2, 4, 7}, pidsOf(tree), "traversal")

	expected := []bool{true, true, true, false, false, true, true, false}
	for i, p := range procs {
		assert.Equal(t, expected[i], tree.Contains(p), "membership of %d (%s)", p.pid, p.name)
	}

	found, _ := tree.Search(1)
	assert.Equal(t, "c", found.name, "first instance of 1 replaced")
	found, _ = tree.Search(2)
	assert.Equal(t, "a", found.name, "first instance of 2 replaced")
}

func TestTwoMemberships(t *testing.T) {
	byPid := newPidTree(avl.Options[int, process]{})
	byName := avl.NewOrdered[string, process](nameAccess, avl.Options[string, process]{})

	procs := []*process{
		{pid: 7, name: "init"},
		{pid: 3, name: "sshd"},
		{pid: 9, name: "cron"},
		{pid: 1, name: "xorg"},
		{pid: 5, name: "bash"},
	}
	for _, p := range procs {
		require.True(t, byPid.Insert(p), "pid insert %d", p.pid)
		require.True(t, byName.Insert(p), "name insert %s", p.name)
	}

	assert.Equal(t, []int{1, 3, 5, 7, 9}, pidsOf(byPid), "pid order")

	names := []string{}
	byName.Ascend(func(p *process) bool {
		names = append(names, p.name)
		return true
	})
	assert.Equal(t, []string{"bash", "cron", "init", "sshd", "xorg"}, names, "name order")

	// leaving one tree does not disturb the other
	require.True(t, byName.Remove(procs[1]), "name remove")
	assert.True(t, byPid.Contains(procs[1]), "pid membership lost")
	assert.False(t, byName.Contains(procs[1]), "name membership kept")
	assert.Equal(t, 5, byPid.Count(), "pid count")
	assert.Equal(t, 4, byName.Count(), "name count")

	// a link belongs to a single tree at a time
	other := newPidTree(avl.Options[int, process]{})
	assert.False(t, other.Insert(procs[0]), "linked into a second pid tree")
	assert.False(t, other.Remove(procs[0]), "removed from a tree it is not in")
	assert.Equal(t, 0, other.Count(), "second tree count")

	require.NoError(t, byPid.Check(), "pid check")
	require.NoError(t, byName.Check(), "name check")
}

func TestDisposeOrderOnClear(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	disposer := mocks.NewMockDisposer[process](ctl)
	tree := newPidTree(avl.Options[int, process]{Dispose: disposer})

	procs := makeProcesses([]int{4, 1, 5, 2, 3})
	for _, p := range procs {
		tree.Insert(p)
	}

	// highest key first
	gomock.InOrder(
		disposer.EXPECT().Dispose(procs[2]).Times(1),
		disposer.EXPECT().Dispose(procs[0]).Times(1),
		disposer.EXPECT().Dispose(procs[4]).Times(1),
		disposer.EXPECT().Dispose(procs[3]).Times(1),
		disposer.EXPECT().Dispose(procs[1]).Times(1),
	)

	tree.Clear()
	assert.True(t, tree.IsEmpty(), "tree not empty")
}

func TestDisposeOnlyOnRemoval(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	disposer := mocks.NewMockDisposer[process](ctl)
	tree := newPidTree(avl.Options[int, process]{Dispose: disposer})

	procs := makeProcesses([]int{10, 20, 30})
	for _, p := range procs {
		tree.Insert(p)
	}

	disposer.EXPECT().Dispose(procs[1]).Do(func(p *process) {
		// the tree is already consistent when the disposer runs
		assert.False(t, p.byPid.IsLinked(), "disposed owner still linked")
		assert.Equal(t, 2, tree.Count(), "count during dispose")
		assert.NoError(t, tree.Check(), "check during dispose")
	}).Times(1)

	assert.True(t, tree.Remove(procs[1]), "remove")
	assert.False(t, tree.Remove(procs[1]), "second remove")
	assert.False(t, tree.Remove(&process{pid: 40}), "absent remove")
	_, ok := tree.Delete(99)
	assert.False(t, ok, "absent delete")
}

func TestResetDisposer(t *testing.T) {
	tree := newPidTree(avl.Options[int, process]{Dispose: avl.Reset[process]()})

	p := &process{pid: 12, name: "victim", disposed: 3}
	tree.Insert(p)
	tree.Remove(p)

	assert.Equal(t, process{}, *p, "owner not reset")
	assert.Equal(t, 0, tree.Count(), "count")
}

func TestDisposeFunc(t *testing.T) {
	removed := []int{}
	tree := newPidTree(avl.Options[int, process]{
		Dispose: avl.DisposeFunc[process](func(p *process) {
			p.disposed += 1
			removed = append(removed, p.pid)
		}),
	})

	procs := makeProcesses([]int{1, 2, 3, 4, 5, 6})
	for _, p := range procs {
		tree.Insert(p)
	}
	tree.Remove(procs[2])
	tree.Clear()

	assert.Equal(t, []int{3, 6, 5, 4, 2, 1}, removed, "disposal order")
	for _, p := range procs {
		assert.Equal(t, 1, p.disposed, "disposed count of %d", p.pid)
	}
}

// a member whose key changed while linked cannot be found, so it must
// stay linked and must not be disposed
func TestRemoveWithChangedKey(t *testing.T) {
	disposed := 0
	tree := newPidTree(avl.Options[int, process]{
		Dispose: avl.DisposeFunc[process](func(p *process) {
			disposed += 1
		}),
	})
	procs := makeProcesses([]int{10, 20, 30, 40, 50, 60, 70})
	for _, p := range procs {
		require.True(t, tree.Insert(p), "insert: %d", p.pid)
	}

	// an unused key, then the key of another member
	for _, changed := range []int{999, 40} {
		procs[2].pid = changed
		assert.False(t, tree.Remove(procs[2]), "removed with key: %d", changed)
		assert.Equal(t, 7, tree.Count(), "count with key: %d", changed)
		assert.True(t, tree.Contains(procs[2]), "lost membership with key: %d", changed)
		assert.True(t, procs[2].byPid.IsLinked(), "link reset with key: %d", changed)
		assert.Equal(t, 0, disposed, "disposed with key: %d", changed)
	}
	assert.True(t, tree.Contains(procs[3]), "member with the same key removed")

	procs[2].pid = 30
	require.NoError(t, tree.Check(), "check after restoring key")
	assert.True(t, tree.Remove(procs[2]), "remove after restoring key")
	assert.Equal(t, 6, tree.Count(), "count after remove")
	assert.Equal(t, 1, disposed, "disposed after remove")
	require.NoError(t, tree.Check(), "check after remove")
}

// zeroing an owner still linked elsewhere corrupts the other tree,
// which Check must report without panicking
func TestCheckAfterResetInOtherTree(t *testing.T) {
	byPid := newPidTree(avl.Options[int, process]{Dispose: avl.Reset[process]()})
	byName := avl.NewOrdered[string, process](nameAccess, avl.Options[string, process]{})

	procs := []*process{
		{pid: 4, name: "d"},
		{pid: 2, name: "b"},
		{pid: 6, name: "f"},
		{pid: 1, name: "a"},
		{pid: 3, name: "c"},
	}
	for _, p := range procs {
		require.True(t, byPid.Insert(p), "pid insert: %d", p.pid)
		require.True(t, byName.Insert(p), "name insert: %s", p.name)
	}

	require.True(t, byPid.Remove(procs[4]), "pid remove")
	require.NoError(t, byPid.Check(), "pid check")

	var err error
	require.NotPanics(t, func() { err = byName.Check() }, "name check panicked")
	assert.ErrorIs(t, err, fault.ErrOwnerMismatch, "name check")
}

func TestRemoveWhileAscending(t *testing.T) {
	tree := newPidTree(avl.Options[int, process]{})
	for i := range 100 {
		tree.Insert(&process{pid: i})
	}

	visited := 0
	tree.Ascend(func(p *process) bool {
		visited += 1
		if 1 == p.pid%2 {
			tree.Remove(p)
		}
		return true
	})

	assert.Equal(t, 100, visited, "visited")
	assert.Equal(t, 50, tree.Count(), "count")
	require.NoError(t, tree.Check(), "check")
	for _, pid := range pidsOf(tree) {
		assert.Equal(t, 0, pid%2, "odd pid %d left", pid)
	}
}

func TestSeek(t *testing.T) {
	tree := newPidTree(avl.Options[int, process]{})
	for _, p := range makeProcesses([]int{10, 20, 30, 40}) {
		tree.Insert(p)
	}

	assert.Equal(t, 10, tree.Seek(5).Owner().pid, "seek below")
	assert.Equal(t, 20, tree.Seek(20).Owner().pid, "seek exact")
	assert.Equal(t, 30, tree.Seek(21).Owner().pid, "seek between")
	assert.True(t, tree.Seek(41).IsEnd(), "seek above")
	assert.True(t, tree.Find(25).IsEnd(), "find absent")
	assert.Equal(t, 30, tree.Find(30).Key(), "find present")

	n := 0
	tree.Descend(func(p *process) bool {
		n += 1
		return p.pid > 30
	})
	assert.Equal(t, 2, n, "descend stop")
}

func TestIteratorBoundaries(t *testing.T) {
	tree := newPidTree(avl.Options[int, process]{})
	for _, p := range makeProcesses([]int{3, 1, 2}) {
		tree.Insert(p)
	}

	end := tree.End()
	rend := tree.REnd()

	assert.True(t, end.IsEnd(), "end")
	assert.True(t, rend.IsREnd(), "rend")
	assert.False(t, end.Valid(), "end is valid")
	assert.Nil(t, end.Owner(), "end owner")
	assert.Nil(t, rend.Owner(), "rend owner")

	assert.Equal(t, end, end.Next(), "next of end")
	assert.Equal(t, rend, rend.Prev(), "prev of rend")
	assert.Equal(t, tree.RBegin(), end.Prev(), "prev of end")
	assert.Equal(t, tree.Begin(), rend.Next(), "next of rend")
	assert.Equal(t, rend, tree.Begin().Prev(), "prev of begin")
	assert.Equal(t, end, tree.RBegin().Next(), "next of rbegin")
	assert.Equal(t, 3, tree.RBegin().Owner().pid, "rbegin")
}
