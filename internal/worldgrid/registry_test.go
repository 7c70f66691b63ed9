package worldgrid

import "testing"

// Testable property 1 (spec.md §8): grid-registry bijection — every
// occupied grid cell points to a Thing whose Pos matches, and that Thing
// is reachable from Things.
func TestAddPlacesOnGridAndRegistry(t *testing.T) {
	m := NewMap(16, 16, 4)
	tree := &Thing{Kind: KindTree, Pos: Pos{X: 3, Y: 3}, ResourceCount: 5}
	m.Add(tree)

	if got := m.Blocking(tree.Pos); got != tree {
		t.Fatalf("Blocking(%v) = %v, want %v", tree.Pos, got, tree)
	}
	if m.Things[tree.ID] != tree {
		t.Fatalf("Things[%d] = %v, want %v", tree.ID, m.Things[tree.ID], tree)
	}

	door := &Thing{Kind: KindDoor, Pos: Pos{X: 4, Y: 4}}
	m.Add(door)
	if got := m.Overlay(door.Pos); got != door {
		t.Fatalf("Overlay(%v) = %v, want %v", door.Pos, got, door)
	}
	if got := m.Blocking(door.Pos); got != nil {
		t.Fatalf("Blocking(%v) = %v, want nil (Door is overlay-only)", door.Pos, got)
	}
}

func TestRemoveClearsGridAndTombstones(t *testing.T) {
	m := NewMap(16, 16, 4)
	tree := &Thing{Kind: KindTree, Pos: Pos{X: 3, Y: 3}}
	m.Add(tree)
	id := tree.ID

	m.Remove(tree)

	if got := m.Blocking(tree.Pos); got != nil {
		t.Fatalf("Blocking(%v) after Remove = %v, want nil", tree.Pos, got)
	}
	if m.Things[id] != nil {
		t.Fatalf("Things[%d] after Remove = %v, want nil (tombstoned)", id, m.Things[id])
	}

	// Removing an already-removed Thing is a documented no-op.
	m.Remove(tree)
}

// IDs must stay stable across the life of an entity and be recycled (not
// reassigned to a live entity) only after the original is removed — the
// arena/free-list design DESIGN.md documents.
func TestIDRecycledAfterRemove(t *testing.T) {
	m := NewMap(16, 16, 4)
	a := &Thing{Kind: KindTree, Pos: Pos{X: 1, Y: 1}}
	b := &Thing{Kind: KindTree, Pos: Pos{X: 2, Y: 2}}
	m.Add(a)
	m.Add(b)

	m.Remove(a)
	idBeforeRecycle := a.ID

	c := &Thing{Kind: KindTree, Pos: Pos{X: 5, Y: 5}}
	m.Add(c)

	if c.ID != idBeforeRecycle {
		t.Fatalf("expected recycled ID %d for new entity, got %d", idBeforeRecycle, c.ID)
	}
	if m.Things[b.ID] != b {
		t.Fatalf("unrelated entity b's registry slot was disturbed by recycling a's ID")
	}
}

// Swap-remove from ThingsByKind must repair the swapped-in entity's stored
// kindListIndex, or a later Remove on it would corrupt an unrelated slot.
func TestRemoveRepairsSwappedKindListIndex(t *testing.T) {
	m := NewMap(16, 16, 4)
	first := &Thing{Kind: KindTree, Pos: Pos{X: 1, Y: 1}}
	second := &Thing{Kind: KindTree, Pos: Pos{X: 2, Y: 2}}
	third := &Thing{Kind: KindTree, Pos: Pos{X: 3, Y: 3}}
	m.Add(first)
	m.Add(second)
	m.Add(third)

	m.Remove(first) // swaps third into first's old slot

	list := m.ThingsByKind[KindTree]
	if len(list) != 2 {
		t.Fatalf("len(ThingsByKind[KindTree]) = %d, want 2", len(list))
	}

	// Now remove third via its (possibly updated) kindListIndex and confirm
	// second survives untouched.
	m.Remove(third)
	list = m.ThingsByKind[KindTree]
	if len(list) != 1 || list[0] != second {
		t.Fatalf("after removing first and third, ThingsByKind[KindTree] = %v, want [second]", list)
	}
	if m.Blocking(second.Pos) != second {
		t.Fatalf("second was disturbed by an unrelated swap-remove")
	}
}

func TestMoveBlockingRelocatesGridCell(t *testing.T) {
	m := NewMap(16, 16, 4)
	agent := &Thing{Kind: KindAgent, Pos: Pos{X: 1, Y: 1}, AgentID: 0}
	m.Add(agent)

	old := agent.Pos
	agent.Pos = Pos{X: 2, Y: 1}
	m.MoveBlocking(agent, old)

	if m.Blocking(old) != nil {
		t.Fatalf("Blocking(old pos) = %v, want nil", m.Blocking(old))
	}
	if m.Blocking(agent.Pos) != agent {
		t.Fatalf("Blocking(new pos) = %v, want agent", m.Blocking(agent.Pos))
	}
}
