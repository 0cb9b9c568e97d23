package game

// World holds the tick counter and every component store. Component stores
// are sparse maps keyed by entity id; systems that need a stable order
// iterate Entities(), which is always ascending by id. Go maps randomize
// iteration, so the live slice is the one and only iteration order — this
// is what makes tie-breaks deterministic across instances.
type World struct {
	Tick       uint64
	nextEntity Entity

	entities  []Entity // live ids, ascending
	alive     map[Entity]bool
	toDestroy []Entity

	Position      map[Entity]*Position
	Velocity      map[Entity]*Velocity
	Health        map[Entity]*Health
	Collider      map[Entity]*Collider
	Weapon        map[Entity]*Weapon
	EnemyAI       map[Entity]*EnemyAI
	BulletPattern map[Entity]*BulletPattern
	PlayerTag     map[Entity]*PlayerTag
	DropTag       map[Entity]*DropTag
	BossTag       map[Entity]*BossTag
	Effect        map[Entity]*TransientEffect
}

// NewWorld returns an empty world at tick 0.
func NewWorld() *World {
	return &World{
		nextEntity:    1,
		alive:         make(map[Entity]bool),
		Position:      make(map[Entity]*Position),
		Velocity:      make(map[Entity]*Velocity),
		Health:        make(map[Entity]*Health),
		Collider:      make(map[Entity]*Collider),
		Weapon:        make(map[Entity]*Weapon),
		EnemyAI:       make(map[Entity]*EnemyAI),
		BulletPattern: make(map[Entity]*BulletPattern),
		PlayerTag:     make(map[Entity]*PlayerTag),
		DropTag:       make(map[Entity]*DropTag),
		BossTag:       make(map[Entity]*BossTag),
		Effect:        make(map[Entity]*TransientEffect),
	}
}

// Create allocates a fresh id and adds it to the live set.
func (w *World) Create() Entity {
	id := w.nextEntity
	w.nextEntity++
	w.alive[id] = true
	w.entities = append(w.entities, id)
	return id
}

// Destroy only enqueues; the entity stays fully visible to systems later in
// the same tick. Removal happens in Flush.
func (w *World) Destroy(e Entity) {
	w.toDestroy = append(w.toDestroy, e)
}

// Alive reports whether an entity is in the live set.
func (w *World) Alive(e Entity) bool {
	return w.alive[e]
}

// Entities returns the live ids in ascending order. Callers must not mutate
// the returned slice; Create during iteration appends, which is safe because
// new entities sort after the current position.
func (w *World) Entities() []Entity {
	return w.entities
}

// Flush removes every queued entity from the live set and from every
// component store, then clears the queue. It runs exactly once per tick,
// after all systems — the two-phase destroy is a correctness contract, not
// an optimization.
func (w *World) Flush() {
	if len(w.toDestroy) == 0 {
		return
	}
	dead := make(map[Entity]bool, len(w.toDestroy))
	for _, e := range w.toDestroy {
		if !w.alive[e] {
			continue
		}
		dead[e] = true
		delete(w.alive, e)
		delete(w.Position, e)
		delete(w.Velocity, e)
		delete(w.Health, e)
		delete(w.Collider, e)
		delete(w.Weapon, e)
		delete(w.EnemyAI, e)
		delete(w.BulletPattern, e)
		delete(w.PlayerTag, e)
		delete(w.DropTag, e)
		delete(w.BossTag, e)
		delete(w.Effect, e)
	}
	if len(dead) > 0 {
		live := w.entities[:0]
		for _, e := range w.entities {
			if !dead[e] {
				live = append(live, e)
			}
		}
		w.entities = live
	}
	w.toDestroy = w.toDestroy[:0]
}
