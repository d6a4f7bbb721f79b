package keel

type entityStatus uint8

const (
	statusLive entityStatus = iota
	statusPending
)

type entityRecord struct {
	name   string
	status entityStatus
}

// entityTable owns entity identity: allocation, names, liveness status and
// the queue of pending removals. IDs start at 1 and only ever count up.
type entityTable struct {
	nextID     EntityID
	records    map[EntityID]*entityRecord
	pending    []EntityID
	pendingSet map[EntityID]struct{}
}

func newEntityTable() *entityTable {
	return &entityTable{
		nextID:     1,
		records:    make(map[EntityID]*entityRecord),
		pendingSet: make(map[EntityID]struct{}),
	}
}

func (t *entityTable) allocate() EntityID {
	id := t.nextID
	t.nextID++
	t.records[id] = &entityRecord{}
	return id
}

func (t *entityTable) exists(id EntityID) bool {
	_, ok := t.records[id]
	return ok
}

func (t *entityTable) record(id EntityID) (*entityRecord, bool) {
	rec, ok := t.records[id]
	return rec, ok
}

// markPending queues id for removal at the next sweep, reporting whether it
// was newly queued. Queueing twice is a no-op.
func (t *entityTable) markPending(id EntityID) bool {
	if _, queued := t.pendingSet[id]; queued {
		return false
	}
	t.records[id].status = statusPending
	t.pendingSet[id] = struct{}{}
	t.pending = append(t.pending, id)
	return true
}

// drainPending hands back the queued ids in queue order and resets the queue.
func (t *entityTable) drainPending() []EntityID {
	if len(t.pending) == 0 {
		return nil
	}
	drained := t.pending
	t.pending = nil
	clear(t.pendingSet)
	return drained
}

func (t *entityTable) free(id EntityID) {
	delete(t.records, id)
}

func (t *entityTable) count() int {
	return len(t.records)
}

// reset drops every record but keeps the ID counter, so identifiers stay
// unique across the whole life of the World.
func (t *entityTable) reset() {
	t.records = make(map[EntityID]*entityRecord)
	t.pending = nil
	clear(t.pendingSet)
}
