// Package sim tracks the credits in use on the output ports of a Dragonfly
// network's routers.
package sim

import (
	"fmt"
	"math"
)

// CreditChange is a port and its used credits before any change was applied
// to the current state.
type CreditChange struct {
	Port     int
	Previous int
}

// Occupancy is a reversible record of the credits in use on every output port
// of a network. It keeps track of the changes applied to its ports and can
// efficiently undo them.
//
// Ports are identified by router*radix+port.
type Occupancy struct {
	radix int
	used  []int

	// Stack of changes used to restore the last persisted state.
	changes  []CreditChange
	nChanges int

	// A port has been changed in the current state if savedAt[port] ==
	// timestamp. Incrementing the timestamp marks all ports as unchanged in
	// O(1).
	savedAt   []uint
	timestamp uint
}

// NewOccupancy returns an occupancy with no credit in use for nRouters
// routers with radix ports each.
func NewOccupancy(nRouters int, radix int) *Occupancy {
	n := nRouters * radix
	return &Occupancy{
		radix:     radix,
		used:      make([]int, n),
		changes:   make([]CreditChange, n),
		nChanges:  0,
		savedAt:   make([]uint, n),
		timestamp: 1, // must be greater than the zero values in savedAt
	}
}

func (o *Occupancy) index(router int, port int) int {
	if port < 0 || o.radix <= port {
		panic(fmt.Sprintf("port %d out of range [0, %d)", port, o.radix))
	}
	return router*o.radix + port
}

// UsedCredit returns the credits in use on the output port of router.
func (o *Occupancy) UsedCredit(router int, port int) int {
	return o.used[o.index(router, port)]
}

// Take marks n more credits as used on the output port of router. The change
// is registered so that it can be undone.
func (o *Occupancy) Take(router int, port int, n int) {
	o.add(o.index(router, port), n)
}

// Return marks n credits as free again on the output port of router. Used
// credits never go below zero. The change is registered so that it can be
// undone.
func (o *Occupancy) Return(router int, port int, n int) {
	i := o.index(router, port)
	o.add(i, -min(n, o.used[i]))
}

func (o *Occupancy) add(i int, n int) {
	if o.savedAt[i] != o.timestamp {
		o.changes[o.nChanges] = CreditChange{i, o.used[i]}
		o.nChanges += 1
		o.savedAt[i] = o.timestamp
	}
	o.used[i] += n
}

// Persist makes the changes part of the current state. New changes can be
// accumulated (and undone) from this point.
func (o *Occupancy) Persist() {
	o.nChanges = 0
	o.incrTimestamp()
}

// Undo reverts all the changes since the last call to Persist in O(C) where
// C is the number of changed ports.
func (o *Occupancy) Undo() {
	for o.nChanges > 0 {
		o.nChanges -= 1
		c := o.changes[o.nChanges]
		o.used[c.Port] = c.Previous
	}
	o.incrTimestamp()
}

// Changes returns the ports changed since the last call to Persist.
//
// The slice is a view on the state's internal structure and must only be
// read.
func (o *Occupancy) Changes() []CreditChange {
	return o.changes[:o.nChanges]
}

// Total returns the sum of the credits in use on every port.
func (o *Occupancy) Total() int {
	total := 0
	for _, u := range o.used {
		total += u
	}
	return total
}

// incrTimestamp increments the timestamp and resets savedAt when it
// overflows.
func (o *Occupancy) incrTimestamp() {
	if o.timestamp != math.MaxUint {
		o.timestamp += 1
		return
	}
	o.timestamp = 1
	for i := range o.savedAt {
		o.savedAt[i] = 0
	}
}
