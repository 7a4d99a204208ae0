// Package goap implements the GOAP planner: a symbolic A* search over a
// totally ordered WorldState, with action-history-based cost learning and
// a thin orchestrator translating the winning action sequence into
// plan.ActionStep values (spec §4.6).
package goap

import (
	"sort"
	"strconv"
	"strings"
)

// Kind tags which field of Value is populated.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindString
)

// Value is the sum type WorldState entries hold. Only one field is
// meaningful per Kind; equality and hashing always switch on Kind first.
type Value struct {
	Kind Kind
	B    bool
	I    int64
	S    string
}

func Bool(b bool) Value    { return Value{Kind: KindBool, B: b} }
func Int(i int64) Value    { return Value{Kind: KindInt, I: i} }
func String(s string) Value { return Value{Kind: KindString, S: s} }

// Equal reports whether v and o carry the same kind and value.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.B == o.B
	case KindInt:
		return v.I == o.I
	default:
		return v.S == o.S
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.B)
	case KindInt:
		return strconv.FormatInt(v.I, 10)
	default:
		return v.S
	}
}

// WorldState is the symbolic state GOAP plans over. Go maps have no
// intrinsic order, so Hash iterates sortedKeys instead of ranging the map
// directly (spec §4.6.1: "entries in a sorted map"); Satisfies and
// DistanceTo range the map, since their results do not depend on order.
type WorldState map[string]Value

// Clone returns an independent copy.
func (ws WorldState) Clone() WorldState {
	out := make(WorldState, len(ws))
	for k, v := range ws {
		out[k] = v
	}
	return out
}

// Satisfies reports whether ws contains every condition in goal (missing
// keys count as unsatisfied, never as a wildcard match).
func (ws WorldState) Satisfies(goal WorldState) bool {
	for k, want := range goal {
		got, ok := ws[k]
		if !ok || !got.Equal(want) {
			return false
		}
	}
	return true
}

// DistanceTo is the admissible heuristic spec §4.6.1 names: the count of
// goal conditions ws does not currently satisfy.
func (ws WorldState) DistanceTo(goal WorldState) int {
	n := 0
	for k, want := range goal {
		got, ok := ws[k]
		if !ok || !got.Equal(want) {
			n++
		}
	}
	return n
}

// Apply returns a new state with effects merged in, leaving ws untouched.
func (ws WorldState) Apply(effects WorldState) WorldState {
	out := ws.Clone()
	for k, v := range effects {
		out[k] = v
	}
	return out
}

func sortedKeys(ws WorldState) []string {
	keys := make([]string, 0, len(ws))
	for k := range ws {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Hash renders ws as a stable string over its sorted keys, used as the
// A* closed-set / open-set key (spec §4.6.2).
func (ws WorldState) Hash() string {
	var b strings.Builder
	for _, k := range sortedKeys(ws) {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(ws[k].String())
		b.WriteByte(';')
	}
	return b.String()
}
