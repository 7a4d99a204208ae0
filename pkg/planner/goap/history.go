package goap

import "sort"

// alpha is the small coefficient spec §4.6.3 names for cost adjustment.
const alpha = 0.25

// confidenceWindow is the execution count at which reliability_score
// stops discounting for sparse history (spec §3's min(executions/20, 1)
// confidence-weighting factor).
const confidenceWindow = 20

// Stats accumulates one action's outcomes across executions.
type Stats struct {
	Executions  int
	Successes   int
	Failures    int
	AvgDuration float64 // running mean of RecordSuccess's duration, seconds
}

// SuccessRate is Successes/Executions, or 1.0 (neutral) with no history.
func (s Stats) SuccessRate() float64 {
	if s.Executions == 0 {
		return 1.0
	}
	return float64(s.Successes) / float64(s.Executions)
}

// ReliabilityScore is spec §3's success_rate · min(executions/20, 1): the
// confidence-weighting factor discounts a perfect-but-sparse record (e.g.
// 1/1) toward zero until the action has accumulated enough executions
// to trust its success rate outright.
func (s Stats) ReliabilityScore() float64 {
	confidence := float64(s.Executions) / confidenceWindow
	if confidence > 1 {
		confidence = 1
	}
	return s.SuccessRate() * confidence
}

// ActionHistory tracks per-action-name Stats, updated externally by the
// executor/arbiter via RecordSuccess/RecordFailure (spec §4.6.3) — the
// planner itself never writes to it mid-search.
type ActionHistory struct {
	stats map[string]Stats
}

// NewActionHistory returns an empty history.
func NewActionHistory() *ActionHistory {
	return &ActionHistory{stats: make(map[string]Stats)}
}

// RecordSuccess records one successful execution of action, folding
// duration (seconds) into its running avg_duration.
func (h *ActionHistory) RecordSuccess(action string, duration float64) {
	s := h.stats[action]
	s.Executions++
	s.Successes++
	s.AvgDuration += (duration - s.AvgDuration) / float64(s.Successes)
	h.stats[action] = s
}

// RecordFailure records one failed execution of action.
func (h *ActionHistory) RecordFailure(action string) {
	s := h.stats[action]
	s.Executions++
	s.Failures++
	h.stats[action] = s
}

// Stats returns action's current stats, or the zero (neutral) value.
func (h *ActionHistory) Stats(action string) Stats {
	return h.stats[action]
}

// EffectiveCost applies spec §4.6.3's formula:
// base · (1 + α·(1 − reliability_score)). An action with no recorded
// executions has neutral reliability and costs exactly base.
func (h *ActionHistory) EffectiveCost(action string, base float64) float64 {
	s := h.Stats(action)
	if s.Executions == 0 {
		return base
	}
	r := s.ReliabilityScore()
	return base * (1 + alpha*(1-r))
}

// Merge folds other's counters into h, action by action — used to combine
// histories recorded by independent agents sharing the same action
// library (spec §4.6.3 "optionally merged across agents"). AvgDuration
// is folded as a successes-weighted mean so a high-volume agent's timing
// isn't diluted by a low-volume one's.
func (h *ActionHistory) Merge(other *ActionHistory) {
	for name, s := range other.stats {
		cur := h.stats[name]
		totalSuccesses := cur.Successes + s.Successes
		if totalSuccesses > 0 {
			cur.AvgDuration = (cur.AvgDuration*float64(cur.Successes) + s.AvgDuration*float64(s.Successes)) / float64(totalSuccesses)
		}
		cur.Executions += s.Executions
		cur.Successes += s.Successes
		cur.Failures += s.Failures
		h.stats[name] = cur
	}
}

// All returns a copy of every action's current Stats, keyed by action
// name — the snapshot a persistence layer writes out between runs.
func (h *ActionHistory) All() map[string]Stats {
	out := make(map[string]Stats, len(h.stats))
	for name, s := range h.stats {
		out[name] = s
	}
	return out
}

// Load replaces h's counters with snapshot, as read back from a
// persistence layer at startup. Any counters accumulated since NewActionHistory
// are discarded.
func (h *ActionHistory) Load(snapshot map[string]Stats) {
	h.stats = make(map[string]Stats, len(snapshot))
	for name, s := range snapshot {
		h.stats[name] = s
	}
}

// Prune keeps only the topN actions by execution count, discarding the
// rest — bounds memory for long-running hosts with large action
// vocabularies (spec §4.6.3 "pruned to top-N by executions").
func (h *ActionHistory) Prune(topN int) {
	if len(h.stats) <= topN {
		return
	}
	type entry struct {
		name string
		s    Stats
	}
	entries := make([]entry, 0, len(h.stats))
	for name, s := range h.stats {
		entries = append(entries, entry{name, s})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].s.Executions != entries[j].s.Executions {
			return entries[i].s.Executions > entries[j].s.Executions
		}
		return entries[i].name < entries[j].name
	})
	kept := make(map[string]Stats, topN)
	for _, e := range entries[:topN] {
		kept[e.name] = e.s
	}
	h.stats = kept
}
