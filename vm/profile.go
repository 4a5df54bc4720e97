package vm

import "time"

// ProfileStats is a running whole-evaluation timing summary. Counters
// belong to one Context; independent callers (alert engine, hook engine,
// filter manager) each hold their own context so their statistics stay
// isolated.
type ProfileStats struct {
	Evaluations int64
	MinNs       int64
	MaxNs       int64
	TotalNs     int64
}

func (s *ProfileStats) record(elapsedNs int64) {
	if s.Evaluations == 0 || elapsedNs < s.MinNs {
		s.MinNs = elapsedNs
	}
	if elapsedNs > s.MaxNs {
		s.MaxNs = elapsedNs
	}
	s.Evaluations++
	s.TotalNs += elapsedNs
}

// AvgNs is the mean evaluation time, 0 before any evaluation.
func (s *ProfileStats) AvgNs() int64 {
	if s.Evaluations == 0 {
		return 0
	}
	return s.TotalNs / s.Evaluations
}

// OpcodeStat counts executions and cumulative time of one opcode.
type OpcodeStat struct {
	Count   int64
	TotalNs int64
}

// EnableOpcodeProfiling turns on per-opcode counters for subsequent
// evaluations on this context. Timing every instruction is costly; leave
// it off outside of performance investigation.
func (c *Context) EnableOpcodeProfiling() {
	c.opcodeProfiling = true
	if c.opcodeStats == nil {
		c.opcodeStats = make(map[Opcode]*OpcodeStat)
	}
}

// DisableOpcodeProfiling stops per-opcode accounting; collected stats
// are retained.
func (c *Context) DisableOpcodeProfiling() {
	c.opcodeProfiling = false
}

// OpcodeStats returns a copy of the per-opcode counters.
func (c *Context) OpcodeStats() map[Opcode]OpcodeStat {
	out := make(map[Opcode]OpcodeStat, len(c.opcodeStats))
	for op, st := range c.opcodeStats {
		out[op] = *st
	}
	return out
}

// ResetStats clears whole-evaluation and per-opcode counters.
func (c *Context) ResetStats() {
	c.Profile = ProfileStats{}
	c.opcodeStats = make(map[Opcode]*OpcodeStat)
}

func (c *Context) recordOpcode(op Opcode, start time.Time) {
	if !c.opcodeProfiling {
		return
	}
	st, ok := c.opcodeStats[op]
	if !ok {
		st = &OpcodeStat{}
		c.opcodeStats[op] = st
	}
	st.Count++
	st.TotalNs += time.Since(start).Nanoseconds()
}
