package models

// Skip records why a single source row was dropped during parsing.
type Skip struct {
	Line   int
	Reason string
}

// ParseStats summarizes a parse run. Skipped rows never abort the run
// on their own; callers decide what to do when Parsed is zero.
type ParseStats struct {
	Parsed  int
	Skipped []Skip
}

func (s *ParseStats) AddSkip(line int, reason string) {
	s.Skipped = append(s.Skipped, Skip{Line: line, Reason: reason})
}
