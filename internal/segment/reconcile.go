package segment

// Options holds the tunable gap parameters for the reconciliation passes.
// The defaults are heuristics, not law; real-world book formatting varies,
// so they are surfaced through configuration.
type Options struct {
	// MergeWindow: a repeat of the same title within this many lines of
	// the previously kept sighting is collapsed into it.
	MergeWindow int
	// MinGap: an occurrence closer than this to the previous kept
	// occurrence is dropped regardless of title.
	MinGap int
}

// DefaultOptions returns the default reconciliation windows.
func DefaultOptions() Options {
	return Options{
		MergeWindow: 10,
		MinGap:      20,
	}
}

// MergeNearby collapses re-printed headings. An occurrence is dropped when
// it has the same title as the immediately preceding kept occurrence and
// falls within window lines of it — a heading re-printed shortly after its
// real occurrence (a running header, say) is the same sighting.
// Single pass, order-preserving.
func MergeNearby(occs []Occurrence, window int) []Occurrence {
	var merged []Occurrence
	for _, o := range occs {
		if n := len(merged); n > 0 {
			prev := merged[n-1]
			if o.Title == prev.Title && o.Line-prev.Line <= window {
				continue
			}
		}
		merged = append(merged, o)
	}
	return merged
}

// FilterNear suppresses implausibly close chapter starts. An occurrence is
// dropped when its line is less than minGap lines after the previous kept
// occurrence, whatever its title — two distinct real chapters do not start
// almost on top of each other, but a TOC echo produces exactly that.
// Single pass, order-preserving.
func FilterNear(occs []Occurrence, minGap int) []Occurrence {
	var kept []Occurrence
	for _, o := range occs {
		if n := len(kept); n > 0 && o.Line-kept[n-1].Line < minGap {
			continue
		}
		kept = append(kept, o)
	}
	return kept
}

// Reconcile runs the two passes in order: merge nearby same-title repeats,
// then filter starts that crowd the previous one. An empty input yields an
// empty output; the caller treats that as the no-chapters terminal case.
func Reconcile(occs []Occurrence, opts Options) []Occurrence {
	return FilterNear(MergeNearby(occs, opts.MergeWindow), opts.MinGap)
}
