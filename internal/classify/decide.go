package classify

// Decision is the processing mode required by the current on-disk state.
// Decide is pure so the interactive shell stays out of the core: the cmd
// layer maps the NeedX decisions to prompts (or to defaults under --yes).
type Decision int

const (
	// NoCandidates means no marked template files exist; nothing to do.
	NoCandidates Decision = iota
	// ProcessUnmodified means only raw-marker files exist; process them.
	ProcessUnmodified
	// NeedReprocessChoice means every marked file is already in target form;
	// the user must choose between a re-process run and cancelling.
	NeedReprocessChoice
	// NeedMixedChoice means both forms exist; the user must choose among
	// processing only unmodified files, processing both, or cancelling.
	NeedMixedChoice
)

// Decide returns the required mode for the given classification counts.
func Decide(c Counts) Decision {
	switch {
	case c.Unmodified == 0 && c.Modified == 0:
		return NoCandidates
	case c.Modified == 0:
		return ProcessUnmodified
	case c.Unmodified == 0:
		return NeedReprocessChoice
	default:
		return NeedMixedChoice
	}
}
