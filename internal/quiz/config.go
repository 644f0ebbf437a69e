package quiz

import (
	"fmt"

	"github.com/alta-drill/alta/internal/bank"
)

// Sampling selects how a quiz set is drawn from the bank.
type Sampling string

const (
	// SamplingBalanced draws a capped sample from the focus chapter plus a
	// capped sample from every other chapter.
	SamplingBalanced Sampling = "balanced"

	// SamplingFull uses the whole bank.
	SamplingFull Sampling = "full"
)

// Flow selects how an answer is given.
type Flow string

const (
	// FlowOneStep submits as soon as an option is picked.
	FlowOneStep Flow = "one-step"

	// FlowTwoStep selects an option first and submits on Check.
	FlowTwoStep Flow = "two-step"
)

// Default sampling parameters.
const (
	DefaultFocusChapter bank.Chapter = "3"
	DefaultFocusCap                  = 20
	DefaultOtherCap                  = 20
)

// Config holds the per-session choices that used to be separate app variants.
type Config struct {
	Sampling Sampling
	Flow     Flow

	// Retry enables RetryWrong on the finished screen.
	Retry bool

	// Shuffle randomizes the quiz set order. Balanced sampling always shuffles.
	Shuffle bool

	// FocusChapter, FocusCap and OtherCap parameterize balanced sampling.
	FocusChapter bank.Chapter
	FocusCap     int
	OtherCap     int
}

// DefaultConfig returns the balanced, one-step, retry-enabled setup.
func DefaultConfig() Config {
	return Config{
		Sampling:     SamplingBalanced,
		Flow:         FlowOneStep,
		Retry:        true,
		Shuffle:      true,
		FocusChapter: DefaultFocusChapter,
		FocusCap:     DefaultFocusCap,
		OtherCap:     DefaultOtherCap,
	}
}

// Validate checks enum values and caps.
func (c Config) Validate() error {
	switch c.Sampling {
	case SamplingBalanced, SamplingFull:
	default:
		return fmt.Errorf("unknown sampling %q: must be %q or %q", c.Sampling, SamplingBalanced, SamplingFull)
	}
	switch c.Flow {
	case FlowOneStep, FlowTwoStep:
	default:
		return fmt.Errorf("unknown flow %q: must be %q or %q", c.Flow, FlowOneStep, FlowTwoStep)
	}
	if c.Sampling == SamplingBalanced {
		if c.FocusChapter == "" {
			return fmt.Errorf("balanced sampling needs a focus chapter")
		}
		if c.FocusCap < 0 || c.OtherCap < 0 {
			return fmt.Errorf("sampling caps must not be negative")
		}
	}
	return nil
}
