package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alta-drill/alta/internal/bank"
	"github.com/alta-drill/alta/internal/quiz"
)

func addQuizFlags(f *pflag.FlagSet) {
	def := quiz.DefaultConfig()
	f.String("sampling", string(def.Sampling), "Quiz set sampling: balanced or full (ALTA_SAMPLING)")
	f.String("flow", string(def.Flow), "Answer flow: one-step or two-step (ALTA_FLOW)")
	f.Bool("retry", def.Retry, "Offer retrying wrong answers after a pass (ALTA_RETRY)")
	f.String("focus-chapter", string(def.FocusChapter), "Chapter sampled separately in balanced mode (ALTA_FOCUS_CHAPTER)")
	f.Int("focus-cap", def.FocusCap, "Questions drawn from the focus chapter (ALTA_FOCUS_CAP)")
	f.Int("other-cap", def.OtherCap, "Questions drawn from the other chapters (ALTA_OTHER_CAP)")
	f.Bool("no-shuffle", !def.Shuffle, "Keep file order in full mode (ALTA_NO_SHUFFLE)")
}

// resolveQuizConfig builds the session config. Each knob comes from its
// flag when set, then its ALTA_ variable, then the default.
func resolveQuizConfig(cmd *cobra.Command) (quiz.Config, error) {
	cfg := quiz.DefaultConfig()
	f := cmd.Flags()

	var errs []error
	str := func(flag, env string, dst *string) {
		if v, ok := lookup(f, flag, env); ok {
			*dst = v
		}
	}
	num := func(flag, env string, dst *int) {
		if v, ok := lookup(f, flag, env); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %q is not a number", flag, v))
				return
			}
			*dst = n
		}
	}
	boolean := func(flag, env string, dst *bool) {
		if v, ok := lookup(f, flag, env); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %q is not a boolean", flag, v))
				return
			}
			*dst = b
		}
	}

	sampling, flow, chapter := string(cfg.Sampling), string(cfg.Flow), string(cfg.FocusChapter)
	noShuffle := !cfg.Shuffle
	str("sampling", "ALTA_SAMPLING", &sampling)
	str("flow", "ALTA_FLOW", &flow)
	str("focus-chapter", "ALTA_FOCUS_CHAPTER", &chapter)
	boolean("retry", "ALTA_RETRY", &cfg.Retry)
	boolean("no-shuffle", "ALTA_NO_SHUFFLE", &noShuffle)
	num("focus-cap", "ALTA_FOCUS_CAP", &cfg.FocusCap)
	num("other-cap", "ALTA_OTHER_CAP", &cfg.OtherCap)
	if len(errs) > 0 {
		return quiz.Config{}, errs[0]
	}

	cfg.Sampling = quiz.Sampling(sampling)
	cfg.Flow = quiz.Flow(flow)
	cfg.FocusChapter = bank.Chapter(chapter)
	cfg.Shuffle = !noShuffle

	if err := cfg.Validate(); err != nil {
		return quiz.Config{}, err
	}
	return cfg, nil
}

// lookup returns the flag value when it was set on the command line,
// otherwise the non-empty environment value.
func lookup(f *pflag.FlagSet, flag, env string) (string, bool) {
	if fl := f.Lookup(flag); fl != nil && fl.Changed {
		return fl.Value.String(), true
	}
	if v := os.Getenv(env); v != "" {
		return v, true
	}
	return "", false
}
