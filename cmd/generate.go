package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alta-drill/alta/internal/bank"
	"github.com/alta-drill/alta/internal/llm"
	"github.com/alta-drill/alta/internal/questiongen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft new questions for a chapter with an LLM",
	Long: `Ask the configured LLM provider for new questions for one chapter.

Drafts are validated and checked against the existing bank, then printed.
With --write they are appended to the question file. Provider settings come
from ALTA_LLM_PROVIDER and the matching ALTA_*_API_KEY variables.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("chapter", "", "Chapter the drafts belong to (required)")
	generateCmd.Flags().Int("count", 5, "Number of questions to draft")
	generateCmd.Flags().String("topic", "", "Optional topic within the chapter")
	generateCmd.Flags().Bool("write", false, "Append accepted drafts to the question file")
	_ = generateCmd.MarkFlagRequired("chapter")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	chapter, _ := cmd.Flags().GetString("chapter")
	count, _ := cmd.Flags().GetInt("count")
	topic, _ := cmd.Flags().GetString("topic")
	write, _ := cmd.Flags().GetBool("write")
	ctx := cmd.Context()

	path := resolveQuestionsPath(cmd)
	b, err := bank.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && write:
		b = bank.New(nil)
	default:
		return err
	}

	in := questiongen.Input{
		Chapter:  bank.Chapter(strings.TrimSpace(chapter)),
		Count:    count,
		Topic:    topic,
		Existing: b.Texts(),
	}
	for _, q := range b.Questions() {
		if q.Chapter == in.Chapter {
			in.Examples = append(in.Examples, q)
		}
	}

	// LLM requests are logged when the result log is available.
	var provider llm.Provider
	if st := openStoreOrWarn(cmd); st != nil {
		defer st.Close()
		provider, err = llm.NewProvider(ctx, llm.ConfigFromEnv(), st.EventRepo())
	} else {
		provider, err = llm.NewProvider(ctx, llm.ConfigFromEnv(), nil)
	}
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	fmt.Printf("Drafting %d questions for chapter %s with %s (%s)...\n\n",
		in.Count, in.Chapter, provider.Name(), provider.ModelID())

	gen := questiongen.New(provider, questiongen.DefaultConfig())
	res, err := gen.Generate(ctx, in)
	if res != nil {
		printDrafts(res)
	}
	if err != nil {
		return err
	}

	if !write {
		fmt.Println("Dry run. Use --write to append the accepted drafts.")
		return nil
	}
	added, err := bank.Append(path, res.Accepted)
	if err != nil {
		return fmt.Errorf("append to %s: %w", path, err)
	}
	fmt.Printf("Appended %d questions to %s.\n", added, path)
	return nil
}

func printDrafts(res *questiongen.Result) {
	for i, q := range res.Accepted {
		fmt.Printf("── Draft %d/%d ──\n", i+1, len(res.Accepted))
		fmt.Println(q.Text)
		for j, o := range q.Options {
			mark := " "
			if o == q.Answer {
				mark = "*"
			}
			fmt.Printf(" %s %d) %s\n", mark, j+1, o)
		}
		if q.Explanation != "" {
			fmt.Printf("Explanation: %s\n", q.Explanation)
		}
		fmt.Println()
	}

	if len(res.Rejected) > 0 {
		fmt.Printf("Rejected %d drafts:\n", len(res.Rejected))
		for _, r := range res.Rejected {
			fmt.Printf("  - %s: %s\n", truncate(r.Question.Text, 60), r.Err.Message)
		}
		fmt.Println()
	}
	fmt.Printf("── %d accepted, %d rejected in %d rounds ──\n\n",
		len(res.Accepted), len(res.Rejected), res.Rounds)
}
