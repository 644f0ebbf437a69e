package questiongen

// Config controls the Generator.
type Config struct {
	// Validators run in order on every draft; the first failure rejects it.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxRounds bounds how many requests one run may make to fill Count.
	MaxRounds int

	// MaxExisting caps the existing question texts listed in the prompt.
	MaxExisting int

	// MaxExamples caps the sample questions shown in the prompt.
	MaxExamples int

	// MaxPerRequest caps how many drafts are asked for in one request.
	MaxPerRequest int
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:     4096,
		Temperature:   0.7,
		MaxRounds:     3,
		MaxExisting:   40,
		MaxExamples:   3,
		MaxPerRequest: 10,
	}
}
