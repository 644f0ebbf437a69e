package quiz

// savedMsg reports the outcome of a result-log write.
type savedMsg struct {
	Err error
}
