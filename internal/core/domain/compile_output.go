package domain

// Message is a diagnostic reported to the host bundler.
type Message struct {
	Text string
}

// CompileOutput is the result handed back to the load hook: either Contents
// or a non-empty Errors list.
type CompileOutput struct {
	Contents string
	Errors   []Message
}

// OutputOf wraps successfully compiled contents.
func OutputOf(contents string) CompileOutput {
	return CompileOutput{Contents: contents}
}

// ErrorOutput converts err into a single diagnostic.
func ErrorOutput(err error) CompileOutput {
	return CompileOutput{Errors: []Message{{Text: err.Error()}}}
}

// HasErrors reports whether the compilation failed.
func (o CompileOutput) HasErrors() bool {
	return len(o.Errors) > 0
}
