package setup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter asks the operator a yes/no question.
type Prompter interface {
	Confirm(prompt string) bool
}

// StdinPrompter reads single-token answers from an input stream. Only a
// leading "y" (case-insensitive) counts as affirmative.
type StdinPrompter struct {
	In     io.Reader
	reader *bufio.Reader
}

// Confirm prints the prompt and reads one answer line.
func (p *StdinPrompter) Confirm(prompt string) bool {
	if p.reader == nil {
		in := p.In
		if in == nil {
			in = os.Stdin
		}
		p.reader = bufio.NewReader(in)
	}

	fmt.Printf("%s (y/N): ", prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.TrimSpace(line)
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

// ScriptedPrompter is a test double answering from a fixed list.
type ScriptedPrompter struct {
	Prompts []string // prompts seen, in order
	Answers []bool
}

// Confirm records the prompt and pops the next scripted answer. Running out
// of answers means "no".
func (p *ScriptedPrompter) Confirm(prompt string) bool {
	p.Prompts = append(p.Prompts, prompt)
	if len(p.Answers) == 0 {
		return false
	}
	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	return answer
}
