package litmus

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlDocument is the on-disk YAML shape:
//
//	name: store-buffer
//	threads:
//	  - [st x 1, ld y]
//	  - [st y 1, ld x]
//
// Each instruction string uses the same syntax as the line format.
type yamlDocument struct {
	Name    string     `yaml:"name"`
	Threads [][]string `yaml:"threads"`
}

// ParseYAML reads a program from a YAML litmus document.
func ParseYAML(r io.Reader) (*Program, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Message: "decode yaml litmus document", Err: err}
	}

	threads := make([][]Instruction, len(doc.Threads))
	for t, lines := range doc.Threads {
		threads[t] = make([]Instruction, len(lines))
		for i, line := range lines {
			in, err := ParseInstruction(line)
			if err != nil {
				return nil, &ParseError{
					Message: fmt.Sprintf("thread %d instruction %d: %v", t, i, err),
					Err:     err,
				}
			}
			threads[t][i] = in
		}
	}

	p, err := New(threads)
	if err != nil {
		return nil, &ParseError{Message: err.Error(), Err: err}
	}
	return p, nil
}
