package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/alnah/go-socialtext/internal/fileutil"
	"github.com/alnah/go-socialtext/internal/hints"
)

// Sentinel errors for message input.
var (
	ErrNoInput   = errors.New("no input specified")
	ErrReadInput = errors.New("failed to read input")
)

const stdinName = "<stdin>"

// source is one message to process. Files are read lazily by the worker
// that handles them; inline and stdin text is held directly.
type source struct {
	name string
	path string
	text string
}

// load returns the message text.
func (s source) load() (string, error) {
	if s.path == "" {
		return s.text, nil
	}
	data, err := fileutil.ReadFile(s.path, fileutil.MaxInputSize)
	if err != nil {
		return "", fmt.Errorf("%w: %w%s", ErrReadInput, err, hints.ForReadInput(s.path))
	}
	return string(data), nil
}

// resolveSources collects the messages of a run in order: --text values
// first, then file arguments. "-" reads stdin once. With neither, stdin is
// read unless it is a terminal.
func resolveSources(args, texts []string, stdin io.Reader) ([]source, error) {
	sources := make([]source, 0, len(texts)+len(args))
	for i, text := range texts {
		sources = append(sources, source{name: "<text " + strconv.Itoa(i+1) + ">", text: text})
	}

	stdinRead := false
	for _, arg := range args {
		if arg != "-" {
			sources = append(sources, source{name: arg, path: arg})
			continue
		}
		if stdinRead {
			continue
		}
		src, err := readStdin(stdin)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
		stdinRead = true
	}

	if len(sources) > 0 {
		return sources, nil
	}
	if stdin == nil || isTerminal(stdin) {
		return nil, fmt.Errorf("%w%s", ErrNoInput, hints.ForNoInput())
	}
	src, err := readStdin(stdin)
	if err != nil {
		return nil, err
	}
	return []source{src}, nil
}

func readStdin(stdin io.Reader) (source, error) {
	if stdin == nil {
		return source{}, fmt.Errorf("%w: stdin is not available", ErrNoInput)
	}
	data, err := fileutil.ReadAll(stdin, fileutil.MaxInputSize)
	if err != nil {
		return source{}, fmt.Errorf("%w: %s: %w", ErrReadInput, stdinName, err)
	}
	return source{name: stdinName, text: string(data)}, nil
}
