package file

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/markov/pkg/domain"
)

// maxLineBytes bounds a single corpus line.
const maxLineBytes = 1 << 20

// ReadCorpus reads one sequence per line. Blank lines are skipped and trailing
// whitespace (including '\r') is ignored. If length is zero the first sequence sets it.
func ReadCorpus(r io.Reader, alphabet domain.Alphabet, length int) (*domain.Corpus, error) {
	corpus := domain.NewCorpus(length)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), " \t\r")
		if text == "" {
			continue
		}
		seq, err := alphabet.Encode(text)
		if err == nil {
			err = corpus.Append(seq)
		}
		if err != nil {
			return nil, atLine(err, line)
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &domain.CorpusError{Line: line + 1, Reason: fmt.Sprintf("line longer than %d bytes", maxLineBytes)}
		}
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	if corpus.Len() == 0 {
		return nil, &domain.CorpusError{Reason: "no sequences"}
	}
	return corpus, nil
}

// LoadCorpus opens path and reads it with ReadCorpus.
func LoadCorpus(path string, alphabet domain.Alphabet, length int) (*domain.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	corpus, err := ReadCorpus(f, alphabet, length)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return corpus, nil
}

func atLine(err error, line int) error {
	var ce *domain.CorpusError
	if errors.As(err, &ce) {
		return &domain.CorpusError{Line: line, Reason: ce.Reason}
	}
	return err
}
