package file

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/markov/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of a model.
type Format int

const (
	// FormatText is the sectioned plain-text layout (initial/transition/observation).
	FormatText Format = iota
	FormatYAML
	FormatJSON
)

// Significant digits written by the text encoder.
const (
	initialDigits = 10
	matrixDigits  = 6
)

// FormatOf picks the format from the file extension. Anything that is not
// YAML or JSON is read as text.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "text"
	}
}

// DecodeModel parses a model. Only the layout is checked here; probability
// constraints are left to domain.Model.Validate.
func DecodeModel(r io.Reader, format Format) (*domain.Model, error) {
	var (
		m   *domain.Model
		err error
	)
	switch format {
	case FormatYAML:
		m = &domain.Model{}
		if err = yaml.NewDecoder(r).Decode(m); err != nil {
			return nil, &domain.ModelError{Field: "yaml", Reason: err.Error()}
		}
	case FormatJSON:
		m = &domain.Model{}
		if err = json.NewDecoder(r).Decode(m); err != nil {
			return nil, &domain.ModelError{Field: "json", Reason: err.Error()}
		}
	default:
		if m, err = decodeText(r); err != nil {
			return nil, err
		}
	}

	if m.States == 0 {
		m.States = len(m.Initial)
	}
	if m.Symbols == 0 {
		m.Symbols = len(m.Observation)
	}
	return m, nil
}

// EncodeModel writes m. The model name is not part of the encoding.
func EncodeModel(w io.Writer, format Format, m *domain.Model) error {
	out := m.Clone()
	out.Name = ""

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode model: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return encodeText(w, out)
	}
}

type textReader struct {
	sc *bufio.Scanner
	m  *domain.Model
}

func malformed(field, format string, args ...any) error {
	return &domain.ModelError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func decodeText(r io.Reader) (*domain.Model, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	tr := &textReader{sc: sc, m: &domain.Model{}}

	seen := map[string]bool{}
	for sc.Scan() {
		header := sc.Text()
		section, ok := strings.CutSuffix(header, ":")
		if !ok {
			return nil, malformed("header", "unexpected token %q, want a section such as \"initial:\"", header)
		}
		if seen[section] {
			return nil, malformed(section, "section appears twice")
		}
		seen[section] = true

		n, err := tr.size(section)
		if err != nil {
			return nil, err
		}

		switch section {
		case "initial":
			if err := tr.setStates(section, n); err != nil {
				return nil, err
			}
			if tr.m.Initial, err = tr.row(section, n); err != nil {
				return nil, err
			}
		case "transition":
			if err := tr.setStates(section, n); err != nil {
				return nil, err
			}
			if tr.m.Transition, err = tr.matrix(section, n, n); err != nil {
				return nil, err
			}
		case "observation":
			if tr.m.States == 0 {
				return nil, malformed(section, "appears before the number of states is known")
			}
			tr.m.Symbols = n
			if tr.m.Observation, err = tr.matrix(section, n, tr.m.States); err != nil {
				return nil, err
			}
		default:
			return nil, malformed(section, "unknown section")
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	for _, section := range []string{"initial", "transition", "observation"} {
		if !seen[section] {
			return nil, malformed(section, "missing section")
		}
	}
	return tr.m, nil
}

func (tr *textReader) size(section string) (int, error) {
	if !tr.sc.Scan() {
		return 0, malformed(section, "missing dimension")
	}
	n, err := strconv.Atoi(tr.sc.Text())
	if err != nil || n <= 0 {
		return 0, malformed(section, "invalid dimension %q", tr.sc.Text())
	}
	return n, nil
}

func (tr *textReader) setStates(section string, n int) error {
	if tr.m.States == 0 {
		tr.m.States = n
		return nil
	}
	if tr.m.States != n {
		return malformed(section, "declares %d states, earlier sections declared %d", n, tr.m.States)
	}
	return nil
}

func (tr *textReader) row(field string, n int) ([]float64, error) {
	row := make([]float64, n)
	for j := range row {
		if !tr.sc.Scan() {
			return nil, malformed(field, "truncated after %d of %d values", j, n)
		}
		v, err := strconv.ParseFloat(tr.sc.Text(), 64)
		if err != nil {
			return nil, malformed(field, "unparsable number %q", tr.sc.Text())
		}
		row[j] = v
	}
	return row, nil
}

func (tr *textReader) matrix(section string, rows, cols int) ([][]float64, error) {
	out := make([][]float64, rows)
	for i := range out {
		row, err := tr.row(fmt.Sprintf("%s row %d", section, i), cols)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}

func encodeText(w io.Writer, m *domain.Model) error {
	bw := bufio.NewWriter(w)

	writeRow := func(row []float64, digits int) {
		var buf []byte
		for j, v := range row {
			if j > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, v, 'g', digits, 64)
		}
		buf = append(buf, '\n')
		_, _ = bw.Write(buf)
	}

	fmt.Fprintf(bw, "initial: %d\n", m.States)
	writeRow(m.Initial, initialDigits)
	fmt.Fprintf(bw, "\ntransition: %d\n", m.States)
	for _, row := range m.Transition {
		writeRow(row, matrixDigits)
	}
	fmt.Fprintf(bw, "\nobservation: %d\n", m.Symbols)
	for _, row := range m.Observation {
		writeRow(row, matrixDigits)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return nil
}
