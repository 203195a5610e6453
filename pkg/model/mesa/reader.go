package mesa

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/photosphere/pkg/domain"
)

var requiredColumns = []string{"zone", "logT", "logRho", "logP"}

// Read parses the MESA profile at path.
func Read(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.ModelParseError{Format: domain.FormatMESA, Path: path, Err: err}
	}
	defer f.Close()

	return Parse(f, path)
}

type parser struct {
	sc   *bufio.Scanner
	path string
	line int
}

func (p *parser) next() (string, bool) {
	if !p.sc.Scan() {
		return "", false
	}
	p.line++
	return p.sc.Text(), true
}

func (p *parser) nextNonEmpty() ([]string, bool) {
	for {
		line, ok := p.next()
		if !ok {
			return nil, false
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			return fields, true
		}
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return &domain.ModelParseError{Format: domain.FormatMESA, Path: p.path, Line: p.line, Err: fmt.Errorf(format, args...)}
}

func (p *parser) eof(what string) error {
	if err := p.sc.Err(); err != nil {
		return &domain.ModelParseError{Format: domain.FormatMESA, Path: p.path, Line: p.line, Err: err}
	}
	return p.errorf("unexpected end of file, expected %s", what)
}

// Parse reads a MESA profile from r. path is used in errors.
func Parse(r io.Reader, path string) (*Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	p := &parser{sc: sc, path: path}
	m := &Model{Path: path}

	if _, ok := p.nextNonEmpty(); !ok {
		return nil, p.eof("header column numbers")
	}
	names, ok := p.nextNonEmpty()
	if !ok {
		return nil, p.eof("header names")
	}
	values, ok := p.nextNonEmpty()
	if !ok {
		return nil, p.eof("header values")
	}
	if len(values) != len(names) {
		return nil, p.errorf("%d header values for %d header names", len(values), len(names))
	}
	m.HeaderNames, m.HeaderValues = names, values

	if numbers, ok := p.nextNonEmpty(); !ok {
		return nil, p.eof("column numbers")
	} else if _, err := strconv.Atoi(numbers[0]); err != nil {
		return nil, p.errorf("expected column numbers, got %q", numbers[0])
	}
	columns, ok := p.nextNonEmpty()
	if !ok {
		return nil, p.eof("column names")
	}
	if err := m.setColumns(columns); err != nil {
		return nil, p.errorf("%w", err)
	}

	for {
		fields, ok := p.nextNonEmpty()
		if !ok {
			break
		}
		if len(fields) != len(columns) {
			return nil, p.errorf("expected %d columns, got %d", len(columns), len(fields))
		}
		for i, field := range fields {
			v, err := parseFloat(field)
			if err != nil {
				return nil, p.errorf("column %s: %w", columns[i], err)
			}
			m.data[i] = append(m.data[i], v)
		}
		m.rows++
	}
	if err := sc.Err(); err != nil {
		return nil, p.eof("profile rows")
	}
	if m.rows == 0 {
		return nil, p.errorf("profile has no shells")
	}
	return m, nil
}

func (m *Model) setColumns(columns []string) error {
	m.columns = columns
	m.index = make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := m.index[name]; dup {
			return fmt.Errorf("duplicate column %q", name)
		}
		m.index[name] = i
	}
	m.data = make([][]float64, len(columns))

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := m.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	_, hasLogR := m.index["logR"]
	_, hasRadius := m.index["radius"]
	if !hasLogR && !hasRadius {
		missing = append(missing, "logR or radius")
	}
	if len(missing) > 0 {
		return errors.New("missing required columns: " + strings.Join(missing, ", "))
	}
	return nil
}

// parseFloat accepts Fortran D exponents (1.5D+03).
func parseFloat(s string) (float64, error) {
	if strings.ContainsAny(s, "dD") {
		s = strings.NewReplacer("D", "E", "d", "e").Replace(s)
	}
	return strconv.ParseFloat(s, 64)
}
