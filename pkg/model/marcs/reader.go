package marcs

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/photosphere/pkg/domain"
	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

var (
	errGzipExpected   = errors.New("gzipped is set but the file is not gzip-compressed")
	errGzipUnexpected = errors.New("file is gzip-compressed but gzipped is not set")
)

// Read parses the MARCS file at path. The gzipped flag must agree with the
// file content.
func Read(path string, gzipped bool) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.ModelParseError{Format: domain.FormatMARCS, Path: path, Err: err}
	}
	defer f.Close()

	br := bufio.NewReader(f)
	magic, err := br.Peek(len(gzipMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &domain.ModelParseError{Format: domain.FormatMARCS, Path: path, Err: err}
	}
	isGzip := bytes.Equal(magic, gzipMagic)

	switch {
	case gzipped && !isGzip:
		return nil, &domain.ModelParseError{Format: domain.FormatMARCS, Path: path, Err: errGzipExpected}
	case !gzipped && isGzip:
		return nil, &domain.ModelParseError{Format: domain.FormatMARCS, Path: path, Err: errGzipUnexpected}
	}

	var r io.Reader = br
	if gzipped {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, &domain.ModelParseError{Format: domain.FormatMARCS, Path: path, Err: fmt.Errorf("gzip: %w", err)}
		}
		defer zr.Close()
		r = zr
	}
	m, err := Parse(r, path)
	if err != nil {
		return nil, err
	}
	m.Gzipped = gzipped
	return m, nil
}

// IsGzip reports whether the file at path starts with the gzip magic bytes.
func IsGzip(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	magic := make([]byte, len(gzipMagic))
	n, err := io.ReadFull(f, magic)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return n == len(gzipMagic) && bytes.Equal(magic, gzipMagic), nil
}

type lineReader struct {
	sc   *bufio.Scanner
	path string
	line int
}

func (r *lineReader) next() (string, bool) {
	if !r.sc.Scan() {
		return "", false
	}
	r.line++
	return r.sc.Text(), true
}

func (r *lineReader) nextNonEmpty() (string, bool) {
	for {
		line, ok := r.next()
		if !ok {
			return "", false
		}
		if strings.TrimSpace(line) != "" {
			return line, true
		}
	}
}

func (r *lineReader) errorf(format string, args ...any) error {
	return &domain.ModelParseError{Format: domain.FormatMARCS, Path: r.path, Line: r.line, Err: fmt.Errorf(format, args...)}
}

func (r *lineReader) eof(what string) error {
	if err := r.sc.Err(); err != nil {
		return &domain.ModelParseError{Format: domain.FormatMARCS, Path: r.path, Line: r.line, Err: err}
	}
	return r.errorf("unexpected end of file, expected %s", what)
}

type headerField struct {
	label string
	n     int
	set   func(h *Header, v []float64)
}

// Labels are matched as substrings, in order.
var headerFields = []headerField{
	{"Teff", 1, func(h *Header, v []float64) { h.EffectiveTemperature = v[0] }},
	{"Flux", 1, func(h *Header, v []float64) { h.Flux = v[0] }},
	{"Surface gravity", 1, func(h *Header, v []float64) { h.SurfaceGravity = v[0] }},
	{"Microturbulence parameter", 1, func(h *Header, v []float64) { h.Microturbulence = v[0] }},
	{"Mass", 1, func(h *Header, v []float64) { h.Mass = v[0] }},
	{"Metallicity", 2, func(h *Header, v []float64) { h.Metallicity, h.AlphaEnhancement = v[0], v[1] }},
	{"Radius", 1, func(h *Header, v []float64) { h.Radius = v[0] }},
	{"Luminosity", 1, func(h *Header, v []float64) { h.Luminosity = v[0] }},
	{"convection parameters", 4, func(h *Header, v []float64) { h.Convection = append([]float64(nil), v...) }},
	{"are X, Y and Z", 3, func(h *Header, v []float64) { h.X, h.Y, h.Z = v[0], v[1], v[2] }},
}

var requiredHeader = []string{"Teff", "Surface gravity", "Microturbulence parameter"}

// Parse reads a decompressed MARCS model from r. path is used in errors.
func Parse(r io.Reader, path string) (*Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lr := &lineReader{sc: sc, path: path}

	name, ok := lr.nextNonEmpty()
	if !ok {
		return nil, lr.eof("model name")
	}
	m := &Model{Path: path, Header: Header{Name: strings.TrimSpace(name)}}

	if err := parseHeader(lr, &m.Header); err != nil {
		return nil, err
	}
	if err := parseAbundances(lr, &m.Abundances); err != nil {
		return nil, err
	}

	n, err := parseDepthCount(lr)
	if err != nil {
		return nil, err
	}
	m.Layers = make([]Layer, n)
	if err := parseStructure(lr, m.Layers); err != nil {
		return nil, err
	}
	return m, nil
}

func parseHeader(lr *lineReader, h *Header) error {
	seen := make(map[string]bool, len(headerFields))
	for {
		line, ok := lr.next()
		if !ok {
			return lr.eof("abundance section")
		}
		if strings.Contains(line, "Logarithmic chemical number abundances") {
			break
		}
		for _, f := range headerFields {
			if !strings.Contains(line, f.label) {
				continue
			}
			values, err := leadingFloats(line, f.n)
			if err != nil {
				return lr.errorf("%s: %w", f.label, err)
			}
			f.set(h, values)
			seen[f.label] = true
			break
		}
	}

	for _, label := range requiredHeader {
		if !seen[label] {
			return lr.errorf("header is missing %q", label)
		}
	}
	return nil
}

func parseAbundances(lr *lineReader, out *[NumAbundances]float64) error {
	count := 0
	for count < NumAbundances {
		line, ok := lr.next()
		if !ok {
			return lr.eof(fmt.Sprintf("%d abundances, read %d", NumAbundances, count))
		}
		for _, field := range strings.Fields(line) {
			if count == NumAbundances {
				return lr.errorf("more than %d abundances", NumAbundances)
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return lr.errorf("abundance %d: %w", count+1, err)
			}
			out[count] = v
			count++
		}
	}
	return nil
}

func parseDepthCount(lr *lineReader) (int, error) {
	line, ok := lr.nextNonEmpty()
	if !ok {
		return 0, lr.eof("number of depth points")
	}
	if !strings.Contains(line, "Number of depth points") {
		return 0, lr.errorf("expected number of depth points, got %q", strings.TrimSpace(line))
	}
	fields := strings.Fields(line)
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, lr.errorf("number of depth points: %w", err)
	}
	if n < 1 {
		return 0, lr.errorf("number of depth points must be positive, got %d", n)
	}
	return n, nil
}

func parseStructure(lr *lineReader, layers []Layer) error {
	line, ok := lr.nextNonEmpty()
	if !ok {
		return lr.eof("model structure")
	}
	if !strings.HasPrefix(strings.TrimSpace(line), "Model structure") {
		return lr.errorf("expected model structure, got %q", strings.TrimSpace(line))
	}

	if err := expectTableHeader(lr, "lgTau5"); err != nil {
		return err
	}
	for i := range layers {
		v, k, err := tableRow(lr, 8)
		if err != nil {
			return err
		}
		layers[i] = Layer{
			K: k, LgTauR: v[0], LgTau5: v[1], Depth: v[2], T: v[3],
			Pe: v[4], Pg: v[5], Prad: v[6], Pturb: v[7],
		}
	}

	if err := expectTableHeader(lr, "KappaRoss"); err != nil {
		return err
	}
	for i := range layers {
		v, k, err := tableRow(lr, 7)
		if err != nil {
			return err
		}
		if k != layers[i].K {
			return lr.errorf("depth index %d does not match first table index %d", k, layers[i].K)
		}
		l := &layers[i]
		l.KappaRoss, l.Density, l.Mu, l.Vconv, l.FconvF, l.RHOX = v[1], v[2], v[3], v[4], v[5], v[6]
	}
	return nil
}

func expectTableHeader(lr *lineReader, column string) error {
	line, ok := lr.nextNonEmpty()
	if !ok {
		return lr.eof("structure table header")
	}
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != "k" || !strings.Contains(line, column) {
		return lr.errorf("expected structure table header with %s, got %q", column, strings.TrimSpace(line))
	}
	return nil
}

// tableRow reads "k v1 ... vn".
func tableRow(lr *lineReader, n int) ([]float64, int, error) {
	line, ok := lr.nextNonEmpty()
	if !ok {
		return nil, 0, lr.eof("structure table row")
	}
	fields := strings.Fields(line)
	if len(fields) < n+1 {
		return nil, 0, lr.errorf("expected %d columns, got %d", n+1, len(fields))
	}
	k, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, 0, lr.errorf("depth index: %w", err)
	}
	values := make([]float64, n)
	for i := range values {
		values[i], err = strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, 0, lr.errorf("column %d: %w", i+2, err)
		}
	}
	return values, k, nil
}

func leadingFloats(line string, n int) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values", n)
	}
	out := make([]float64, n)
	for i := range out {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
