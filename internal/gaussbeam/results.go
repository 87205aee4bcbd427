package gaussbeam

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Column names of the result table; the plotting side depends on them verbatim.
const (
	ColW0        = "w0 (microns)"
	ColROC       = "ROC (mm)"
	ColFocal     = "Focal Length (mm)"
	ColDLens     = "d_lens (mm)"
	ColWaist     = "Waist (microns)"
	ColWavefront = "Wavefront (m)"
	ErrorToken   = "Error"
)

var Header = []string{ColW0, ColROC, ColFocal, ColDLens, ColWaist, ColWavefront}

// ResultRecord is one row of the table, in table units (µm, mm, mm, mm, µm, 1/m).
type ResultRecord struct {
	W0          Real
	ROC         Real
	FocalLength Real
	DLens       Real
	Waist       Real
	Wavefront   Real
	Failed      bool
}

// Key identifies a row. Failed rows share DLens = 0 and are told apart by Failed.
type Key struct {
	W0, ROC, FocalLength, DLens Real
	Failed                      bool
}

func (r ResultRecord) Key() Key {
	if r.Failed {
		return Key{W0: r.W0, ROC: r.ROC, FocalLength: r.FocalLength, Failed: true}
	}
	return Key{W0: r.W0, ROC: r.ROC, FocalLength: r.FocalLength, DLens: r.DLens}
}

func formatReal(x Real) string { return strconv.FormatFloat(x, 'g', -1, 64) }

func (r ResultRecord) row() []string {
	if r.Failed {
		return []string{formatReal(r.W0), formatReal(r.ROC), formatReal(r.FocalLength), ErrorToken, ErrorToken, ErrorToken}
	}
	return []string{
		formatReal(r.W0), formatReal(r.ROC), formatReal(r.FocalLength),
		formatReal(r.DLens), formatReal(r.Waist), formatReal(r.Wavefront),
	}
}

// Store is a CSV result table with dedup-on-write.
// The mutex serialises appends within one process only; separate processes writing
// the same file can still race between the key scan and the append.
type Store struct {
	Path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) ensureHeader() error {
	st, err := os.Stat(s.Path)
	if err == nil && st.Size() > 0 {
		return nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// columns maps header names to their positions.
type columns map[string]int

func readColumns(r *csv.Reader) (columns, error) {
	head, err := r.Read()
	if err != nil {
		return nil, err
	}
	cols := make(columns, len(head))
	for i, h := range head {
		cols[h] = i
	}
	for _, h := range Header {
		if _, ok := cols[h]; !ok {
			return nil, fmt.Errorf("result table missing column %q", h)
		}
	}
	return cols, nil
}

func (c columns) float(row []string, name string) (Real, bool) {
	i := c[name]
	if i >= len(row) {
		return 0, false
	}
	v, err := strconv.ParseFloat(row[i], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c columns) isError(row []string, name string) bool {
	i := c[name]
	return i < len(row) && row[i] == ErrorToken
}

// parseKey returns false for malformed rows.
func (c columns) parseKey(row []string) (Key, bool) {
	var k Key
	var ok bool
	if k.W0, ok = c.float(row, ColW0); !ok {
		return k, false
	}
	if k.ROC, ok = c.float(row, ColROC); !ok {
		return k, false
	}
	if k.FocalLength, ok = c.float(row, ColFocal); !ok {
		return k, false
	}
	if c.isError(row, ColDLens) {
		k.Failed = true
		return k, true
	}
	if k.DLens, ok = c.float(row, ColDLens); !ok {
		return k, false
	}
	return k, true
}

func (c columns) parseRecord(row []string) (ResultRecord, bool) {
	k, ok := c.parseKey(row)
	if !ok {
		return ResultRecord{}, false
	}
	rec := ResultRecord{W0: k.W0, ROC: k.ROC, FocalLength: k.FocalLength, DLens: k.DLens, Failed: k.Failed}
	if rec.Failed {
		return rec, true
	}
	if rec.Waist, ok = c.float(row, ColWaist); !ok {
		return rec, false
	}
	if rec.Wavefront, ok = c.float(row, ColWavefront); !ok {
		return rec, false
	}
	return rec, true
}

// scan walks every row of the table; a missing or empty file yields nothing.
func (s *Store) scan(fn func(cols columns, row []string)) error {
	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1
	cols, err := readColumns(r)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			continue
		}
		if err != nil {
			return err
		}
		fn(cols, row)
	}
}

func (s *Store) keys() (map[Key]struct{}, error) {
	existing := make(map[Key]struct{})
	err := s.scan(func(cols columns, row []string) {
		if k, ok := cols.parseKey(row); ok {
			existing[k] = struct{}{}
		}
	})
	return existing, err
}

// Keys returns the set of keys currently in the table; malformed rows are skipped.
func (s *Store) Keys() (map[Key]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys()
}

// terminateLastLine adds the newline a hand-edited table may lack, so the next row
// starts on its own line.
func terminateLastLine(f *os.File) error {
	st, err := f.Stat()
	if err != nil || st.Size() == 0 {
		return err
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, st.Size()-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		return nil
	}
	_, err = f.Write([]byte{'\n'})
	return err
}

// AppendIfAbsent writes rec unless a row with the same key is already present.
// It reports whether a row was written.
func (s *Store) AppendIfAbsent(rec ResultRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureHeader(); err != nil {
		return false, err
	}
	existing, err := s.keys()
	if err != nil {
		return false, err
	}
	if _, ok := existing[rec.Key()]; ok {
		DebugLog("%s: key %+v already present", s.Path, rec.Key())
		return false, nil
	}
	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		return false, err
	}
	if err := terminateLastLine(f); err != nil {
		f.Close()
		return false, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(rec.row()); err != nil {
		f.Close()
		return false, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return false, err
	}
	return true, f.Close()
}

// Load returns every well-formed row in file order.
func (s *Store) Load() ([]ResultRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ResultRecord
	err := s.scan(func(cols columns, row []string) {
		if rec, ok := cols.parseRecord(row); ok {
			out = append(out, rec)
		}
	})
	return out, err
}
