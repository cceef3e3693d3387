package table

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// ECSV is the astropy "enhanced CSV" text table format: a YAML header
// in comment lines followed by a CSV body.  It is the on-disk form
// used here in place of FITS.
//
// Supported datatypes are the numeric ones (stored as float64),
// string, and string-typed columns with a JSON float array subtype
// (stored as vector columns).

const ecsvMagic = "%ECSV"

type ecsvColumn struct {
	Name     string `yaml:"name"`
	Datatype string `yaml:"datatype"`
	Unit     string `yaml:"unit,omitempty"`
	Subtype  string `yaml:"subtype,omitempty"`
}

type ecsvHeader struct {
	Datatype  []ecsvColumn   `yaml:"datatype"`
	Delimiter string         `yaml:"delimiter,omitempty"`
	Meta      map[string]any `yaml:"meta,omitempty"`
}

// ReadECSV reads an ECSV table.
func ReadECSV(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	var head strings.Builder
	var body strings.Builder
	first := true
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			switch {
			case strings.HasPrefix(line, "#"):
				h := strings.TrimPrefix(line, "#")
				h = strings.TrimPrefix(h, " ")
				if first {
					if !strings.HasPrefix(h, ecsvMagic) {
						return nil, fmt.Errorf("table: not an ECSV file")
					}
					first = false
				} else {
					head.WriteString(h)
					if !strings.HasSuffix(h, "\n") {
						head.WriteByte('\n')
					}
				}
			case strings.TrimSpace(line) == "":
				// skip
			default:
				body.WriteString(line)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if first {
		return nil, fmt.Errorf("table: not an ECSV file")
	}

	var hdr ecsvHeader
	if err := yaml.Unmarshal([]byte(head.String()), &hdr); err != nil {
		return nil, fmt.Errorf("table: ECSV header: %w", err)
	}
	if len(hdr.Datatype) == 0 {
		return nil, fmt.Errorf("table: ECSV header has no datatype list")
	}

	cr := csv.NewReader(strings.NewReader(body.String()))
	if hdr.Delimiter != "" {
		d, _ := utf8.DecodeRuneInString(hdr.Delimiter)
		cr.Comma = d
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table: ECSV body: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table: ECSV body has no column name row")
	}
	// first record repeats the column names
	records = records[1:]

	t := New()
	for k, v := range hdr.Meta {
		t.Meta[k] = fmt.Sprint(v)
	}
	for j, ec := range hdr.Datatype {
		c := &Column{Name: ec.Name, Unit: ec.Unit}
		vector := strings.HasPrefix(ec.Subtype, "float") ||
			strings.HasPrefix(ec.Subtype, "int")
		for i, rec := range records {
			if j >= len(rec) {
				return nil, fmt.Errorf("table: row %d is short", i)
			}
			cell := rec[j]
			switch {
			case vector:
				// null elements mark missing values
				var pv []*float64
				if err := json.Unmarshal([]byte(cell), &pv); err != nil {
					return nil, fmt.Errorf("table: column %s row %d: %w",
						ec.Name, i, err)
				}
				v := make([]float64, len(pv))
				for k, p := range pv {
					if p == nil {
						v[k] = math.NaN()
					} else {
						v[k] = *p
					}
				}
				c.Vectors = append(c.Vectors, v)
			case ec.Datatype == "string":
				c.Strings = append(c.Strings, cell)
			default:
				v, err := parseECSVFloat(cell)
				if err != nil {
					return nil, fmt.Errorf("table: column %s row %d: %w",
						ec.Name, i, err)
				}
				c.Floats = append(c.Floats, v)
			}
		}
		if c.Len() == 0 {
			// keep column kind stable for empty tables
			switch {
			case vector:
				c.Vectors = [][]float64{}
			case ec.Datatype == "string":
				c.Strings = []string{}
			default:
				c.Floats = []float64{}
			}
		}
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func parseECSVFloat(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "nan" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}

// ReadECSVFile reads an ECSV table from a file.
func ReadECSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadECSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteECSV writes the table in ECSV format.  Vector columns are
// written as string columns with a float64 JSON subtype, matching
// what ReadECSV accepts.
func (t *Table) WriteECSV(w io.Writer) error {
	hdr := ecsvHeader{Meta: map[string]any{}}
	for k, v := range t.Meta {
		hdr.Meta[k] = v
	}
	if len(hdr.Meta) == 0 {
		hdr.Meta = nil
	}
	for _, c := range t.cols {
		ec := ecsvColumn{Name: c.Name, Unit: c.Unit, Datatype: "float64"}
		switch {
		case c.Strings != nil:
			ec.Datatype = "string"
		case c.Vectors != nil:
			ec.Datatype = "string"
			ec.Subtype = "float64[null]"
		}
		hdr.Datatype = append(hdr.Datatype, ec)
	}
	y, err := yaml.Marshal(&hdr)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s 1.0\n# ---\n", ecsvMagic)
	for _, line := range strings.Split(strings.TrimRight(string(y), "\n"), "\n") {
		fmt.Fprintf(bw, "# %s\n", line)
	}

	cw := csv.NewWriter(bw)
	if err := cw.Write(t.Names()); err != nil {
		return err
	}
	rec := make([]string, len(t.cols))
	for i := 0; i < t.Len(); i++ {
		for j, c := range t.cols {
			switch {
			case c.Floats != nil:
				rec[j] = formatECSVFloat(c.Floats[i])
			case c.Strings != nil:
				rec[j] = c.Strings[i]
			default:
				pv := make([]*float64, len(c.Vectors[i]))
				for k := range c.Vectors[i] {
					if !math.IsNaN(c.Vectors[i][k]) {
						pv[k] = &c.Vectors[i][k]
					}
				}
				b, err := json.Marshal(pv)
				if err != nil {
					return err
				}
				rec[j] = string(b)
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

func formatECSVFloat(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
