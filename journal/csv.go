package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/rustyeddy/airgraph/pkg/id"
)

var csvHeader = []string{"id", "time", "co2", "temperature", "humidity", "source"}

// CSV appends readings to a single flat file. Queries re-read the file; fine
// for a node that records one row a minute.
type CSV struct {
	path string
	w    *csv.Writer
	f    *os.File
}

func NewCSV(path string) (*CSV, error) {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(csvHeader); err != nil {
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
	}

	return &CSV{path: path, w: w, f: f}, nil
}

func (j *CSV) Record(r ReadingRecord) error {
	if r.ID == "" {
		r.ID = id.New()
	}
	if err := j.w.Write([]string{
		r.ID,
		r.Time.Format(time.RFC3339),
		f(r.CO2),
		f(r.TemperatureC),
		f(r.HumidityRH),
		r.Source,
	}); err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) Recent(n int) ([]ReadingRecord, error) {
	recs, err := j.readAll()
	if err != nil {
		return nil, err
	}
	if len(recs) > n {
		recs = recs[len(recs)-n:]
	}
	return recs, nil
}

func (j *CSV) Between(start, end time.Time) ([]ReadingRecord, error) {
	recs, err := j.readAll()
	if err != nil {
		return nil, err
	}
	var out []ReadingRecord
	for _, r := range recs {
		if !r.Time.Before(start) && r.Time.Before(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (j *CSV) readAll() ([]ReadingRecord, error) {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return nil, err
	}

	rf, err := os.Open(j.path)
	if err != nil {
		return nil, err
	}
	defer rf.Close()

	rows, err := csv.NewReader(rf).ReadAll()
	if err != nil {
		return nil, err
	}

	var out []ReadingRecord
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == "id" {
			continue
		}
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("journal csv: row %d has %d fields", i, len(row))
		}
		ts, err := time.Parse(time.RFC3339, row[1])
		if err != nil {
			return nil, fmt.Errorf("journal csv: row %d time: %w", i, err)
		}
		rec := ReadingRecord{ID: row[0], Time: ts, Source: row[5]}
		if rec.CO2, err = strconv.ParseFloat(row[2], 64); err != nil {
			return nil, fmt.Errorf("journal csv: row %d co2: %w", i, err)
		}
		if rec.TemperatureC, err = strconv.ParseFloat(row[3], 64); err != nil {
			return nil, fmt.Errorf("journal csv: row %d temperature: %w", i, err)
		}
		if rec.HumidityRH, err = strconv.ParseFloat(row[4], 64); err != nil {
			return nil, fmt.Errorf("journal csv: row %d humidity: %w", i, err)
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(a, b int) bool { return out[a].Time.Before(out[b].Time) })
	return out, nil
}

func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
