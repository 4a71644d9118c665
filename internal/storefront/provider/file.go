package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
)

// FileProvider serves a canned catalog from a JSON file. Each row is moved
// onto the requested departure date, keeping its clock time and duration.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Name() string {
	return "file"
}

func (p *FileProvider) Search(ctx context.Context, c entity.SearchCriteria) ([]entity.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Clean(p.path))
	if err != nil {
		return nil, fmt.Errorf("read mock flights: %w", err)
	}

	rows, err := decodeFlights(data)
	if err != nil {
		return nil, err
	}

	flights := normalize(c, rows)
	for i := range flights {
		shiftToDate(&flights[i], c.DepartureDate)
	}
	return flights, nil
}

func shiftToDate(f *entity.Flight, date time.Time) {
	dep := f.DepartureTime
	y, m, d := date.Date()
	moved := time.Date(y, m, d, dep.Hour(), dep.Minute(), dep.Second(), 0, dep.Location())
	f.ArrivalTime = moved.Add(f.Duration())
	f.DepartureTime = moved
}
