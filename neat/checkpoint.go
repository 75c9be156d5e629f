package neat

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// snapshotVersion is bumped whenever PopulationSnapshot changes shape.
const snapshotVersion = 1

// PopulationSnapshot is the gob payload of a saved population.
type PopulationSnapshot struct {
	Version    int
	Population Population
}

// SavePopulation saves a population to a file.
// Uses gzip compression for smaller file size.
func SavePopulation(pop *Population, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file '%s': %w", filePath, err)
	}
	if err := WritePopulation(pop, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WritePopulation writes a gzip-compressed gob snapshot of pop to w.
func WritePopulation(pop *Population, w io.Writer) error {
	gzWriter := gzip.NewWriter(w)
	encoder := gob.NewEncoder(gzWriter)
	if err := encoder.Encode(PopulationSnapshot{Version: snapshotVersion, Population: *pop}); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to encode population data: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush population data: %w", err)
	}
	return nil
}

// LoadPopulation loads a population from a snapshot file.
func LoadPopulation(filePath string) (*Population, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file '%s': %w", filePath, err)
	}
	defer file.Close()
	return ReadPopulation(file)
}

// ReadPopulation reads a snapshot written by WritePopulation and validates it.
func ReadPopulation(r io.Reader) (*Population, error) {
	gzReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for snapshot: %w", err)
	}
	defer gzReader.Close()

	var snap PopulationSnapshot
	if err := gob.NewDecoder(gzReader).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode population data from snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d (want %d)", snap.Version, snapshotVersion)
	}
	if err := snap.Population.Validate(); err != nil {
		return nil, fmt.Errorf("invalid population in snapshot: %w", err)
	}
	return &snap.Population, nil
}
