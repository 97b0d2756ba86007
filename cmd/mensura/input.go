package main

import (
	"path/filepath"
	"strings"

	"github.com/arloliu/mensura/dataset"
)

const datasetExt = ".msr"

// loadSeries reads every series of a .msr file, or a single series named
// after a text file.
func loadSeries(path string) ([]dataset.Series, error) {
	if strings.EqualFold(filepath.Ext(path), datasetExt) {
		ds, err := dataset.ReadFile(path)
		if err != nil {
			return nil, err
		}
		log.Debug("Read %d series from %s", ds.Len(), path)

		return ds.Series(), nil
	}

	values, err := dataset.ReadValuesFile(path)
	if err != nil {
		return nil, err
	}
	log.Debug("Read %d values from %s", len(values), path)

	return []dataset.Series{{Name: seriesName(path), Values: values}}, nil
}

func loadAllSeries(paths []string) ([]dataset.Series, error) {
	var all []dataset.Series
	for _, p := range paths {
		series, err := loadSeries(p)
		if err != nil {
			return nil, err
		}
		all = append(all, series...)
	}

	return all, nil
}

// seriesName returns the file name without directory and extension.
func seriesName(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}
