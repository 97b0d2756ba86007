package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/mensura/errs"
)

// ReadValues reads whitespace-separated numbers, any number per line.
// Blank lines are skipped and '#' starts a comment that runs to the end of
// the line.
//
// A token that is not a number returns an error wrapping
// errs.ErrMalformedInput that names the line.
func ReadValues(r io.Reader) ([]float64, error) {
	var values []float64
	err := scanFields(r, func(line int, fields []string) error {
		for _, field := range fields {
			v, err := parseValue(line, field)
			if err != nil {
				return err
			}
			values = append(values, v)
		}

		return nil
	})

	return values, err
}

// ReadValuesFile reads the values of the text file at path.
func ReadValuesFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open values: %w", err)
	}
	defer f.Close()

	values, err := ReadValues(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return values, nil
}

// ReadPairs reads two columns, x and y, one pair per line. Comments and
// blank lines are skipped as in ReadValues. A line with a different number
// of fields is malformed.
func ReadPairs(r io.Reader) (x, y []float64, err error) {
	err = scanFields(r, func(line int, fields []string) error {
		if len(fields) != 2 {
			return fmt.Errorf("%w: line %d: want 2 columns, got %d", errs.ErrMalformedInput, line, len(fields))
		}

		xv, err := parseValue(line, fields[0])
		if err != nil {
			return err
		}
		yv, err := parseValue(line, fields[1])
		if err != nil {
			return err
		}

		x = append(x, xv)
		y = append(y, yv)

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return x, y, nil
}

// ReadPairsFile reads the two-column text file at path.
func ReadPairsFile(path string) (x, y []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open pairs: %w", err)
	}
	defer f.Close()

	x, y, err = ReadPairs(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return x, y, nil
}

func scanFields(r io.Reader, fn func(line int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++

		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}

		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		if err := fn(line, fields); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read line %d: %w", line+1, err)
	}

	return nil
}

func parseValue(line int, field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %q is not a number", errs.ErrMalformedInput, line, field)
	}

	return v, nil
}
