/*
Package scrimage is a library for converting images to and from the SAM
Coupé MODE 4 SCREEN$ format.
*/
package scrimage

import (
	"errors"
	"io/ioutil"
	"log"
	"path/filepath"
	"runtime"
	"strings"
)

// Extension is the file extension used for screens
const Extension = ".scr"

// ErrMultipleOutput is returned when converting more than one file to a
// single output file
var ErrMultipleOutput = errors.New("scrimage: cannot use one output file for multiple inputs")

// Converter converts images and screens, optionally caching encoded screens
type Converter struct {
	db     *ScreenDB
	jobs   int
	logger *log.Logger
}

// New returns a Converter. If cache is not empty, encoded screens are cached
// in the database at that path. Batches are converted using up to jobs files
// at a time, defaulting to the number of CPUs if jobs is zero or less.
func New(cache string, jobs int, logger *log.Logger) (*Converter, error) {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	c := &Converter{
		jobs:   jobs,
		logger: logger,
	}

	if cache != "" {
		db, err := NewScreenDB(cache)
		if err != nil {
			return nil, err
		}
		c.db = db
	}

	return c, nil
}

// Close releases the cache database, if any
func (c *Converter) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func outputFilename(file, extension string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + extension
}
