// Package procfile reads process descriptor files and writes simulation results.
package procfile

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/Gthulhu/schedsim/domain"
	"github.com/Gthulhu/schedsim/pkg/logger"
	"github.com/pkg/errors"
	"github.com/viant/afs"
)

const fieldCount = 4

// LineError describes an input line that was skipped
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e LineError) Error() string {
	return "line " + strconv.Itoa(e.Line) + " " + strconv.Quote(e.Text) + ": " + e.Err.Error()
}

// Reader parses descriptor files. Lines whose queue id reaches MaxQueueID are
// skipped like malformed ones; zero means domain.DefaultMaxQueueID.
type Reader struct {
	MaxQueueID int
}

// ParseLine decodes a burst:priority:arrival:queue descriptor
func (rd Reader) ParseLine(line string) (domain.ProcessSpec, error) {
	fields := strings.Split(strings.TrimSpace(line), ":")
	if len(fields) != fieldCount {
		return domain.ProcessSpec{}, errors.Errorf("expected %d fields, got %d", fieldCount, len(fields))
	}
	values := make([]int, fieldCount)
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return domain.ProcessSpec{}, errors.Wrapf(err, "field %d", i+1)
		}
		values[i] = v
	}
	spec := domain.ProcessSpec{
		BurstTime:   values[0],
		Priority:    values[1],
		ArrivalTime: values[2],
		QueueID:     values[3],
	}
	if err := spec.Validate(); err != nil {
		return domain.ProcessSpec{}, err
	}
	if err := spec.ValidateQueue(rd.MaxQueueID); err != nil {
		return domain.ProcessSpec{}, err
	}
	return spec, nil
}

// Parse reads descriptors one per line. Blank lines are ignored; malformed
// lines are logged, returned in skipped and do not consume a process id.
func (rd Reader) Parse(ctx context.Context, r io.Reader) (specs []domain.ProcessSpec, skipped []LineError, err error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		spec, perr := rd.ParseLine(text)
		if perr != nil {
			lineErr := LineError{Line: lineNo, Text: text, Err: perr}
			logger.Logger(ctx).Warn().Err(perr).Int("line", lineNo).Msgf("invalid line format: %s", text)
			skipped = append(skipped, lineErr)
			continue
		}
		specs = append(specs, spec)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "scan input")
	}
	return specs, skipped, nil
}

// ReadFile downloads url (a local path or any afs supported URL) and parses it
func (rd Reader) ReadFile(ctx context.Context, fs afs.Service, url string) ([]domain.ProcessSpec, []LineError, error) {
	data, err := fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open input file %s", url)
	}
	return rd.Parse(ctx, bytes.NewReader(data))
}
