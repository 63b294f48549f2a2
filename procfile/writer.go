package procfile

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/Gthulhu/schedsim/domain"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

type Format string

const (
	FormatLines Format = "lines"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatLines, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatLines, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.Errorf("unsupported output format %q", s)
}

// ContentType is the HTTP media type of an encoded document
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// FormatResult renders queue:algorithm:wt_1:...:wt_n:avg with a two decimal average
func FormatResult(r domain.ScheduleResult) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(r.QueueID))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(int(r.Algorithm)))
	for _, wt := range r.WaitingTimes {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(wt))
	}
	b.WriteByte(':')
	b.WriteString(strconv.FormatFloat(r.AverageWaiting, 'f', 2, 64))
	return b.String()
}

// WriteLines writes one canonical line per result, in the given order
func WriteLines(w io.Writer, results []domain.ScheduleResult) error {
	for _, r := range results {
		if _, err := io.WriteString(w, FormatResult(r)+"\n"); err != nil {
			return errors.Wrap(err, "write result line")
		}
	}
	return nil
}

// Encode writes run in format. The lines format carries only the results.
func Encode(w io.Writer, format Format, run *domain.SimulationRun) error {
	switch format {
	case FormatLines, "":
		return WriteLines(w, run.Results)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(run), "encode json")
	case FormatYAML:
		data, err := yaml.Marshal(run)
		if err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		_, err = w.Write(data)
		return errors.Wrap(err, "write yaml")
	}
	return errors.Errorf("unsupported output format %q", format)
}

// WriteFile encodes run fully in memory before uploading it, so a failed
// encode never leaves a partial file behind.
func WriteFile(ctx context.Context, fs afs.Service, url string, format Format, run *domain.SimulationRun) error {
	var buf bytes.Buffer
	if err := Encode(&buf, format, run); err != nil {
		return err
	}
	if err := fs.Upload(ctx, url, file.DefaultFileOsMode, &buf); err != nil {
		return errors.Wrapf(err, "write output file %s", url)
	}
	return nil
}
