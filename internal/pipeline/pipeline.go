package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/deadlyengineer/lazyseq"
)

// Lines returns a sequence of the lines read from r.
// r is read in the background as fast as possible; lines are buffered until they are consumed.
func Lines(r io.Reader) *lazyseq.Seq[string] {
	w, lines := lazyseq.NewChannel[string]()

	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			w.Push(scanner.Text())
		}

		if err := scanner.Err(); err != nil {
			w.Fail(fmt.Errorf("read lines: %w", err))
			return
		}

		w.Close()
	}()

	return lines
}

// Merge returns a sequence of the lines of all inputs, in the order they are read.
func Merge(prefix bool, inputs ...io.Reader) *lazyseq.Seq[string] {
	sources := make([]lazyseq.Source[string], len(inputs))
	for i, input := range inputs {
		sources[i] = Lines(input)
	}

	return lazyseq.Map(lazyseq.Join(sources...), func(_ context.Context, line lazyseq.Joined[string], _ uint64) (string, error) {
		if prefix {
			return strconv.Itoa(line.Index) + "\t" + line.Value, nil
		}

		return line.Value, nil
	})
}

// Build applies the stages of cfg to lines.
func Build(cfg *Config, lines *lazyseq.Seq[string]) (*lazyseq.Seq[string], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, stage := range cfg.Stages {
		lines = stage.apply(lines)
	}

	return lines, nil
}

// Run merges inputs, processes them according to cfg, and writes the resulting lines to out.
func Run(ctx context.Context, cfg *Config, out io.Writer, inputs ...io.Reader) error {
	lines, err := Build(cfg, Merge(cfg.Prefix, inputs...))
	if err != nil {
		return err
	}

	buf := bufio.NewWriter(out)

	err = lines.On(ctx, func(_ context.Context, line string, index uint64) error {
		slog.Debug("line", "index", index, "length", len(line))

		_, err := fmt.Fprintln(buf, line)
		return err
	})
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	return buf.Flush()
}

// CountRuns writes the key and length of every run of consecutive lines of in
// sharing the same whitespace-separated field.
// Lines with fewer fields have an empty key.
func CountRuns(ctx context.Context, field int, out io.Writer, in io.Reader) error {
	runs := lazyseq.GroupBy(Lines(in), func(_ context.Context, line string, _ uint64) (string, error) {
		fields := strings.Fields(line)
		if field < 0 || field >= len(fields) {
			return "", nil
		}

		return fields[field], nil
	})

	return runs.On(ctx, func(ctx context.Context, run lazyseq.Group[string, string], _ uint64) error {
		count, err := lazyseq.Count(ctx, run.Items)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(out, "%s\t%d\n", run.Key, count)

		return err
	})
}

func (s Stage) apply(lines *lazyseq.Seq[string]) *lazyseq.Seq[string] {
	switch {
	case s.Grep != "":
		re := regexp.MustCompile(s.Grep)

		return lines.Filter(func(_ context.Context, line string, _ uint64) (bool, error) {
			return re.MatchString(line), nil
		})

	case s.Dedupe:
		return lines.Dedupe(nil)

	case s.Limit > 0:
		return lines.Limit(s.Limit)

	case s.Skip > 0:
		return lines.Skip(s.Skip)

	case s.Sort == SortAsc:
		return lines.Sort(lazyseq.Ascending[string]())

	case s.Sort == SortDesc:
		return lines.Sort(lazyseq.Descending[string]())

	case s.Upper:
		return lazyseq.Map(lines, lazyseq.FuncMapper(strings.ToUpper))

	case s.Lower:
		return lazyseq.Map(lines, lazyseq.FuncMapper(strings.ToLower))

	case s.Batch != nil:
		sep := s.Batch.Separator

		return lazyseq.Map(lazyseq.Batch(lines, s.Batch.Size), lazyseq.FuncMapper(func(batch []string) string {
			return strings.Join(batch, sep)
		}))

	default:
		return lines
	}
}
