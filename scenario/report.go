package scenario

import (
	"fmt"
	"io"

	"github.com/ducka/go-marbles/observe"
	"github.com/ducka/go-marbles/utils"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type jsonReport struct {
	Name          string                    `json:"name"`
	Messages      []Event                   `json:"messages"`
	Subscriptions map[string][]Subscription `json:"subscriptions"`
	Fingerprint   string                    `json:"fingerprint"`
}

// Report writes the result in the given format.
func Report(w io.Writer, result *Result, format Format) error {
	switch format {
	case FormatText:
		return reportText(w, result)
	case FormatJSON:
		return reportJSON(w, result)
	default:
		return errors.Errorf("unknown report format %q", format)
	}
}

func reportText(w io.Writer, result *Result) error {
	ew := &errWriter{w: w}

	ew.printf("scenario: %s\n", result.Name)
	ew.printf("messages:\n")
	if len(result.Messages) == 0 {
		ew.printf("  (none)\n")
	}
	for _, m := range result.Messages {
		ew.printf("  %5d  %s\n", m.Time, m.Notification)
	}

	ew.printf("subscriptions:\n")
	for _, name := range result.SourceNames() {
		subscriptions := result.Subscriptions[name]
		if len(subscriptions) == 0 {
			ew.printf("  %s  (none)\n", name)
			continue
		}
		for _, s := range subscriptions {
			ew.printf("  %s  %s\n", name, s)
		}
	}

	return ew.err
}

func reportJSON(w io.Writer, result *Result) error {
	report := jsonReport{
		Name:          result.Name,
		Messages:      toEvents(result.Messages),
		Subscriptions: make(map[string][]Subscription, len(result.Subscriptions)),
		Fingerprint:   result.Fingerprint(),
	}
	for name, subscriptions := range result.Subscriptions {
		report.Subscriptions[name] = toSubscriptions(subscriptions)
	}

	s, err := utils.NewJsonMarshaller().Serialize(report)
	if err != nil {
		return errors.Wrap(err, "failed to encode report")
	}

	_, err = fmt.Fprintln(w, s)
	return err
}

// Plot charts the emitted values as a step function of virtual time, from the first to the last
// recorded message. It returns an empty string when nothing was emitted.
func Plot(result *Result, width, height int) string {
	first, last := -1, -1
	for i, m := range result.Messages {
		if m.Notification.Kind() == observe.NextKind {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return ""
	}

	start := result.Messages[first].Time
	end := result.Messages[len(result.Messages)-1].Time
	if end == start {
		end = start + 1
	}

	series := make([]float64, 0, int(end-start)+1)
	current := float64(result.Messages[first].Notification.Value())
	next := first
	for t := start; t <= end; t++ {
		for next <= last && result.Messages[next].Time <= t {
			if result.Messages[next].Notification.Kind() == observe.NextKind {
				current = float64(result.Messages[next].Notification.Value())
			}
			next++
		}
		series = append(series, current)
	}

	return asciigraph.Plot(
		series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(fmt.Sprintf("%s: values over virtual time %d..%d", result.Name, start, end)),
	)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
