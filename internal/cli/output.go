package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"mediassist/internal/clinic"
	"mediassist/internal/desk"
	"mediassist/internal/editor"
	"mediassist/internal/listsync"
	"mediassist/internal/validation"
)

// notifier prints desk notifications: successes to stdout, failures to stderr.
type notifier struct {
	out, errOut io.Writer
}

func (n notifier) Success(msg string) { fmt.Fprintln(n.out, msg) }
func (n notifier) Failure(msg string) { fmt.Fprintln(n.errOut, msg) }

// promptConfirmer asks on the terminal. Anything but y or yes declines.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(_ context.Context, pr editor.Prompt) (bool, error) {
	fmt.Fprintf(p.out, "%s %s [y/N]: ", pr.Title, pr.Text)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (a *app) printErrors(errs validation.ErrorMap) {
	for _, f := range errs.Fields() {
		fmt.Fprintf(a.errOut, "%s: %s\n", f, errs[f])
	}
}

// writeTable prints rows with their display number and every editable field.
// Reference fields show the lookup label when one is known.
func writeTable[R clinic.Record](w io.Writer, page *desk.Page[R], rows []listsync.Row[R]) error {
	var zero R
	fields := clinic.Fields(zero)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\t"+strings.Join(fields, "\t"))
	for _, row := range rows {
		values, err := fieldValues(row.Record)
		if err != nil {
			return err
		}
		cells := make([]string, 0, len(fields)+1)
		cells = append(cells, strconv.Itoa(row.Seq))
		for _, f := range fields {
			cell := formatValue(values[f])
			if label := page.ReferenceLabel(row.Record, f); label != "" {
				cell = fmt.Sprintf("%s (#%s)", label, cell)
			}
			cells = append(cells, cell)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func fieldValues(rec any) (map[string]any, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// parseAssignments splits repeated Field=Value flags, keeping their order.
func parseAssignments(sets []string) ([][2]string, error) {
	pairs := make([][2]string, 0, len(sets))
	for _, s := range sets {
		field, value, ok := strings.Cut(s, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("--set %q: expected Field=Value", s)
		}
		pairs = append(pairs, [2]string{field, value})
	}
	return pairs, nil
}
