package announce

import (
	"errors"
	"fmt"
	"strings"

	"github.com/walles/headsetharry-sub000/pkg/types"
)

// ErrFormatContract is returned when a format template places a
// secondary-locale substitution anywhere but last. Speaking a fragment in
// another language mid-sentence would need the engine re-negotiated twice,
// so templates must keep foreign fragments at the end.
var ErrFormatContract = errors.New("secondary-locale substitution must be the final substitution")

// placeholder is the only substitution marker templates use
const placeholder = "%s"

// Arg is one substitution value. A zero Locale means the argument is
// spoken in the template's primary locale.
type Arg struct {
	Locale types.Locale
	Text   string
}

// Format expands a message template into an announcement. Literal template
// text is tagged with the primary locale; each argument is tagged with its
// own locale. Adjacent same-locale runs are merged, so the result has one
// segment per distinct locale run.
func Format(primary types.Locale, format string, args ...Arg) (types.Announcement, error) {
	if n := strings.Count(format, placeholder); n != len(args) {
		return nil, fmt.Errorf("template %q wants %d arguments, got %d", format, n, len(args))
	}

	for i, arg := range args {
		secondary := !arg.Locale.IsZero() && arg.Locale != primary
		if secondary && i != len(args)-1 {
			return nil, fmt.Errorf("%w: argument %d of %q", ErrFormatContract, i, format)
		}
	}

	var out types.Announcement
	rest := format
	for _, arg := range args {
		idx := strings.Index(rest, placeholder)
		out = out.Append(primary, rest[:idx])
		rest = rest[idx+len(placeholder):]

		locale := arg.Locale
		if locale.IsZero() {
			locale = primary
		}
		out = out.Append(locale, arg.Text)
	}
	out = out.Append(primary, rest)

	return out, nil
}
