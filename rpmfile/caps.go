package rpmfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/moby/sys/capability"
)

// capByName maps the "cap_" prefixed names of all capabilities known to
// the capability package to their numbers.
var capByName = func() map[string]capability.Cap {
	known := capability.ListKnown()
	m := make(map[string]capability.Cap, len(known))
	for _, c := range known {
		m[capName(c)] = c
	}
	return m
}()

func capName(c capability.Cap) string {
	return "cap_" + c.String()
}

// maxCapBits is the number of bits in a capability set.
const maxCapBits = 64

// CapsError describes why a capability text was rejected.
type CapsError struct {
	Text   string
	Reason string
}

func (e *CapsError) Error() string {
	return fmt.Sprintf("invalid capability text %q: %s", e.Text, e.Reason)
}

// CapsAction is a single operator with its flags, e.g. "+ep".
type CapsAction struct {
	Op    byte
	Flags string
}

// CapsClause applies its actions to the listed capabilities.
// An empty Caps list stands for all capabilities.
type CapsClause struct {
	Caps    []capability.Cap
	Actions []CapsAction
}

// Caps is the parsed text form of a file capability set as understood
// by cap_from_text(3), e.g. "cap_net_bind_service,cap_net_raw=ep".
type Caps struct {
	Clauses []CapsClause
}

// ParseCaps parses the textual representation of file capabilities.
func ParseCaps(text string) (Caps, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Caps{}, &CapsError{Text: text, Reason: "empty capability set"}
	}

	caps := Caps{Clauses: make([]CapsClause, 0, len(fields))}
	for _, field := range fields {
		clause, reason := parseClause(field)
		if reason != "" {
			return Caps{}, &CapsError{Text: text, Reason: reason}
		}
		caps.Clauses = append(caps.Clauses, clause)
	}
	return caps, nil
}

func parseClause(field string) (CapsClause, string) {
	opIdx := strings.IndexAny(field, "=+-")
	if opIdx < 0 {
		return CapsClause{}, fmt.Sprintf("clause %q has no operator", field)
	}

	var clause CapsClause
	list := strings.ToLower(field[:opIdx])
	switch list {
	case "":
		// only "=" may omit the list, "+ep" is rejected by libcap as well
		if field[opIdx] != '=' {
			return CapsClause{}, fmt.Sprintf("clause %q must name capabilities for %q", field, field[opIdx])
		}
	case "all":
	default:
		for _, name := range strings.Split(list, ",") {
			c, err := lookupCap(name)
			if err != "" {
				return CapsClause{}, err
			}
			clause.Caps = append(clause.Caps, c)
		}
	}

	rest := field[opIdx:]
	for rest != "" {
		action := CapsAction{Op: rest[0]}
		rest = rest[1:]
		end := strings.IndexAny(rest, "=+-")
		if end < 0 {
			end = len(rest)
		}
		action.Flags, rest = rest[:end], rest[end:]

		for _, f := range action.Flags {
			if f != 'e' && f != 'i' && f != 'p' {
				return CapsClause{}, fmt.Sprintf("unknown flag %q", f)
			}
		}
		if action.Flags == "" && action.Op != '=' {
			return CapsClause{}, fmt.Sprintf("operator %q without flags", action.Op)
		}
		clause.Actions = append(clause.Actions, action)
	}
	return clause, ""
}

func lookupCap(name string) (capability.Cap, string) {
	if name == "" {
		return 0, "empty capability name"
	}
	if c, found := capByName[name]; found {
		return c, ""
	}
	n, err := strconv.Atoi(name)
	if err != nil || n < 0 || n >= maxCapBits {
		return 0, fmt.Sprintf("unknown capability %q", name)
	}
	return capability.Cap(n), ""
}

// Names returns the capability names of the clause, "all" for an empty list.
func (c CapsClause) Names() []string {
	if len(c.Caps) == 0 {
		return []string{"all"}
	}
	names := make([]string, 0, len(c.Caps))
	for _, n := range c.Caps {
		if _, known := capByName[capName(n)]; known {
			names = append(names, capName(n))
		} else {
			names = append(names, strconv.Itoa(int(n)))
		}
	}
	return names
}
