package lifelike

import (
	"fmt"
	"strconv"
	"strings"
)

// Mask is a set of neighbor counts in [0, 8], bit n set when count n is in
// the set.
type Mask uint16

const maxCount = 8

// Has reports whether count n is in the set.
func (m Mask) Has(n int) bool {
	return n >= 0 && n <= maxCount && m&(1<<n) != 0
}

// Counts lists the member counts in ascending order.
func (m Mask) Counts() []int {
	var out []int
	for n := 0; n <= maxCount; n++ {
		if m.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// Flags expands the set into one float per count, 1 for members. Shaders
// index these with a loop counter.
func (m Mask) Flags() []float32 {
	out := make([]float32, maxCount+1)
	for n := range out {
		if m.Has(n) {
			out[n] = 1
		}
	}
	return out
}

func (m Mask) digits() string {
	var b strings.Builder
	for _, n := range m.Counts() {
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// ParseDigits reads a run of count digits such as "23".
func ParseDigits(s string) (Mask, error) {
	var m Mask
	for _, r := range s {
		if r < '0' || r > '0'+maxCount {
			return 0, fmt.Errorf("invalid neighbor count %q in %q", r, s)
		}
		m |= 1 << (r - '0')
	}
	return m, nil
}

// ParseList reads a comma-separated list of counts such as "2,3".
func ParseList(s string) (Mask, error) {
	var m Mask
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > maxCount {
			return 0, fmt.Errorf("invalid neighbor count %q", part)
		}
		m |= 1 << n
	}
	return m, nil
}

// ParseRule reads a rulestring in B/S notation, e.g. "B3/S23". Either part
// may be empty ("B3/S") and case is ignored.
func ParseRule(s string) (birth, survive Mask, err error) {
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("rulestring %q: want B<digits>/S<digits>", s)
	}
	for _, p := range parts {
		var target *Mask
		switch {
		case strings.HasPrefix(p, "B"):
			target = &birth
		case strings.HasPrefix(p, "S"):
			target = &survive
		default:
			return 0, 0, fmt.Errorf("rulestring %q: part %q must start with B or S", s, p)
		}
		m, err := ParseDigits(p[1:])
		if err != nil {
			return 0, 0, fmt.Errorf("rulestring %q: %w", s, err)
		}
		*target = m
	}
	return birth, survive, nil
}

// FormatRule renders masks in B/S notation.
func FormatRule(birth, survive Mask) string {
	return "B" + birth.digits() + "/S" + survive.digits()
}
