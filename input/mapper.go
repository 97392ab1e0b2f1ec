package input

import (
	"strings"

	"github.com/clktmr/rukaibox/config"
)

// Logical is the set of logical buttons held during one sample.
type Logical uint32

// Map resolves every logical button through m. StickUp is held if either of
// its two slots is pressed, since the mapping table has no way to express an
// OR.
func Map(m *config.ButtonMapping, b Buttons) (l Logical) {
	for i, p := range m {
		if !b.Pressed(p) {
			continue
		}
		lb := config.LogicalButton(i)
		if lb == config.StickUpAlt {
			lb = config.StickUp
		}
		l |= 1 << lb
	}
	return
}

func (l Logical) Held(b config.LogicalButton) bool {
	return l&(1<<b) != 0
}

func (l Logical) String() string {
	var sb strings.Builder
	for i := 0; i < config.NumLogicalButtons; i++ {
		b := config.LogicalButton(i)
		if l.Held(b) {
			if sb.Len() != 0 {
				sb.WriteString(" + ")
			}
			sb.WriteString(b.String())
		}
	}
	return sb.String()
}
