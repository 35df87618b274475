package domain

import "fmt"

type IdleReason uint8

const (
	IdleNone     IdleReason = 0
	IdleRead     IdleReason = 1 << 0
	IdleWrite    IdleReason = 1 << 1
	IdleDisabled IdleReason = 1 << 7 // timeout<=0 のとき
)

func (r IdleReason) Has(x IdleReason) bool { return r&x != 0 }

func (r IdleReason) String() string {
	switch r {
	case IdleNone:
		return "none"
	case IdleDisabled:
		return "disabled"
	case IdleRead:
		return "read"
	case IdleWrite:
		return "write"
	case IdleRead | IdleWrite:
		return "read|write"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(r))
	}
}
