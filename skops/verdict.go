package skops

// Verdict is the shared drop/pass result returned by SK_LOOKUP and by
// SK_SKB/SK_MSG stream programs.
type Verdict int32

const (
	Drop Verdict = 0
	Pass Verdict = 1
)

func (v Verdict) String() string {
	if v == Pass {
		return "SK_PASS"
	}
	return "SK_DROP"
}
