package tc

// Action is a TC classifier/action verdict, returned in r0.
type Action int32

const (
	Unspec     Action = -1
	Ok         Action = 0
	Reclassify Action = 1
	Shot       Action = 2
	Pipe       Action = 3
	Stolen     Action = 4
	Queued     Action = 5
	Repeat     Action = 6
	Redirect   Action = 7
)

func (a Action) String() string {
	switch a {
	case Unspec:
		return "TC_ACT_UNSPEC"
	case Ok:
		return "TC_ACT_OK"
	case Reclassify:
		return "TC_ACT_RECLASSIFY"
	case Shot:
		return "TC_ACT_SHOT"
	case Pipe:
		return "TC_ACT_PIPE"
	case Stolen:
		return "TC_ACT_STOLEN"
	case Queued:
		return "TC_ACT_QUEUED"
	case Repeat:
		return "TC_ACT_REPEAT"
	case Redirect:
		return "TC_ACT_REDIRECT"
	default:
		return "TC_ACT_UNKNOWN"
	}
}
