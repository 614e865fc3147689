package skops

import "fmt"

// SectionSkLookup returns the SK_LOOKUP program's ELF section, which carries
// no name suffix: the kernel attaches at most one SK_LOOKUP program per
// network namespace.
func SectionSkLookup() string {
	return "sk_lookup"
}

// SectionSocket returns a socket-filter program's ELF section:
// "socket" or "socket/<name>".
func SectionSocket(name string) string {
	if name == "" {
		return "socket"
	}
	return fmt.Sprintf("socket/%s", name)
}

// SectionStreamParser returns an SK_SKB stream-parser program's ELF
// section: "sk_skb/stream_parser" or "sk_skb/stream_parser/<name>".
func SectionStreamParser(name string) string {
	if name == "" {
		return "sk_skb/stream_parser"
	}
	return fmt.Sprintf("sk_skb/stream_parser/%s", name)
}

// SectionStreamVerdict returns an SK_SKB stream-verdict program's ELF
// section: "sk_skb/stream_verdict" or "sk_skb/stream_verdict/<name>".
func SectionStreamVerdict(name string) string {
	if name == "" {
		return "sk_skb/stream_verdict"
	}
	return fmt.Sprintf("sk_skb/stream_verdict/%s", name)
}

// SectionSkMsg returns an SK_MSG program's ELF section: "sk_msg" or
// "sk_msg/<name>".
func SectionSkMsg(name string) string {
	if name == "" {
		return "sk_msg"
	}
	return fmt.Sprintf("sk_msg/%s", name)
}
