package ansi

import "fmt"

// c0Names holds the mnemonics of the 7-bit controls, indexed by byte.
var c0Names = [0x20]string{
	"NUL", "SOH", "STX", "ETX", "EOT", "ENQ", "ACK", "BEL",
	"BS", "HT", "LF", "VT", "FF", "CR", "SO", "SI",
	"DLE", "DC1", "DC2", "DC3", "DC4", "NAK", "SYN", "ETB",
	"CAN", "EM", "SUB", "ESC", "FS", "GS", "RS", "US",
}

// String formats a byte for logs: mnemonic, hex value and quoted rune.
func String(val uint8) string {
	if name := Name(val); name != "" {
		return fmt.Sprintf("%s (0x%02X) (%q)", name, val, rune(val))
	}
	return fmt.Sprintf("0x%02X (%q)", val, rune(val))
}

// Name returns the mnemonic of a control byte, or the empty string when the
// byte is not a control.
func Name(val uint8) string {
	switch {
	case IsC0(val):
		return c0Names[val]
	case val == C0.DEL:
		return "DEL"
	default:
		return ""
	}
}
