// Command nsorphase loads NSOR acquisitions, computes their spectrum and
// applies zero-fill and phase correction.
//
// Usage:
//
//	nsorphase [global flags] <command> [flags] [args]
//
// Examples:
//
//	nsorphase synth --freq 1000 --phase 40 run.bin
//	nsorphase inspect run.bin
//	nsorphase autophase --freq-cursor "990 1010" run.bin
//	nsorphase spectrum --zero-fill x2 --auto-phase -o csv run.bin
//	nsorphase params set freq_cursor 990 1010
//	nsorphase shell run.bin
package main

func main() {
	Execute()
}
