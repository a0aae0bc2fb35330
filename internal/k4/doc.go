// Package k4 decodes Kawai K4 System Exclusive payloads.
//
// # Header
//
// Every K4 payload (the bytes sysex.Parse leaves after the manufacturer ID)
// starts with a 6-byte header:
//
//	[0] channel      0-15
//	[1] function     see Function
//	[2] group        0x00 (synthesizer)
//	[3] machine ID   0x04 (K4)
//	[4] substatus 1  0/1 internal, 2/3 external (card)
//	[5] substatus 2  patch number
//
// Header.Identify classifies a header by cardinality (one patch or a
// block), kind (single, multi, drum, effect, all) and locality (INT / EXT)
// using an ordered rule table; the first matching rule wins. Headers that
// match no rule get the default classification, which is not an error.
//
// # Block Dumps
//
// An all-patch data dump holds, back to back:
//
//	64 singles × 131 bytes
//	64 multis  ×  77 bytes
//	 1 drum    × 682 bytes
//	32 effects ×  35 bytes
//
// The first 10 bytes of each single and multi record are its ASCII name.
// ExtractPatchNames returns them in on-wire order; PatchLabel turns an
// index into the panel label ("A-1" ... "D-16").
//
// # Construction
//
// BuildParameterSend and BuildDumpRequest assemble the messages a librarian
// sends to the K4. Both validate their arguments and return a
// *ValidationError for out-of-range values.
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use.
package k4
