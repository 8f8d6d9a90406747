// Package resp implements the RESP subset spoken by respkv.
//
// Decoding works on byte slices rather than a reader: Decode returns one
// value and the number of bytes it used, so a connection can keep a pending
// buffer, decode as many frames as it holds, and keep the tail of a frame
// that was split across reads.
//
// Supported request framing:
//
//	*<n>\r\n ...       array (may nest)
//	+<text>\r\n        simple string
//	:<digits>\r\n      integer
//	$<len>\r\n<bytes>\r\n  bulk string
//
// Simple and bulk strings both decode to Text.
package resp
