// Package domain defines the error taxonomy of the respkv core.
//
// Every error produced by the decoder or the command interpreter is a
// *DomainError carrying one Kind from a closed set:
//
//   - Decode: unsupported_type, unterminated_frame, malformed_payload,
//     truncated, limit_exceeded
//   - Interpret: unsupported_value, unknown_command, bad_arguments,
//     store_unavailable
//
// Callers branch with errors.Is against the exported sentinels
// (errors.Is(err, domain.ErrTruncated)) or with KindOf.
package domain
