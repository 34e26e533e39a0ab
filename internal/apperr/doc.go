// Package apperr maps failures of the analysis pipeline to a stable
// taxonomy of error kinds and process exit codes.
//
// Every abort that reaches the command line carries a Kind. The kind
// decides the exit code and the name used in the machine-readable
// error envelope, so automation can branch on either value:
//
//	{"error": {"code": 3, "name": "FETCH_ERROR", "message": "..."}}
package apperr
