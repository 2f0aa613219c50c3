// Package logger is a standardized event logging framework for the shell.
//
// Events are written as newline delimited protobuf JSON (protojson encoded
// google.protobuf.Struct messages) so they can be tailed, grepped or loaded
// into other tools.
package logger
