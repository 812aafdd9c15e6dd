// Package pipeline parses and runs line pipelines such as `sort desc | uniq`.
//
// A pipeline is written as commands separated by `|`. Each command is resolved in the command table and bound to
// its arguments when the text is parsed, so every error is reported by Parse and a parsed pipeline always runs to
// completion. The first failing stage aborts the parse, no partial pipeline is ever returned.
//
// Running a pipeline is a left fold: every stage receives the lines produced by the previous one. Stages such as
// `help` publish a document through a Notifier. The notification is dispatched on its own goroutine and never
// awaited, the lines flowing through the pipeline do not depend on it.
//
// Execute runs a pipeline once. A Runner runs the same pipeline many times, possibly concurrently, and reports
// every stage to observers such as the measure and drawer packages.
package pipeline
