// Package command holds the fixed table of commands a pipeline can be built from.
//
// Every command is a factory: it checks the argument tokens it is given against an explicit list of accepted
// shapes and either returns a ready to run Stage or fails. A Stage never fails once built.
//
// Two kinds of stages exist. Transform stages are pure functions over a line sequence. Notify stages leave the
// lines untouched and carry a Document that the executor hands to an external notifier.
package command
