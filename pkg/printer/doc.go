// Package printer resolves the attributes of one printer into a Record.
//
// Input comes either from the command line flags or from one CSV row. Both
// are presented to Resolve as Values keyed by CSV column name, and both go
// through the same Schema, so defaults and required-field checks behave the
// same in single and batch mode.
//
// A Record is fully populated: every optional field carries its default and
// the address always has a scheme.
package printer
