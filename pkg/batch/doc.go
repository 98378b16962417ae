// Package batch reads printer definitions from a delimited text file.
//
// The first row is a header naming the columns; column names match the
// printer package constants. The delimiter is not configured: it is detected
// from a sample at the start of the file. Columns absent from the header, and
// short rows, leave the corresponding values empty so the printer defaults
// apply.
package batch
