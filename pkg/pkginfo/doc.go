// Package pkginfo renders and writes Munki nopkg descriptors for printers.
//
// A Template is a plist dictionary whose script fields contain uppercase
// placeholders (PRINTERNAME, ADDRESS, DRIVER, OPTIONS, LOCATION,
// DISPLAY_NAME). Render copies the template, overwrites its metadata from a
// printer.Record and substitutes the placeholders. The template itself is
// never modified, so one Template serves a whole batch.
//
// A Writer places the result in a Munki repo's pkgsinfo directory, or in the
// working directory when no repo is configured.
package pkginfo
