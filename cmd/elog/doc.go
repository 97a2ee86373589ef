// Command elog drives an interception pipeline from the command line: emit a
// single event through the configured sink and interceptors, load-test a
// pipeline, or manage its configuration file.
package main
