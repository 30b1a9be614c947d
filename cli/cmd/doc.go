// Package cmd provides the sigwave subcommands: patch, emit, and check.
//
// Every command runs the same pipeline (load configuration, expand the
// environment, parse and expand the group templates, link and number the
// forest); they differ only in what they do with the result.
package cmd
