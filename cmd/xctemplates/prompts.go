// Package main provides the entry point for the xctemplates CLI.
package main

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neoighodaro/xctemplates/internal/output"
)

// confirm asks a yes/no question on the command's input stream.
// Anything but y/yes declines.
func confirm(cmd *cobra.Command, printer *output.Printer, prompt string) bool {
	printer.Print("%s [y/N] ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// choose presents numbered options and reads a selection.
// Returns the zero-based index, or -1 for cancel or unreadable input.
func choose(cmd *cobra.Command, printer *output.Printer, prompt string, options []string) int {
	for i, opt := range options {
		printer.Println("  " + strconv.Itoa(i+1) + ") " + opt)
	}
	printer.Print("%s [1-%d, 0 to cancel] ", prompt, len(options))

	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimSpace(response))
	if err != nil || n < 1 || n > len(options) {
		return -1
	}
	return n - 1
}
