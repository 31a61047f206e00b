// Package shared provides common CLI flag definitions and utility functions
// used across tsize's command-line interface.
package shared

import (
	"dominicbreuker/tsize/pkg/config"
	"strings"

	"github.com/urfave/cli/v3"
)

const categoryCommon = "common"

// VerboseFlag is the name of the flag to enable verbose logging.
const VerboseFlag = "verbose"

// TimeoutFlag is the name of the flag to specify the per-byte read timeout in milliseconds.
const TimeoutFlag = "timeout"

// GetCommonFlags returns the CLI flags shared by all commands.
func GetCommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:     VerboseFlag,
			Aliases:  []string{"v"},
			Usage:    "Verbose logging, report why the size could not be determined",
			Category: categoryCommon,
			Value:    false,
			Required: false,
		},
		&cli.IntFlag{
			Name:     TimeoutFlag,
			Aliases:  []string{"t"},
			Usage:    "Time to wait for each byte of the terminal's reply, in milliseconds",
			Category: categoryCommon,
			Value:    1000, // 1 second default
			Required: false,
		},
	}
}

const categoryQuery = "query"

// DeviceFlag is the name of the flag to specify the terminal device.
const DeviceFlag = "device"

// FormatFlag is the name of the flag to select the output format.
const FormatFlag = "format"

// GetFormatDescription returns the help text for the output formats.
func GetFormatDescription() string {
	return strings.Join([]string{
		"Output format: none (default, print nothing), plain (ROWS COLS),",
		"sh (COLUMNS/LINES assignments for eval), csh (setenv commands for eval)",
	}, " ")
}

// GetQueryFlags returns the CLI flags specific to size queries.
func GetQueryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     DeviceFlag,
			Aliases:  []string{"d"},
			Usage:    "Terminal device to query, leave empty to use stdin",
			Category: categoryQuery,
			Value:    "",
			Required: false,
		},
		&cli.StringFlag{
			Name:     FormatFlag,
			Aliases:  []string{"f"},
			Usage:    GetFormatDescription(),
			Category: categoryQuery,
			Value:    string(config.FormatNone),
			Required: false,
		},
	}
}
