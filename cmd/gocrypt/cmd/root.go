// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"hermannm.dev/devlog"
)

var logLevel slog.LevelVar

var rootCmd = &cobra.Command{
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Use:   "gocrypt",
	Short: "Streaming block-cipher and integrity-primitive toolkit",
	Long: `gocrypt exercises the gocrypt library's streaming AES-256-CBC and
XTEA encryption, RFC-2104 HMAC, and bit-serial CRC codecs against real
files from the command line.
`,
}

// Execute runs the root command; child commands are attached by each
// file's init(). This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	slog.SetDefault(slog.New(devlog.NewHandler(os.Stdout, &devlog.Options{
		Level: &logLevel,
	})))

	rootCmd.PersistentFlags().Bool("debug", false, "Print debug-level log output")
}

func applyDebugFlag(cmd *cobra.Command) {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		logLevel.Set(slog.LevelDebug)
	}
}
