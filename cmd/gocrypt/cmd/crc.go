// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package cmd

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inesonic/gocrypt"
)

var crcCmd = &cobra.Command{
	Use:   "crc",
	Short: "Compute a systematic bit-serial CRC over a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyDebugFlag(cmd)
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		inPath := viper.GetString("in")
		width := viper.GetInt("width")
		polyStr := viper.GetString("polynomial")

		if inPath == "" || polyStr == "" {
			return fmt.Errorf("--in and --polynomial are both required")
		}
		polynomial, err := strconv.ParseUint(polyStr, 0, 64)
		if err != nil {
			return fmt.Errorf("parsing --polynomial: %w", err)
		}
		data, err := os.ReadFile(inPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", inPath, err)
		}

		crc, err := gocrypt.SystematicCRC(width, polynomial, data)
		if err != nil {
			return err
		}

		slog.Info("computed crc", "in", inPath, "width", width)
		fmt.Printf("%0*x\n", width/4, crc)
		return nil
	},
}

var crcDecodeCmd = &cobra.Command{
	Use:   "crc-decode",
	Short: "Recover a message from a non-systematic CRC ensemble",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyDebugFlag(cmd)
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		inPath := viper.GetString("in")
		polyStr := viper.GetString("polynomial")

		if inPath == "" || polyStr == "" {
			return fmt.Errorf("--in and --polynomial are both required")
		}
		polynomial, err := strconv.ParseUint(polyStr, 0, 64)
		if err != nil {
			return fmt.Errorf("parsing --polynomial: %w", err)
		}
		data, err := os.ReadFile(inPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", inPath, err)
		}

		quotient, residue := gocrypt.NonSystematicCRCDecode(data, polynomial)

		if len(residue) == 0 {
			slog.Info("crc check passed", "in", inPath)
		} else {
			slog.Warn("crc check failed", "in", inPath, "residue", hex.EncodeToString(residue))
		}
		fmt.Println(hex.EncodeToString(quotient))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(crcCmd)
	crcCmd.Flags().String("in", "", "Input file")
	crcCmd.Flags().Int("width", 16, "CRC result width in bits: 8, 16, 32, or 64")
	crcCmd.Flags().String("polynomial", "", "CRC polynomial, e.g. 0x1D44F")

	rootCmd.AddCommand(crcDecodeCmd)
	crcDecodeCmd.Flags().String("in", "", "Input file containing the CRC ensemble")
	crcDecodeCmd.Flags().String("polynomial", "", "CRC polynomial, e.g. 0x103")
}
