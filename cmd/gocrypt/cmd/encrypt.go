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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inesonic/gocrypt"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt a file with AES-256-CBC or the gocrypt XTEA variant",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyDebugFlag(cmd)
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		algorithm := viper.GetString("algorithm")
		inPath := viper.GetString("in")
		outPath := viper.GetString("out")
		keyHex := viper.GetString("key")
		pad := viper.GetBool("pad")

		if inPath == "" || outPath == "" || keyHex == "" {
			return fmt.Errorf("--in, --out, and --key are all required")
		}
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return fmt.Errorf("decoding --key: %w", err)
		}

		plaintext, err := os.ReadFile(inPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", inPath, err)
		}

		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer out.Close()

		sink := gocrypt.NewFileSink(out)

		var written int
		switch algorithm {
		case "aes":
			enc := gocrypt.NewEncryptor[*gocrypt.AESCipher](
				gocrypt.NewAESCipher(),
				gocrypt.WithEncryptorKey[*gocrypt.AESCipher](key),
				gocrypt.WithSink[*gocrypt.AESCipher](sink),
			)
			if err := enc.Open(gocrypt.Writable); err != nil {
				return err
			}
			written, err = enc.Write(plaintext)
			if err != nil {
				return fmt.Errorf("encrypting: %w", err)
			}
			if pad {
				err = enc.FlushAndPad()
			} else {
				err = enc.Flush()
			}
			if err != nil {
				return fmt.Errorf("flushing: %w", err)
			}
		case "xtea":
			enc := gocrypt.NewEncryptor[*gocrypt.XTEACipher](
				gocrypt.NewXTEACipher(),
				gocrypt.WithEncryptorKey[*gocrypt.XTEACipher](key),
				gocrypt.WithSink[*gocrypt.XTEACipher](sink),
			)
			if err := enc.Open(gocrypt.Writable); err != nil {
				return err
			}
			written, err = enc.Write(plaintext)
			if err != nil {
				return fmt.Errorf("encrypting: %w", err)
			}
			if pad {
				err = enc.FlushAndPad()
			} else {
				err = enc.Flush()
			}
			if err != nil {
				return fmt.Errorf("flushing: %w", err)
			}
		default:
			return fmt.Errorf("unknown --algorithm %q (want aes or xtea)", algorithm)
		}

		slog.Info("encrypted file", "in", inPath, "out", outPath, "algorithm", algorithm, "plaintextBytes", written)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().String("algorithm", "aes", "Cipher to use: aes or xtea")
	encryptCmd.Flags().String("in", "", "Input plaintext file")
	encryptCmd.Flags().String("out", "", "Output ciphertext file")
	encryptCmd.Flags().String("key", "", "Hex-encoded key")
	encryptCmd.Flags().Bool("pad", false, "Append random trailing pad bytes after flushing")
}
