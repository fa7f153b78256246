// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inesonic/gocrypt"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt a file encrypted with gocrypt's AES-256-CBC or XTEA variant",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyDebugFlag(cmd)
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		algorithm := viper.GetString("algorithm")
		inPath := viper.GetString("in")
		outPath := viper.GetString("out")
		keyHex := viper.GetString("key")

		if inPath == "" || outPath == "" || keyHex == "" {
			return fmt.Errorf("--in, --out, and --key are all required")
		}
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return fmt.Errorf("decoding --key: %w", err)
		}

		in, err := os.Open(inPath)
		if err != nil {
			return fmt.Errorf("opening %s: %w", inPath, err)
		}
		defer in.Close()

		source, err := gocrypt.NewFileSource(in)
		if err != nil {
			return fmt.Errorf("statting %s: %w", inPath, err)
		}

		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer out.Close()

		var written int64
		switch algorithm {
		case "aes":
			dec := gocrypt.NewDecryptor[*gocrypt.AESCipher](
				gocrypt.NewAESCipher(),
				gocrypt.WithDecryptorKey[*gocrypt.AESCipher](key),
			)
			if err := dec.Open(gocrypt.Readable); err != nil {
				return err
			}
			dec.SetSource(source)
			written, err = io.Copy(out, readerFunc(dec.Read))
		case "xtea":
			dec := gocrypt.NewDecryptor[*gocrypt.XTEACipher](
				gocrypt.NewXTEACipher(),
				gocrypt.WithDecryptorKey[*gocrypt.XTEACipher](key),
			)
			if err := dec.Open(gocrypt.Readable); err != nil {
				return err
			}
			dec.SetSource(source)
			written, err = io.Copy(out, readerFunc(dec.Read))
		default:
			return fmt.Errorf("unknown --algorithm %q (want aes or xtea)", algorithm)
		}
		if err != nil {
			return fmt.Errorf("decrypting: %w", err)
		}

		slog.Info("decrypted file", "in", inPath, "out", outPath, "algorithm", algorithm, "plaintextBytes", written)
		return nil
	},
}

// readerFunc adapts a Decryptor's Read method to io.Reader, mapping any
// "0 bytes, nil error" result to io.EOF.
type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) {
	n, err := f(p)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().String("algorithm", "aes", "Cipher to use: aes or xtea")
	decryptCmd.Flags().String("in", "", "Input ciphertext file")
	decryptCmd.Flags().String("out", "", "Output plaintext file")
	decryptCmd.Flags().String("key", "", "Hex-encoded key")
}
