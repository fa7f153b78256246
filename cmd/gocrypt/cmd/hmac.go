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

var hmacAlgorithms = map[string]gocrypt.Algorithm{
	"md4":      gocrypt.MD4,
	"md5":      gocrypt.MD5,
	"sha1":     gocrypt.SHA1,
	"sha224":   gocrypt.SHA224,
	"sha256":   gocrypt.SHA256,
	"sha384":   gocrypt.SHA384,
	"sha512":   gocrypt.SHA512,
	"sha3-224": gocrypt.SHA3224,
	"sha3-256": gocrypt.SHA3256,
	"sha3-384": gocrypt.SHA3384,
	"sha3-512": gocrypt.SHA3512,
}

var hmacCmd = &cobra.Command{
	Use:   "hmac",
	Short: "Compute an RFC-2104 HMAC over a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyDebugFlag(cmd)
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		algName := viper.GetString("algorithm")
		inPath := viper.GetString("in")
		keyHex := viper.GetString("key")

		alg, ok := hmacAlgorithms[algName]
		if !ok {
			return fmt.Errorf("unknown --algorithm %q", algName)
		}
		if inPath == "" || keyHex == "" {
			return fmt.Errorf("--in and --key are both required")
		}
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return fmt.Errorf("decoding --key: %w", err)
		}
		data, err := os.ReadFile(inPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", inPath, err)
		}

		h, err := gocrypt.NewHmacWithData(key, data, alg)
		if err != nil {
			return err
		}
		digest, err := h.Digest()
		if err != nil {
			return err
		}

		slog.Info("computed hmac", "in", inPath, "algorithm", algName)
		fmt.Println(hex.EncodeToString(digest))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hmacCmd)
	hmacCmd.Flags().String("algorithm", "sha256", "Hash family: md4, md5, sha1, sha224, sha256, sha384, sha512, sha3-224, sha3-256, sha3-384, sha3-512")
	hmacCmd.Flags().String("in", "", "Input file")
	hmacCmd.Flags().String("key", "", "Hex-encoded key")
}
