// Package main implements the assets CLI, which loads front-page images into
// the assets table served by GET /assets/:name.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/ai-recruiter/internal/config"
	"github.com/fadilmartias/ai-recruiter/internal/model"
	"github.com/fadilmartias/ai-recruiter/internal/repository"
	"github.com/fadilmartias/ai-recruiter/internal/usecase"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	assetName string
	mimeType  string
	timeout   time.Duration
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage images stored in the database",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Println("Could not load .env file")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "database operation timeout")

	uploadCmd.Flags().StringVar(&assetName, "name", "", "asset name (default: file name without extension; single file only)")
	uploadCmd.Flags().StringVar(&mimeType, "mime", "", "content type (default: detected from content)")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(listCmd)
}

var uploadCmd = &cobra.Command{
	Use:   "upload FILE...",
	Short: "Upload or replace one or more assets",
	Long: `Upload files into the assets table. An existing asset with the same
name is replaced.

Examples:
  # Upload a logo under an explicit name
  assets upload --name logo ./static/logo.png

  # Upload every image in a folder, named after each file
  assets upload ./static/*.png`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored asset names",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func assetUsecase() (*usecase.AssetUsecase, error) {
	db, err := config.ConnectDB(&model.Asset{})
	if err != nil {
		return nil, err
	}
	return usecase.NewAssetUsecase(repository.NewAssetRepository(db)), nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	if assetName != "" && len(args) > 1 {
		return fmt.Errorf("--name can only be used with a single file")
	}
	uc, err := assetUsecase()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		name := assetName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		a, err := uc.Upload(ctx, name, data, mimeType)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s (%s, %d bytes)\n", a.Name, a.MimeType, len(a.Data))
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	uc, err := assetUsecase()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	names, err := uc.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
