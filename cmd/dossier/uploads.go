package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/facultymetrics/dossier/internal/uploads"
	"github.com/facultymetrics/dossier/pkg/pagination"
)

var (
	uploadsStatus   string
	uploadsSearch   string
	uploadsPage     int
	uploadsPageSize int
)

var uploadsCmd = &cobra.Command{
	Use:   "uploads",
	Short: "Inspect registered uploads",
}

var uploadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploads",
	RunE:  runUploadsList,
}

var uploadsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one upload with its score record",
	Args:  cobra.ExactArgs(1),
	RunE:  runUploadsShow,
}

func init() {
	uploadsListCmd.Flags().StringVar(&uploadsStatus, "status", "", "filter by status")
	uploadsListCmd.Flags().StringVar(&uploadsSearch, "search", "", "search faculty name or evidence type")
	uploadsListCmd.Flags().IntVar(&uploadsPage, "page", 1, "page number")
	uploadsListCmd.Flags().IntVar(&uploadsPageSize, "page-size", 0, "page size")

	uploadsCmd.AddCommand(uploadsListCmd)
	uploadsCmd.AddCommand(uploadsShowCmd)
	rootCmd.AddCommand(uploadsCmd)
}

func runUploadsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var filters uploads.Filters
	if uploadsStatus != "" {
		filters.Status = &uploadsStatus
	}

	page := pagination.PageRequest{
		Page:     uploadsPage,
		PageSize: uploadsPageSize,
	}
	if uploadsSearch != "" {
		page.Search = &uploadsSearch
	}

	result, err := a.uploads.List(context.Background(), page, filters)
	if err != nil {
		return fmt.Errorf("list uploads: %w", err)
	}
	return printJSON(cmd, result)
}

func runUploadsShow(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid upload id: %w", err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	upload, err := a.uploads.Find(context.Background(), id)
	if err != nil {
		return err
	}
	return printJSON(cmd, upload)
}
