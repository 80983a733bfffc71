package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

var createCmd = &cobra.Command{
	Use:   "create --file <config.json>",
	Short: "Create a site config from a JSON candidate",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		var candidate siteconfig.Config
		if err := readJSON(cmd, path, &candidate); err != nil {
			return err
		}

		record, err := service.Create(cmd.Context(), candidate)
		if err != nil {
			return describeError(err)
		}
		return printRecord(cmd.OutOrStdout(), record)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store a site config from client info",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var info siteconfig.ClientInfo
		info.BusinessName, _ = flags.GetString("name")
		info.City, _ = flags.GetString("city")
		info.State, _ = flags.GetString("state")
		info.Phone, _ = flags.GetString("phone")
		info.PlaceID, _ = flags.GetString("place-id")
		info.Description, _ = flags.GetString("description")

		record, err := service.GenerateFromClientInfo(cmd.Context(), info)
		if err != nil {
			return describeError(err)
		}
		return printRecord(cmd.OutOrStdout(), record)
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <description...>",
	Short: "Generate and store a site config from a free-text description",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		placeID, _ := cmd.Flags().GetString("place-id")
		record, err := service.GenerateFromDescription(cmd.Context(), siteconfig.DescriptionRequest{
			Description: strings.Join(args, " "),
			PlaceID:     placeID,
		})
		if err != nil {
			return describeError(err)
		}
		return printRecord(cmd.OutOrStdout(), record)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <slug>",
	Short: "Show a site config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, found, err := service.GetBySlug(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no site config for slug %q", args[0])
		}
		return printRecord(cmd.OutOrStdout(), record)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List site configs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetInt("limit")

		records, err := service.List(cmd.Context(), siteconfig.ListParams{Search: search, Limit: limit})
		if err != nil {
			return err
		}
		return printRecordList(cmd.OutOrStdout(), records)
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <slug> --file <patch.json>",
	Short: "Apply a JSON patch to a site config",
	Long: `Apply a JSON patch to a site config. Object blocks merge field by field;
lists replace the stored list. Slug, niche and templateId cannot change.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		var patch siteconfig.Patch
		if err := readJSON(cmd, path, &patch); err != nil {
			return err
		}

		record, err := service.Update(cmd.Context(), args[0], patch)
		if err != nil {
			return describeError(err)
		}
		return printRecord(cmd.OutOrStdout(), record)
	},
}

var reviewURLCmd = &cobra.Command{
	Use:         "review-url <place-id>",
	Short:       "Print the write-a-review link for a place ID",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{"service": "none"},
	RunE: func(cmd *cobra.Command, args []string) error {
		link, err := siteconfig.ReviewURL(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), link)
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:         "migrate",
	Short:       "Apply pending postgres schema migrations",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{"service": "none"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := serverConfig.Migrate(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
		return nil
	},
}

func init() {
	createCmd.Flags().StringP("file", "f", "-", "candidate JSON file (- for stdin)")
	updateCmd.Flags().StringP("file", "f", "-", "patch JSON file (- for stdin)")

	generateCmd.Flags().String("name", "", "business name")
	generateCmd.Flags().String("city", "", "city")
	generateCmd.Flags().String("state", "", "two-letter state code")
	generateCmd.Flags().String("phone", "", "phone number")
	generateCmd.Flags().String("place-id", "", "Google place ID")
	generateCmd.Flags().String("description", "", "optional notes for the generator")
	for _, name := range []string{"name", "city", "state", "phone", "place-id"} {
		_ = generateCmd.MarkFlagRequired(name)
	}

	describeCmd.Flags().String("place-id", "", "Google place ID")

	listCmd.Flags().String("search", "", "match slug, business name or city")
	listCmd.Flags().Int("limit", 50, "maximum results (0 for all)")
}

func readJSON(cmd *cobra.Command, path string, v any) error {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" && path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON input: %w", err)
	}
	return nil
}

// describeError expands validation failures into one line per violation.
func describeError(err error) error {
	var verr *siteconfig.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	var b strings.Builder
	b.WriteString("validation failed:")
	for _, v := range verr.Violations {
		fmt.Fprintf(&b, "\n  %s (%s): %s", v.Field, v.Rule, v.Message)
	}
	return errors.New(b.String())
}
