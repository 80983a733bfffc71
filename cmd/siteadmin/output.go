package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tendant/simple-site/pkg/siteconfig"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printRecord(w io.Writer, record *siteconfig.Record) error {
	if jsonOutput {
		return printJSON(w, record)
	}

	c := record.Config
	fmt.Fprintf(w, "ID:          %s\n", record.ID)
	fmt.Fprintf(w, "Slug:        %s\n", record.Slug)
	fmt.Fprintf(w, "Status:      %s\n", record.Status)
	fmt.Fprintf(w, "Business:    %s, %s %s\n", c.Business.Name, c.Business.City, c.Business.State)
	fmt.Fprintf(w, "Phone:       %s\n", c.Business.Phone)
	fmt.Fprintf(w, "Offer:       %s\n", c.Offer.ShortText)
	fmt.Fprintf(w, "Services:    %s\n", strings.Join(c.ServiceNames(), ", "))
	fmt.Fprintf(w, "Areas:       %s\n", strings.Join(c.AreasServed, ", "))
	if serverConfig != nil {
		fmt.Fprintf(w, "Preview:     %s\n", siteconfig.PreviewURL(serverConfig.PreviewDomain, record.Slug))
	}
	if link, err := siteconfig.ReviewURL(c.PlaceID); err == nil {
		fmt.Fprintf(w, "Review link: %s\n", link)
	}
	fmt.Fprintf(w, "Updated At:  %s\n", record.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func printRecordList(w io.Writer, records []*siteconfig.Record) error {
	if jsonOutput {
		if records == nil {
			records = []*siteconfig.Record{}
		}
		return printJSON(w, records)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tSTATUS\tBUSINESS\tCITY\tCREATED")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Slug, r.Status, r.Config.Business.Name, r.Config.Business.City,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d config(s)\n", len(records))
	return nil
}
