package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alovak/payment-details/viewmodel"
)

func render(w io.Writer, v viewmodel.View) error {
	if v.Error != "" {
		if _, err := fmt.Fprintf(w, "error: %s\n\n", v.Error); err != nil {
			return err
		}
	}

	switch v.Status {
	case viewmodel.StatusEmpty, viewmodel.StatusUnavailable:
		_, err := fmt.Fprintln(w, v.Message())
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCARD OWNER\tCARD NUMBER\tEXPIRES\tCVV")
	for _, r := range v.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.CardOwnerName, r.CardNumber, r.ExpirationDate, r.SecurityCode)
	}
	return tw.Flush()
}
