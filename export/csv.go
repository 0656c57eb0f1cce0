// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package export writes proposals and reports as CSV for the admin.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/danielhkuo/un-design/models"
)

// Export targets
const (
	TargetProposals = "proposals"
	TargetReports   = "reports"
)

var ErrUnknownTarget = errors.New("unknown export target")

var (
	proposalHeader = []string{
		"ID", "Title", "Author", "Target", "Category", "Problem", "Details", "Effect",
		"Cost_Dev", "Cost_Ops", "Cost_Health", "Total_Points", "Creator_ID",
	}
	reportHeader = []string{"ID", "Type", "Env", "Details", "Status"}
)

// Filename is the download name for a target
func Filename(target string) string {
	return target + ".csv"
}

// Write renders target as CSV with a header row. Fields are written as
// stored; encoding/csv only adds quotes where a field needs them.
func Write(w io.Writer, target string, proposals []models.Proposal, reports []models.Report) error {
	var rows [][]string

	switch target {
	case TargetProposals:
		rows = append(rows, proposalHeader)
		for _, p := range proposals {
			rows = append(rows, []string{
				strconv.Itoa(p.ID),
				p.Title,
				p.Author,
				p.Target,
				p.Category,
				p.Problem,
				p.Details,
				p.Effect,
				strconv.Itoa(p.Cost1),
				strconv.Itoa(p.Cost2),
				strconv.Itoa(p.Cost3),
				strconv.Itoa(p.TotalPoints()),
				p.CreatorID,
			})
		}
	case TargetReports:
		rows = append(rows, reportHeader)
		for _, r := range reports {
			rows = append(rows, []string{
				strconv.Itoa(r.ID),
				r.Type,
				r.Env,
				r.Details,
				r.Status,
			})
		}
	default:
		return fmt.Errorf("%q: %w", target, ErrUnknownTarget)
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s csv: %w", target, err)
	}
	return nil
}
