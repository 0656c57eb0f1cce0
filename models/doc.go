// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain, form and aggregation types shared by the
stores, the voting engine and the handlers.

# Domain Types

  - Proposal: a submitted idea with three cost components and a vote ledger
  - Report: a bug report or idea sent from the gate page
  - Identity: the voter ID, admin flag and group of a logged-in user

Proposal carries its derived values as methods:

	p.TargetCost()  // Cost1 + Cost2 + Cost3
	p.TotalPoints() // ledger sum, creator's own entry excluded
	p.AuthorGroup() // group of the creator's voter ID

# Form Types

ProposalFields is the raw form schema. Costs go through NormalizeCost,
which turns anything that is not a non-negative integer into 0.

# Aggregation Types

  - Dashboard: group/category counts, votes per group, achievement status
  - ResultSnapshot: a persisted Dashboard plus the proposals it was built from

# Constants

Report status values:

	StatusUnread   = "unread"
	StatusArchived = "archived"
*/
package models
