// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth implements the login gate and the in-memory session store.

# Access Codes

There are two shared access codes:

	auth.AdminPassword // admin, no voter ID needed
	auth.UserPassword  // participant, voter ID 1101-1440 required

	id, err := auth.Login(password, voterID)

Failures wrap ErrValidation. Message turns them into the text shown on the
gate page.

# Sessions

Sessions map a random UUID token (stored in the CookieName cookie) to the
logged-in Identity and a has-voted flag:

	sessions := auth.NewSessionStore(12 * time.Hour)
	sess := sessions.Create(id)

The has-voted flag only drives the page; the process-wide voted set in the
store package is what blocks a second vote.

# IP Hashing

Login attempts are logged with a salted hash of the client IP:

	hash := auth.HashIP(ipAddress, salt)
*/
package auth
