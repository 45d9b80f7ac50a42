// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

/*
Package authz decides per-user data access with Casbin.

Requests are (subject, role, owner, action) tuples: the authenticated
username, the role from its token, the username in the route and either
"read" or "write". Policies are (role, action, scope) rules where scope
"own" only matches when subject and owner are equal and "any" matches every
owner. The built-in policy is:

	p, admin, *, any
	p, user, read, own
	p, user, write, own

A policy file in the same CSV format (AUTHZ_POLICY_PATH) replaces it,
for example to add a read-only "auditor" role:

	p, auditor, read, any

The Enforcer satisfies auth.Authorizer and is attached with
auth.Middleware.WithAuthorizer.
*/
package authz
