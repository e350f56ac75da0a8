// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package ensure provides argument validation functions, a.k.a. guard clauses.

Each function returns nil when the argument is acceptable and an *ArgumentError
otherwise.  Callers typically return the error immediately:

	if err := ensure.NotBlank(name, "name"); err != nil {
		return err
	}

Use errors.Is with ErrNil, ErrEmpty, ErrBlank, or ErrOutOfRange to distinguish
failures, and errors.As to retrieve the offending parameter name.
*/
package ensure
