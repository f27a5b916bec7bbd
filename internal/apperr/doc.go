// NutriPlan - Diet and Meal Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nutriplan

/*
Package apperr defines the error kinds shared by the domain packages and the
HTTP boundary.

Domain code returns *Error values built with Validation, NotFound, Conflict
or Internal. The api package maps the kind to a status code and only ever
sends PublicMessage to the client:

	KindValidation -> 400
	KindNotFound   -> 401 (login) / 404
	KindConflict   -> 409
	KindInternal   -> 500, generic message, cause logged

Errors that never passed through this package are treated as internal.
*/
package apperr
