// Package errs provides the error taxonomy shared by the dispatch service.
//
// Callers classify failures with errors.Is against the sentinels:
//   - ErrObjectNotFound: lookup of an unknown entity (driver history, route)
//   - ErrDuplicateKey: insert that collides with an existing identity
//   - ErrInfrastructureFailure: storage unavailable or transaction aborted
//   - ErrValueIsInvalid, ErrValueIsRequired, ErrValueIsOutOfRange: rejected input
//
// Each typed error carries the offending parameter and an optional cause,
// formats a stable message and unwraps to its sentinel. None of them is
// retried automatically; retry policy belongs to the caller.
package errs
